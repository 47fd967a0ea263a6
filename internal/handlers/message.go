package handlers

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/pappu-dcbot-go/internal/middleware"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/pappu-dcbot-go/internal/router"
	"github.com/pappu-dcbot-go/pkg/logger"
)

var (
	userMentionPattern = regexp.MustCompile(`<@!?\d+>`)
	chanMentionPattern = regexp.MustCompile(`<#(\d+)>`)
)

// MessageHandler adapts discordgo events into platform-neutral events
// and hands them to the router.
type MessageHandler struct {
	router   *router.Router
	metrics  *middleware.Metrics
	logger   *logrus.Logger
	wakeWord string
}

func NewMessageHandler(r *router.Router, metrics *middleware.Metrics, logger *logrus.Logger, wakeWord string) *MessageHandler {
	return &MessageHandler{
		router:   r,
		metrics:  metrics,
		logger:   logger,
		wakeWord: strings.ToLower(wakeWord),
	}
}

// Handle is registered as the discordgo MessageCreate callback.
func (h *MessageHandler) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || s.State.User == nil || m.Author.ID == s.State.User.ID {
		return
	}

	ev := h.buildEvent(s, m)
	if ev.IsDM {
		h.metrics.RecordMessageReceived("dm")
	} else {
		h.metrics.RecordMessageReceived("guild")
	}

	// Each message gets its own goroutine so a slow generation call
	// never stalls the gateway event loop.
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithEvent(h.logger, ev.ChannelID, ev.AuthorID).
					WithField("panic", rec).Error("Recovered from handler panic")
			}
		}()
		h.router.Dispatch(context.Background(), ev)
	}()
}

func (h *MessageHandler) buildEvent(s *discordgo.Session, m *discordgo.MessageCreate) models.Event {
	botID := s.State.User.ID
	isDM := m.GuildID == ""

	mentioned := false
	var tagged []models.TaggedUser
	for _, u := range m.Mentions {
		if u.ID == botID {
			mentioned = true
			continue
		}
		tagged = append(tagged, models.TaggedUser{ID: u.ID, DisplayName: displayName(u)})
	}

	var taggedChans []string
	for _, match := range chanMentionPattern.FindAllStringSubmatch(m.Content, -1) {
		taggedChans = append(taggedChans, match[1])
	}

	content := userMentionPattern.ReplaceAllString(m.Content, "")
	content = chanMentionPattern.ReplaceAllString(content, "")
	content = strings.Join(strings.Fields(content), " ")

	replyToBot := m.ReferencedMessage != nil &&
		m.ReferencedMessage.Author != nil &&
		m.ReferencedMessage.Author.ID == botID

	invoked := isDM || mentioned || replyToBot ||
		strings.Contains(strings.ToLower(content), h.wakeWord)

	return models.Event{
		MessageID:    m.ID,
		ChannelID:    m.ChannelID,
		GuildID:      m.GuildID,
		AuthorID:     m.Author.ID,
		AuthorName:   displayName(m.Author),
		AuthorIsBot:  m.Author.Bot,
		Content:      content,
		IsDM:         isDM,
		IsReplyToBot: replyToBot,
		Invoked:      invoked,
		TaggedUsers:  tagged,
		TaggedChans:  taggedChans,
	}
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
