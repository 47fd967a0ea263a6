package platform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrRoleNotFound is returned when a named role does not exist in the
// guild, so callers can suggest creating it.
var ErrRoleNotFound = errors.New("role not found")

const (
	// maxMessageLen is the per-message character budget, kept under
	// Discord's 2000 limit to leave headroom for formatting.
	maxMessageLen = 1900

	chunkDelay = 350 * time.Millisecond
)

// Discord implements Adapter over a discordgo session.
type Discord struct {
	session *discordgo.Session
	logger  *logrus.Logger
}

// NewDiscord wraps an opened discordgo session.
func NewDiscord(session *discordgo.Session, logger *logrus.Logger) *Discord {
	return &Discord{session: session, logger: logger}
}

func (d *Discord) BotUserID() string {
	if d.session.State != nil && d.session.State.User != nil {
		return d.session.State.User.ID
	}
	return ""
}

// SendText sends text in chunks of at most maxMessageLen characters,
// splitting on newlines where possible, with a small delay between
// chunks so they arrive in order.
func (d *Discord) SendText(channelID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	chunks := SplitMessage(text, maxMessageLen)
	for i, chunk := range chunks {
		if i > 0 {
			time.Sleep(chunkDelay)
		}
		if _, err := d.session.ChannelMessageSend(channelID, chunk); err != nil {
			return fmt.Errorf("failed to send message chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

// SplitMessage cuts text into pieces of at most limit characters,
// preferring newline boundaries, then spaces, then a hard cut.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut < limit/2 {
			cut = strings.LastIndex(text[:limit], " ")
		}
		if cut < limit/2 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func (d *Discord) Typing(channelID string) {
	if err := d.session.ChannelTyping(channelID); err != nil {
		d.logger.WithError(err).Debug("Failed to send typing indicator")
	}
}

func (d *Discord) SetPresence(invisible bool) error {
	status := string(discordgo.StatusOnline)
	if invisible {
		status = string(discordgo.StatusInvisible)
	}
	return d.session.UpdateStatusComplex(discordgo.UpdateStatusData{Status: status})
}

func (d *Discord) DeleteMessage(channelID, messageID string) error {
	return d.session.ChannelMessageDelete(channelID, messageID)
}

func (d *Discord) RecentHistory(channelID string, limit int) ([]models.HistoryMessage, error) {
	msgs, err := d.session.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel history: %w", err)
	}

	out := make([]models.HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, models.HistoryMessage{
			ID:       m.ID,
			AuthorID: m.Author.ID,
			Content:  m.Content,
		})
	}
	return out, nil
}

func (d *Discord) roleID(guildID, roleName string) (string, error) {
	roles, err := d.session.GuildRoles(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list guild roles: %w", err)
	}
	for _, role := range roles {
		if role.Name == roleName {
			return role.ID, nil
		}
	}
	return "", fmt.Errorf("role %q: %w", roleName, ErrRoleNotFound)
}

func (d *Discord) AddRole(guildID, userID, roleName string) error {
	roleID, err := d.roleID(guildID, roleName)
	if err != nil {
		return err
	}
	return d.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (d *Discord) RemoveRole(guildID, userID, roleName string) error {
	roleID, err := d.roleID(guildID, roleName)
	if err != nil {
		return err
	}
	return d.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (d *Discord) Kick(guildID, userID, reason string) error {
	return d.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (d *Discord) Ban(guildID, userID, reason string) error {
	return d.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

func (d *Discord) Unban(guildID, spec string) (string, error) {
	bans, err := d.session.GuildBans(guildID, 200, "", "")
	if err != nil {
		return "", fmt.Errorf("failed to list bans: %w", err)
	}

	spec = strings.ToLower(spec)
	for _, ban := range bans {
		tag := strings.ToLower(ban.User.Username + "#" + ban.User.Discriminator)
		if ban.User.ID == spec || tag == spec {
			if err := d.session.GuildBanDelete(guildID, ban.User.ID); err != nil {
				return "", err
			}
			return ban.User.Username, nil
		}
	}
	return "", fmt.Errorf("user %q not found in ban list", spec)
}
