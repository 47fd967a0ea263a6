package router

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pappu-dcbot-go/internal/classifier"
	"github.com/pappu-dcbot-go/internal/i18n"
	"github.com/pappu-dcbot-go/internal/middleware"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/pappu-dcbot-go/internal/platform"
	"github.com/pappu-dcbot-go/internal/services/cache"
	"github.com/pappu-dcbot-go/internal/services/generation"
	"github.com/pappu-dcbot-go/internal/services/search"
	"github.com/pappu-dcbot-go/internal/session"
	"github.com/pappu-dcbot-go/internal/settings"
)

const (
	ownerDisplayName = "Papa ji"
	lyricsLimit      = 90
	historyScan      = 50
)

// Control carries the process-level hooks an admin command can fire.
// They run after the acknowledgement is sent.
type Control struct {
	Shutdown func()
	Restart  func()
}

// Router turns a classified event into platform actions. It owns the
// reply pipeline: block checks, admin dispatch, retaliation, composing
// via the generation backend and finally session context updates.
type Router struct {
	settings   *settings.Store
	sessions   *session.Store
	classifier *classifier.Classifier
	platform   platform.Adapter
	gen        generation.Service
	search     search.Service
	cache      cache.Service
	limiter    middleware.RateLimiter
	localizer  *i18n.Localizer
	metrics    *middleware.Metrics
	logger     *logrus.Logger
	langPolicy classifier.LanguagePolicy

	ownerID      string
	allowInsults bool
	control      Control
}

type Options struct {
	Settings     *settings.Store
	Sessions     *session.Store
	Classifier   *classifier.Classifier
	Platform     platform.Adapter
	Generation   generation.Service
	Search       search.Service
	Cache        cache.Service
	Limiter      middleware.RateLimiter
	Localizer    *i18n.Localizer
	Metrics      *middleware.Metrics
	Logger       *logrus.Logger
	LangPolicy   classifier.LanguagePolicy
	OwnerID      string
	AllowInsults bool
	Control      Control
}

func New(opts Options) *Router {
	return &Router{
		settings:     opts.Settings,
		sessions:     opts.Sessions,
		classifier:   opts.Classifier,
		platform:     opts.Platform,
		gen:          opts.Generation,
		search:       opts.Search,
		cache:        opts.Cache,
		limiter:      opts.Limiter,
		localizer:    opts.Localizer,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		langPolicy:   opts.LangPolicy,
		ownerID:      opts.OwnerID,
		allowInsults: opts.AllowInsults,
		control:      opts.Control,
	}
}

// Dispatch is the per-message entry point. It never returns an error:
// every failure path degrades to a logged fallback reply or silence.
func (r *Router) Dispatch(ctx context.Context, ev models.Event) {
	if ev.AuthorIsBot {
		return
	}

	set := r.settings.Snapshot()
	isOwner := ev.AuthorID == r.ownerID

	// Maintenance gate: non-owner guild traffic is dropped before any
	// classification or session read happens.
	if set.OwnerDMOnly && !isOwner && !ev.IsDM {
		r.logger.WithFields(logrus.Fields{
			"user_id": ev.AuthorID,
			"channel": ev.ChannelID,
		}).Debug("Dropped message: owner-DM-only mode")
		r.metrics.RecordMessageRouted("blocked")
		return
	}

	var sessPtr *models.SessionEntry
	if entry, ok := r.sessions.Get(ev.AuthorID); ok {
		sessPtr = &entry
	}
	r.metrics.SetActiveSessions(float64(len(r.sessions.Snapshot())))

	result := r.classifier.Classify(ev, sessPtr)
	if result.Intent == classifier.IntentIgnore {
		return
	}
	r.metrics.RecordMessageRouted(result.Intent.String())

	lang := r.langPolicy.ReplyLanguage(set, ev.Content)
	log := r.logger.WithFields(logrus.Fields{
		"user_id": ev.AuthorID,
		"intent":  result.Intent.String(),
		"rule":    result.Rule,
	})
	log.Info("Routing message")

	switch result.Intent {
	case classifier.IntentGreeting:
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgGreeting, map[string]interface{}{
			"Name": r.displayName(ev),
		}))
	case classifier.IntentInsult:
		r.retaliate(ev, set, lang, log)
	case classifier.IntentAdmin:
		r.dispatchAdmin(ctx, ev, result.Admin, lang)
	case classifier.IntentLyrics:
		r.handleLyrics(ctx, ev, result, lang)
	case classifier.IntentLiveInfo:
		r.compose(ctx, ev, result, set, lang, true)
	default:
		r.compose(ctx, ev, result, set, lang, false)
	}
}

// retaliate answers an incoming insult. The per-user rate limiter keeps
// a spammer from farming roasts, and every hit is audit-logged.
func (r *Router) retaliate(ev models.Event, set models.Settings, lang string, log *logrus.Entry) {
	if !r.limiter.Allow(ev.AuthorID) {
		log.Warn("Retaliation rate-limited")
		return
	}
	log.Warn("Incoming insult, retaliating")
	if set.AllowProfanity {
		r.send(ev.ChannelID, chooseRoast(ev.AuthorName, true))
		return
	}
	r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgPoliteDeflection, nil))
}

// handleLyrics answers lyrics requests with a short quotable excerpt
// taken from web results, never a full reproduction.
func (r *Router) handleLyrics(ctx context.Context, ev models.Event, result classifier.Result, lang string) {
	if r.limited(ev, lang) {
		return
	}
	if !r.search.Configured() {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgSearchNotConfigured, nil))
		return
	}
	r.platform.Typing(ev.ChannelID)

	query := result.Song + " lyrics"
	results, err := r.search.Search(ctx, query)
	if err != nil || len(results) == 0 {
		if err != nil {
			r.logger.WithError(err).Warn("Lyrics search failed")
		}
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgSearchNotConfigured, nil))
		return
	}

	excerpt := lyricsExcerpt(results[0].Snippet, lyricsLimit)
	var b strings.Builder
	b.WriteString("🎵 **")
	b.WriteString(result.Song)
	b.WriteString("**\n> ")
	b.WriteString(excerpt)
	b.WriteString("\nPoora yahan: ")
	b.WriteString(results[0].Link)
	r.send(ev.ChannelID, b.String())

	r.sessions.Set(ev.AuthorID, "lyrics", query, []string{result.Song})
}

// compose runs the generation pipeline for chat, follow-up and live-info
// queries, including search grounding, caching and fallbacks.
func (r *Router) compose(ctx context.Context, ev models.Event, result classifier.Result, set models.Settings, lang string, live bool) {
	if r.limited(ev, lang) {
		return
	}
	name := r.displayName(ev)
	query := result.Query

	var searchSummary string
	if live {
		results, err := r.search.Search(ctx, query)
		if err != nil {
			r.logger.WithError(err).Warn("Live search failed")
		}
		if len(results) == 0 {
			// Recency questions without grounding produce confident
			// stale answers, so halt instead of guessing.
			r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgSearchNotConfigured, nil))
			return
		}
		searchSummary = search.Summary(results)
		if !r.gen.Configured() {
			r.send(ev.ChannelID, searchSummary)
			r.rememberReply(ev, query, searchSummary)
			return
		}
	}

	cacheMode := set.Mode + ":" + lang
	if !live {
		if answer, hit := r.cache.Get(ctx, query, cacheMode); hit {
			r.metrics.RecordCacheHit()
			r.send(ev.ChannelID, answer)
			r.rememberReply(ev, query, answer)
			return
		}
		r.metrics.RecordCacheMiss()
	}

	if !r.gen.Configured() {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgGenNotConfigured, map[string]interface{}{
			"Name": name,
		}))
		return
	}

	r.platform.Typing(ev.ChannelID)
	prompt := buildChatPrompt(name, query, set, lang, searchSummary, r.allowInsults)

	start := time.Now()
	reply, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		r.metrics.RecordGeneration("error", time.Since(start))
		r.logger.WithError(err).Error("Generation failed")
		if searchSummary != "" {
			r.send(ev.ChannelID, searchSummary)
			return
		}
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgApology, map[string]interface{}{
			"Name":  name,
			"Error": err.Error(),
		}))
		return
	}
	r.metrics.RecordGeneration("success", time.Since(start))

	if strings.TrimSpace(reply) == "" {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgEmptyReply, nil))
		return
	}

	r.send(ev.ChannelID, reply)
	if !live {
		if err := r.cache.Set(ctx, query, cacheMode, reply); err != nil {
			r.logger.WithError(err).Debug("Cache store failed")
		}
	}
	r.rememberReply(ev, query, reply)
}

// rememberReply records what was discussed so the next short message can
// be expanded into a follow-up query.
func (r *Router) rememberReply(ev models.Event, query, reply string) {
	subject := extractSubject(query)
	items := extractItems(reply)
	if subject == "" && len(items) == 0 {
		return
	}
	if subject == "" {
		subject = "general"
	}
	r.sessions.Set(ev.AuthorID, subject, query, items)
}

// limited applies the per-user rate limit. The owner is never limited.
func (r *Router) limited(ev models.Event, lang string) bool {
	if ev.AuthorID == r.ownerID {
		return false
	}
	if r.limiter.Allow(ev.AuthorID) {
		return false
	}
	r.logger.WithField("user_id", ev.AuthorID).Warn("User rate-limited")
	r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgRateLimited, nil))
	return true
}

func (r *Router) displayName(ev models.Event) string {
	if ev.AuthorID == r.ownerID {
		return ownerDisplayName
	}
	return ev.AuthorName
}

func (r *Router) send(channelID, text string) {
	if text == "" {
		return
	}
	if err := r.platform.SendText(channelID, text); err != nil {
		r.logger.WithError(err).WithField("channel", channelID).Error("Failed to send message")
	}
}
