package models

import (
	"time"
)

// Settings is the process-wide runtime record mutated by owner commands.
// The whole record is serialized to the settings store after every change.
type Settings struct {
	OwnerDMOnly    bool   `json:"owner_dm_only"`
	Stealth        bool   `json:"stealth"`
	Mode           string `json:"mode"`
	AllowProfanity bool   `json:"allow_profanity"`
	EnglishLock    bool   `json:"english_lock"`
}

// SessionEntry is the short-term per-user conversation memory used to
// resolve elliptical follow-ups ("which one?", "naam bata").
type SessionEntry struct {
	LastSubject string   `json:"last_subject"`
	LastQuery   string   `json:"last_query"`
	Items       []string `json:"items,omitempty"`
	Timestamp   int64    `json:"ts"`
}

// Age returns how long ago the entry was written.
func (e SessionEntry) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(e.Timestamp, 0))
}

// TaggedUser is a user mention carried on an inbound event.
type TaggedUser struct {
	ID          string
	DisplayName string
}

// Event is the platform-neutral shape of an inbound chat message.
type Event struct {
	MessageID    string
	ChannelID    string
	GuildID      string
	AuthorID     string
	AuthorName   string
	AuthorIsBot  bool
	Content      string // text with platform mention tokens stripped
	IsDM         bool
	IsReplyToBot bool
	Invoked      bool         // bot was mentioned or the wake-word appeared
	TaggedUsers  []TaggedUser // excluding the bot itself
	TaggedChans  []string
}

// Target returns the first tagged user, if any.
func (e Event) Target() (TaggedUser, bool) {
	if len(e.TaggedUsers) == 0 {
		return TaggedUser{}, false
	}
	return e.TaggedUsers[0], true
}

// TargetChannel returns the channel an admin action should apply to.
func (e Event) TargetChannel() string {
	if len(e.TaggedChans) > 0 {
		return e.TaggedChans[0]
	}
	return e.ChannelID
}

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string
	Snippet string
	Link    string
}

// HistoryMessage is a message fetched from channel history.
type HistoryMessage struct {
	ID       string
	AuthorID string
	Content  string
}

// CacheEntry represents a cached generation response.
type CacheEntry struct {
	Question  string
	Answer    string
	Mode      string
	CreatedAt time.Time
}
