package classifier

import (
	"regexp"
	"strings"

	"github.com/pappu-dcbot-go/internal/models"
)

// Intent is the category assigned to an incoming message.
type Intent int

const (
	IntentIgnore Intent = iota
	IntentGreeting
	IntentAdmin
	IntentInsult
	IntentFollowUp
	IntentLyrics
	IntentLiveInfo
	IntentChat
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentAdmin:
		return "admin"
	case IntentInsult:
		return "insult"
	case IntentFollowUp:
		return "follow_up"
	case IntentLyrics:
		return "lyrics"
	case IntentLiveInfo:
		return "live_info"
	case IntentChat:
		return "chat"
	default:
		return "ignore"
	}
}

// Result carries the matched category plus everything the router needs
// to act on it without re-parsing the message.
type Result struct {
	Intent Intent
	Rule   string // name of the rule that matched, for logs and metrics
	Query  string // effective query text, after follow-up expansion
	Song   string // extracted song phrase for lyrics requests
	Admin  *AdminCommand
}

// Classifier maps cleaned message text to an Intent. Rules are evaluated
// strictly in order; the first match wins.
type Classifier struct {
	wakeWord         string
	ownerID          string
	retaliate        bool
	retaliateAll     bool
	searchConfigured bool
	rules            []rule
}

type rule struct {
	name  string
	match func(in input) (Result, bool)
}

type input struct {
	ev      models.Event
	lower   string
	clean   string
	session *models.SessionEntry
}

// New creates a classifier. searchConfigured gates the live-info rule so
// recency cues degrade to normal chat when no search backend exists.
func New(wakeWord, ownerID string, retaliate, retaliateAll, searchConfigured bool) *Classifier {
	c := &Classifier{
		wakeWord:         strings.ToLower(wakeWord),
		ownerID:          ownerID,
		retaliate:        retaliate,
		retaliateAll:     retaliateAll,
		searchConfigured: searchConfigured,
	}
	c.rules = []rule{
		{"admin", c.matchAdmin},
		{"insult", c.matchInsult},
		{"greeting", c.matchGreeting},
		{"follow_up", c.matchFollowUp},
		{"lyrics", c.matchLyrics},
		{"live_info", c.matchLiveInfo},
		{"chat", c.matchChat},
	}
	return c
}

// Classify runs the ordered rule list over the event. session is the
// author's non-expired context entry, or nil.
func (c *Classifier) Classify(ev models.Event, session *models.SessionEntry) Result {
	in := input{
		ev:      ev,
		clean:   strings.TrimSpace(ev.Content),
		lower:   strings.ToLower(strings.TrimSpace(ev.Content)),
		session: session,
	}

	for _, r := range c.rules {
		if result, ok := r.match(in); ok {
			result.Rule = r.name
			if result.Query == "" {
				result.Query = in.clean
			}
			return result
		}
	}

	return Result{Intent: IntentIgnore, Rule: "none"}
}

var (
	profanityMarkers = []string{
		"chutiya", "ch*tiya", "gandu", "g**du", "saala", "saale", "bsdk", "b sdk", "mc", "m*c",
		"madarchod", "m*darchod", "bhosdike", "bhosdi", "tatti", "harami", "b*stard",
		"idiot", "stupid", "dumb", "loser",
	}

	galiPattern        = regexp.MustCompile(`\b(gali|gali de|gali dega|gaali)\b`)
	exclamationPattern = regexp.MustCompile(`[!]{3,}`)

	followUpCues = []string{
		"naam", "name", "bta naam", "bata naam", "bol naam", "uska naam",
		"isko naam", "inme se", "inme se kaun", "which", "also",
	}

	liveCues = []string{
		"aaj", "kab", "news", "release", "date", "search", "khabar",
		"announce", "price", "bhav", "today", "latest",
	}
)

const (
	followUpMaxWords = 5
	followUpMaxItems = 6
)

// ContainsInsult reports whether the text carries any profanity marker or
// an aggressive pattern.
func ContainsInsult(text string) bool {
	t := strings.ToLower(text)
	for _, marker := range profanityMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	if galiPattern.MatchString(t) {
		return true
	}
	return exclamationPattern.MatchString(t)
}

func (c *Classifier) isOwner(ev models.Event) bool {
	return ev.AuthorID == c.ownerID
}

func (c *Classifier) matchInsult(in input) (Result, bool) {
	if c.isOwner(in.ev) || !ContainsInsult(in.ev.Content) {
		return Result{}, false
	}

	// Directed at the bot: a reply to its own message, or the wake-word
	// with no other human tagged. Two humans insulting each other while
	// name-dropping the bot are left alone.
	directed := in.ev.IsReplyToBot || (in.ev.Invoked && len(in.ev.TaggedUsers) == 0)

	if c.retaliateAll || (c.retaliate && directed) {
		return Result{Intent: IntentInsult}, true
	}
	return Result{}, false
}

func (c *Classifier) matchGreeting(in input) (Result, bool) {
	if !in.ev.Invoked {
		return Result{}, false
	}
	switch in.lower {
	case "", c.wakeWord, c.wakeWord + "?", c.wakeWord + "!", c.wakeWord + " bot":
		return Result{Intent: IntentGreeting}, true
	}
	return Result{}, false
}

func (c *Classifier) matchFollowUp(in input) (Result, bool) {
	if !in.ev.Invoked || in.session == nil {
		return Result{}, false
	}
	if len(strings.Fields(in.clean)) > followUpMaxWords {
		return Result{}, false
	}

	cued := false
	for _, cue := range followUpCues {
		if strings.Contains(in.lower, cue) {
			cued = true
			break
		}
	}
	if !cued {
		return Result{}, false
	}

	// Expand the ellipsis with the prior query and items so the
	// generator has something to ground on.
	var b strings.Builder
	b.WriteString(in.session.LastQuery)
	if len(in.session.Items) > 0 {
		items := in.session.Items
		if len(items) > followUpMaxItems {
			items = items[:followUpMaxItems]
		}
		b.WriteString(" — items: ")
		b.WriteString(strings.Join(items, ", "))
		b.WriteString(" — follow-up: ")
	} else {
		b.WriteString(" — user follow-up: ")
	}
	b.WriteString(in.clean)

	return Result{Intent: IntentFollowUp, Query: b.String()}, true
}

var lyricsPattern = regexp.MustCompile(`(?i)lyrics (?:of|for)\s+['"]?([^'"]{2,200})`)

// ExtractSong pulls the requested song phrase out of a lyrics request.
// It returns false when the text is not a lyrics request at all.
func ExtractSong(text string) (string, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "lyrics") && !strings.Contains(lower, "gaane ke") {
		return "", false
	}

	if m := lyricsPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	// Fall back to the 1-5 words right after the literal "lyrics".
	parts := strings.Fields(lower)
	for i, p := range parts {
		if p == "lyrics" {
			end := i + 6
			if end > len(parts) {
				end = len(parts)
			}
			guess := strings.TrimSpace(strings.Join(parts[i+1:end], " "))
			if guess != "" {
				return guess, true
			}
		}
	}

	return "", false
}

func (c *Classifier) matchLyrics(in input) (Result, bool) {
	if !in.ev.Invoked {
		return Result{}, false
	}
	if song, ok := ExtractSong(in.clean); ok {
		return Result{Intent: IntentLyrics, Song: song}, true
	}
	return Result{}, false
}

func (c *Classifier) matchLiveInfo(in input) (Result, bool) {
	if !in.ev.Invoked || !c.searchConfigured {
		return Result{}, false
	}
	for _, cue := range liveCues {
		if strings.Contains(in.lower, cue) {
			return Result{Intent: IntentLiveInfo}, true
		}
	}
	return Result{}, false
}

func (c *Classifier) matchChat(in input) (Result, bool) {
	if !in.ev.Invoked {
		return Result{}, false
	}
	return Result{Intent: IntentChat}, true
}
