package classifier

import (
	"regexp"
	"strings"

	"github.com/pappu-dcbot-go/internal/models"
)

// AdminKind enumerates the recognized owner command families.
type AdminKind int

const (
	AdminShutdown AdminKind = iota
	AdminRestart
	AdminOwnerDM
	AdminStealth
	AdminMode
	AdminEnglish
	AdminProfanity
	AdminDeleteLast
	AdminAnnounce
	AdminMute
	AdminUnmute
	AdminKick
	AdminBan
	AdminUnban
	AdminRoast
)

// Toggle is the parsed on/off argument of a toggle command.
type Toggle int

const (
	ToggleInvalid Toggle = iota
	ToggleOn
	ToggleOff
)

// AdminCommand is a parsed owner command phrase.
type AdminCommand struct {
	Kind      AdminKind
	Toggle    Toggle
	Mode      string // for AdminMode
	Topic     string // for AdminAnnounce
	UnbanSpec string // user id or name#discrim for AdminUnban
}

var (
	deleteWords = []string{"delete", "del ", "uda", "hata", "remove"}
	lastWords   = []string{"last", "pichla", "pichle"}

	announceWordPattern = regexp.MustCompile(`(?i)announcements?|announce`)
)

func wakePrefixPattern(wake string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(wake) + `[,!\s]*`)
}

// matchAdmin recognizes the owner's natural-language command phrases.
// These are keyword matches, not a grammar; anything unrecognized falls
// through to normal classification so owner chat still works.
func (c *Classifier) matchAdmin(in input) (Result, bool) {
	if !c.isOwner(in.ev) || !in.ev.Invoked {
		return Result{}, false
	}

	cmd, ok := c.parseAdmin(in.lower, in.clean, in.ev)
	if !ok {
		return Result{}, false
	}
	return Result{Intent: IntentAdmin, Admin: cmd}, true
}

func (c *Classifier) parseAdmin(lower, clean string, ev models.Event) (*AdminCommand, bool) {
	wake := c.wakeWord

	switch lower {
	case wake + " shutdown", wake + " stop", wake + " sleep":
		return &AdminCommand{Kind: AdminShutdown}, true
	case wake + " restart", wake + " reboot":
		return &AdminCommand{Kind: AdminRestart}, true
	}

	if strings.HasPrefix(lower, wake+" owner_dm") {
		return &AdminCommand{Kind: AdminOwnerDM, Toggle: parseToggle(lower)}, true
	}
	if strings.HasPrefix(lower, wake+" stealth") {
		return &AdminCommand{Kind: AdminStealth, Toggle: parseToggle(lower)}, true
	}
	if strings.HasPrefix(lower, wake+" english") {
		return &AdminCommand{Kind: AdminEnglish, Toggle: parseToggle(lower)}, true
	}
	if strings.Contains(lower, "allow_profanity") {
		return &AdminCommand{Kind: AdminProfanity, Toggle: parseToggle(lower)}, true
	}
	if strings.HasPrefix(lower, wake+" mode") {
		parts := strings.Fields(lower)
		cmd := &AdminCommand{Kind: AdminMode}
		if len(parts) >= 3 {
			cmd.Mode = parts[2]
		}
		return cmd, true
	}

	// Admin commands below only make sense inside a guild.
	if ev.IsDM {
		return nil, false
	}

	if containsAny(lower, deleteWords) && containsAny(lower, lastWords) {
		return &AdminCommand{Kind: AdminDeleteLast}, true
	}

	if strings.Contains(lower, "announce") {
		topic := announceWordPattern.ReplaceAllString(clean, "")
		topic = wakePrefixPattern(wake).ReplaceAllString(strings.TrimSpace(topic), "")
		return &AdminCommand{Kind: AdminAnnounce, Topic: strings.TrimSpace(topic)}, true
	}

	if strings.Contains(lower, "unmute") ||
		(strings.Contains(lower, "mute") && strings.Contains(lower, "remove")) {
		return &AdminCommand{Kind: AdminUnmute}, true
	}
	if strings.Contains(lower, "mute") {
		return &AdminCommand{Kind: AdminMute}, true
	}
	if strings.Contains(lower, "kick") || strings.Contains(lower, "bahar nikal") {
		return &AdminCommand{Kind: AdminKick}, true
	}
	if strings.Contains(lower, "unban") {
		cmd := &AdminCommand{Kind: AdminUnban}
		for _, p := range strings.Fields(clean) {
			if strings.Contains(p, "#") || isDigits(p) {
				cmd.UnbanSpec = p
				break
			}
		}
		return cmd, true
	}
	if strings.Contains(lower, "ban") {
		return &AdminCommand{Kind: AdminBan}, true
	}

	if strings.Contains(lower, "gali de") || strings.Contains(lower, "gali bhej") ||
		strings.Contains(lower, "insult") {
		return &AdminCommand{Kind: AdminRoast}, true
	}

	return nil, false
}

func parseToggle(lower string) Toggle {
	fields := strings.Fields(lower)
	for _, f := range fields {
		switch f {
		case "on":
			return ToggleOn
		case "off":
			return ToggleOff
		}
	}
	return ToggleInvalid
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
