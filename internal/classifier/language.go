package classifier

import (
	"regexp"
	"strings"

	"github.com/pappu-dcbot-go/internal/models"
)

// Reply language codes. "hi" is the Hinglish register, not formal Hindi.
const (
	LangEnglish  = "en"
	LangHinglish = "hi"
)

// LanguagePolicy decides the reply language for a message. Two strategies
// exist: "static" ignores the incoming text entirely (english lock on
// means English, otherwise Hinglish), "auto" falls back to a per-message
// heuristic when the lock is off.
type LanguagePolicy struct {
	Strategy string
}

// ReplyLanguage applies the policy to one message.
func (p LanguagePolicy) ReplyLanguage(settings models.Settings, text string) string {
	if settings.EnglishLock {
		return LangEnglish
	}
	if p.Strategy == "auto" && IsEnglish(text) {
		return LangEnglish
	}
	return LangHinglish
}

var (
	devanagariPattern = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	alphaTokenPattern = regexp.MustCompile(`[A-Za-z']+`)

	// Common romanized-Hindi function words. One of these in a message
	// means it is Hinglish no matter how ASCII it looks.
	hinglishMarkers = map[string]bool{
		"hai": true, "kya": true, "bhai": true, "nahi": true, "yaar": true,
		"acha": true, "karo": true, "kar": true, "ka": true, "ke": true,
		"ki": true, "tu": true, "mera": true, "tera": true, "kaise": true,
		"kab": true, "kaun": true, "matlab": true, "wala": true,
		"hoon": true, "raha": true, "rahi": true, "bata": true,
	}
)

// IsEnglish reports whether the text clearly reads as English sentences.
// The bar is deliberately high so mixed Hinglish messages fail it.
func IsEnglish(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if devanagariPattern.MatchString(text) {
		return false
	}

	words := alphaTokenPattern.FindAllString(text, -1)
	if len(words) == 0 {
		return false
	}

	for _, w := range words {
		if hinglishMarkers[strings.ToLower(w)] {
			return false
		}
	}

	// require a couple of reasonably long English words
	long := 0
	for _, w := range words {
		if len(w) >= 4 {
			long++
		}
	}
	if long < 2 {
		return false
	}

	total := len(strings.Fields(text))
	if total == 0 {
		total = 1
	}
	return float64(len(words))/float64(total) >= 0.70
}
