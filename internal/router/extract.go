package router

import (
	"regexp"
	"strings"
)

const (
	maxExtractedItems = 8
	maxItemLen        = 120
	maxItemWords      = 6
)

// subjectCues maps keyword groups to the canonical subject stored in the
// session context. First hit wins.
var subjectCues = []struct {
	subject string
	words   []string
}{
	{"daru", []string{"daru", "sharab", "whisky", "whiskey", "vodka", "rum", "beer", "wine"}},
	{"phone", []string{"phone", "mobile", "smartphone"}},
	{"laptop", []string{"laptop", "notebook"}},
	{"movie", []string{"movie", "film", "picture dekh"}},
}

// extractSubject guesses the coarse topic of a query for follow-up
// resolution. Empty when nothing matches.
func extractSubject(text string) string {
	lower := strings.ToLower(text)
	for _, cue := range subjectCues {
		for _, w := range cue.words {
			if strings.Contains(lower, w) {
				return cue.subject
			}
		}
	}
	return ""
}

var (
	bulletLinePattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	quoteTrimmer      = strings.NewReplacer("\"", "", "'", "", "**", "", "`", "")
)

// extractItems pulls candidate list entries out of a generated reply so a
// later "inme se" style follow-up can reference them. Bullet and numbered
// lines are preferred; short comma-separated lines are the fallback.
func extractItems(reply string) []string {
	var items []string
	lines := strings.Split(reply, "\n")
	for _, line := range lines {
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
			items = appendItem(items, m[1])
		}
	}
	if len(items) == 0 {
		for _, line := range lines {
			if strings.Count(line, ",") < 2 {
				continue
			}
			for _, part := range strings.Split(line, ",") {
				items = appendItem(items, part)
			}
		}
	}
	if len(items) > maxExtractedItems {
		items = items[:maxExtractedItems]
	}
	return items
}

func appendItem(items []string, raw string) []string {
	item := strings.TrimSpace(quoteTrimmer.Replace(raw))
	// Items with trailing commentary keep only the name-ish head.
	if idx := strings.IndexAny(item, ":—"); idx > 0 {
		item = strings.TrimSpace(item[:idx])
	}
	if item == "" || len(item) > maxItemLen {
		return items
	}
	if len(strings.Fields(item)) > maxItemWords {
		return items
	}
	for _, existing := range items {
		if strings.EqualFold(existing, item) {
			return items
		}
	}
	return append(items, item)
}

// lyricsExcerpt trims a search snippet down to a short quotable line.
func lyricsExcerpt(snippet string, limit int) string {
	line := snippet
	for _, candidate := range strings.Split(snippet, "\n") {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" {
			line = candidate
			break
		}
	}
	if len(line) <= limit {
		return line
	}
	cut := line[:limit-3]
	if idx := strings.LastIndex(cut, " "); idx > limit/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
