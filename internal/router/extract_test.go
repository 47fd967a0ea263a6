package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pappu-dcbot-go/internal/models"
)

func settingsWith(mode string, allowProfanity bool) models.Settings {
	return models.Settings{Mode: mode, AllowProfanity: allowProfanity}
}

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"koi achhi daru suggest karo", "daru"},
		{"best whisky under 2000", "daru"},
		{"konsa phone lu 20k me", "phone"},
		{"gaming laptop batao", "laptop"},
		{"weekend pe movie suggest kar", "movie"},
		{"ek joke suna", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractSubject(tt.text), tt.text)
	}
}

func TestExtractItemsFromBullets(t *testing.T) {
	reply := "Ye options dekh:\n- Old Monk: sasta aur solid\n* Magic Moments\n1. Blenders Pride\n2) Royal Stag\nSab milenge aaram se."

	items := extractItems(reply)
	assert.Equal(t, []string{"Old Monk", "Magic Moments", "Blenders Pride", "Royal Stag"}, items)
}

func TestExtractItemsCommaFallback(t *testing.T) {
	reply := "Old Monk, Magic Moments, Blenders Pride — teeno chalenge"

	items := extractItems(reply)
	assert.Contains(t, items, "Old Monk")
	assert.Contains(t, items, "Magic Moments")
}

func TestExtractItemsSkipsProse(t *testing.T) {
	reply := "- Is question ka jawab thoda lamba hai isliye main puri detail me batata hoon bhai"
	assert.Empty(t, extractItems(reply), "long prose lines are not list items")
}

func TestExtractItemsDeduplicatesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("- Old Monk\n- old monk\n")
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		b.WriteString("- Brand " + name + "\n")
	}

	items := extractItems(b.String())
	assert.Len(t, items, maxExtractedItems)
	assert.Equal(t, "Old Monk", items[0])
	assert.Equal(t, "Brand A", items[1])
}

func TestLyricsExcerptRespectsLimit(t *testing.T) {
	short := "ek pal ka jeena"
	assert.Equal(t, short, lyricsExcerpt(short, lyricsLimit))

	long := strings.Repeat("phir to hai jaana ", 10)
	got := lyricsExcerpt(long, lyricsLimit)
	assert.LessOrEqual(t, len(got), lyricsLimit)
	assert.True(t, strings.HasSuffix(got, "..."))

	multiline := "\n\nTum hi ho, ab tum hi ho\nZindagi ab tum hi ho"
	assert.Equal(t, "Tum hi ho, ab tum hi ho", lyricsExcerpt(multiline, lyricsLimit))
}

func TestIsDetailedQuestion(t *testing.T) {
	assert.True(t, isDetailedQuestion("goroutines explain karo detail me"))
	assert.True(t, isDetailedQuestion("difference between slice and array"))
	assert.False(t, isDetailedQuestion("ek joke suna"))
}

func TestBuildChatPromptCarriesModeAndLanguage(t *testing.T) {
	set := settingsWith("bhaukaal", false)

	prompt := buildChatPrompt("Rahul", "kya haal", set, "hi", "", true)
	assert.Contains(t, prompt, "bhaukaal")
	assert.Contains(t, prompt, "Hinglish")
	assert.Contains(t, prompt, "Rahul keh raha hai: kya haal")
	assert.Contains(t, prompt, "Koi gaali ya profanity mat use kar")

	prompt = buildChatPrompt("Rahul", "how are you", set, "en", "", true)
	assert.Contains(t, prompt, "ONLY in English")
}

func TestBuildChatPromptGroundsOnSearch(t *testing.T) {
	set := settingsWith("funny", false)

	prompt := buildChatPrompt("Rahul", "aaj ka score", set, "hi", "• IPL — CSK won", true)
	assert.Contains(t, prompt, "CSK won")

	prompt = buildChatPrompt("Rahul", "kya haal", set, "hi", "", true)
	assert.NotContains(t, prompt, "Live web results")
}

func TestBuildChatPromptRespectsInsultToggle(t *testing.T) {
	set := settingsWith("funny", false)
	prompt := buildChatPrompt("Rahul", "kya haal", set, "hi", "", false)
	assert.Contains(t, prompt, "insult ya roast mat kar")
}
