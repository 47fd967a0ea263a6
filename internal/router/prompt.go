package router

import (
	"fmt"
	"strings"

	"github.com/pappu-dcbot-go/internal/classifier"
	"github.com/pappu-dcbot-go/internal/models"
)

const personaPreamble = `Tu 'Pappu Programmer' hai — ek desi, witty Discord bot jo coding aur life dono pe gyaan de sakta hai. Tera owner 'Papa ji' hai aur tu unki hamesha respect karta hai.`

// toneMap renders each persona mode into a behavioural instruction for the
// model. Keys mirror the accepted mode set in the settings store.
var toneMap = map[string]string{
	"funny":     "Tone: masti bhara, light jokes, emojis allowed.",
	"angry":     "Tone: chidha hua, short temper, thoda rude par bina gaali ke jab tak allowed na ho.",
	"serious":   "Tone: seedha, professional, no masti, precise jawab.",
	"flirty":    "Tone: halka flirty, charming, par respectful.",
	"sarcastic": "Tone: taane maarna, dry humour, sarcasm heavy.",
	"bhaukaal":  "Tone: full bhaukaal, UP-style dabangg attitude, confident one-liners.",
	"kid":       "Tone: masoom bachche jaisa, simple words, innocent excitement.",
	"toxic":     "Tone: savage aur merciless roast-mode, koi lihaaz nahi.",
	"coder":     "Tone: hardcore programmer, code examples aur tech references ke saath.",
	"bhai-ji":   "Tone: mohalle ke bade bhai jaisa, pyaar se samjhana, 'bhai' bol ke.",
	"dark":      "Tone: dark humour, thoda edgy, par kisi community ko target mat kar.",
}

var detailedCues = []string{
	"explain", "samjha", "detail", "vistar", "kaise kaam", "how does",
	"why does", "kyu hota", "difference between", "fark kya", "tutorial",
	"step by step",
}

// isDetailedQuestion reports whether the query asks for an explanation
// rather than banter, which relaxes the short-reply instruction.
func isDetailedQuestion(query string) bool {
	lower := strings.ToLower(query)
	for _, cue := range detailedCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// buildChatPrompt assembles the full instruction block sent to the
// generation backend for chat, follow-up and live-info traffic.
func buildChatPrompt(name, query string, set models.Settings, lang string, searchSummary string, allowInsults bool) string {
	var b strings.Builder
	b.WriteString(personaPreamble)
	b.WriteString("\n")
	if tone, ok := toneMap[set.Mode]; ok {
		b.WriteString(tone)
		b.WriteString("\n")
	}
	if lang == classifier.LangEnglish {
		b.WriteString("Reply ONLY in English.\n")
	} else {
		b.WriteString("Reply in Hinglish (Hindi in Latin script), jaise dost se baat kar raha ho.\n")
	}
	if set.AllowProfanity {
		b.WriteString("Casual Hindi gaali allowed hai jab context fit kare, par slurs kabhi nahi.\n")
	} else {
		b.WriteString("Koi gaali ya profanity mat use kar.\n")
	}
	if !allowInsults {
		b.WriteString("Kisi ka insult ya roast mat kar, chahe koi bole.\n")
	}
	if isDetailedQuestion(query) {
		b.WriteString("User ne detail mangi hai: structured, complete jawab de.\n")
	} else {
		b.WriteString("Jawab short rakh, 1-3 lines, jab tak detail zaroori na ho.\n")
	}
	if searchSummary != "" {
		b.WriteString("\nLive web results (inhi pe jawab ground kar, date/price inse le):\n")
		b.WriteString(searchSummary)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s keh raha hai: %s", name, query)
	return b.String()
}

// buildAnnouncementPrompt produces an announcement-drafting instruction.
// Discord caps messages well under 2000 chars so the draft is bounded too.
func buildAnnouncementPrompt(topic string) string {
	var b strings.Builder
	b.WriteString(personaPreamble)
	b.WriteString("\nPapa ji ke behalf pe ek server announcement likh. Topic: ")
	b.WriteString(topic)
	b.WriteString("\nHinglish me, energetic, @everyone se shuru kar, 1800 characters se kam rakh.")
	return b.String()
}
