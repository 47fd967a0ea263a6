package i18n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs
const (
	MsgGreeting            = "greeting"
	MsgMaintenance         = "maintenance"
	MsgSearchNotConfigured = "search_not_configured"
	MsgGenNotConfigured    = "gen_not_configured"
	MsgApology             = "apology"
	MsgEmptyReply          = "empty_reply"
	MsgTagTarget           = "tag_target"
	MsgMutedRoleMissing    = "muted_role_missing"
	MsgNoLastMessage       = "no_last_message"
	MsgAnnouncementTopic   = "announcement_topic"
	MsgPoliteDeflection    = "polite_deflection"
	MsgRateLimited         = "rate_limited"
	MsgActionFailed        = "action_failed"
)

// Localizer serves the fixed user-visible notices in the two reply
// registers: plain English and Hinglish.
type Localizer struct {
	defaultLanguage string
	localizers      map[string]*i18n.Localizer
}

// NewLocalizer builds the bundle with the built-in message catalogs.
func NewLocalizer(defaultLanguage string) *Localizer {
	bundle := i18n.NewBundle(language.English)

	bundle.AddMessages(language.English,
		&i18n.Message{ID: MsgGreeting, Other: "Yes {{.Name}}, what's up? 😎"},
		&i18n.Message{ID: MsgMaintenance, Other: "Maintenance mode is on — replying to the owner only right now."},
		&i18n.Message{ID: MsgSearchNotConfigured, Other: "Live search is not configured. Ask the owner to set a search provider."},
		&i18n.Message{ID: MsgGenNotConfigured, Other: "{{.Name}}, my Gemini key is missing, so I can only give simple replies. Tell me a topic."},
		&i18n.Message{ID: MsgApology, Other: "Something went wrong, please try again: `{{.Error}}`"},
		&i18n.Message{ID: MsgEmptyReply, Other: "Got a blank answer somehow, send that again."},
		&i18n.Message{ID: MsgTagTarget, Other: "Who should I {{.Action}}? Tag someone."},
		&i18n.Message{ID: MsgMutedRoleMissing, Other: "No Muted role found, create one first."},
		&i18n.Message{ID: MsgNoLastMessage, Other: "Couldn't find my last message there."},
		&i18n.Message{ID: MsgAnnouncementTopic, Other: "What topic should the announcement cover?"},
		&i18n.Message{ID: MsgPoliteDeflection, Other: "Let's keep it civil, I only roast when allowed. 🙂"},
		&i18n.Message{ID: MsgRateLimited, Other: "Easy there — too many requests, try again in a bit."},
		&i18n.Message{ID: MsgActionFailed, Other: "That didn't work: `{{.Error}}`"},
	)

	bundle.AddMessages(language.Hindi,
		&i18n.Message{ID: MsgGreeting, Other: "Haan {{.Name}}, bol kya scene hai? 😎"},
		&i18n.Message{ID: MsgMaintenance, Other: "Papa ji, maintenance mode chalu hai — abhi sirf owner se reply karta hoon."},
		&i18n.Message{ID: MsgSearchNotConfigured, Other: "Live search configure nahi hai. Owner se bolo provider set kare."},
		&i18n.Message{ID: MsgGenNotConfigured, Other: "{{.Name}}, Gemini key missing hai, isliye simple reply de paunga. Topic batao."},
		&i18n.Message{ID: MsgApology, Other: "Kuch error aa gaya {{.Name}}: `{{.Error}}` — dobara try karo."},
		&i18n.Message{ID: MsgEmptyReply, Other: "Kuch blank sa aa gaya, dobara bhejo."},
		&i18n.Message{ID: MsgTagTarget, Other: "Kisko {{.Action}} karna hai? @mention karo."},
		&i18n.Message{ID: MsgMutedRoleMissing, Other: "Muted role nahi mila, pehle role banao."},
		&i18n.Message{ID: MsgNoLastMessage, Other: "Last message nahi mila wahan."},
		&i18n.Message{ID: MsgAnnouncementTopic, Other: "Kis topic pe announcement chahiye?"},
		&i18n.Message{ID: MsgPoliteDeflection, Other: "Thanda le bhai, main bina permission roast nahi karta. 🙂"},
		&i18n.Message{ID: MsgRateLimited, Other: "Arre itni jaldi kya hai — thoda ruk ke try karo."},
		&i18n.Message{ID: MsgActionFailed, Other: "Ye kaam nahi hua: `{{.Error}}`"},
	)

	localizers := map[string]*i18n.Localizer{
		"en": i18n.NewLocalizer(bundle, "en"),
		"hi": i18n.NewLocalizer(bundle, "hi"),
	}

	if _, ok := localizers[defaultLanguage]; !ok {
		defaultLanguage = "hi"
	}

	return &Localizer{
		defaultLanguage: defaultLanguage,
		localizers:      localizers,
	}
}

// Get returns the localized message
func (l *Localizer) Get(lang, messageID string, data map[string]interface{}) string {
	localizer, exists := l.localizers[lang]
	if !exists {
		localizer = l.localizers[l.defaultLanguage]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID // Fallback to message ID
	}

	return msg
}
