package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pappu-dcbot-go/internal/classifier"
	"github.com/pappu-dcbot-go/internal/i18n"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/pappu-dcbot-go/internal/platform"
)

// dispatchAdmin executes a parsed owner command. Acks go out before any
// process-level hook fires so the owner always sees confirmation.
func (r *Router) dispatchAdmin(ctx context.Context, ev models.Event, cmd *classifier.AdminCommand, lang string) {
	if cmd == nil {
		return
	}
	r.metrics.RecordAdminCommand(adminCommandLabel(cmd.Kind))
	log := r.logger.WithFields(logrus.Fields{
		"command": adminCommandLabel(cmd.Kind),
		"guild":   ev.GuildID,
	})
	log.Info("Admin command")

	switch cmd.Kind {
	case classifier.AdminShutdown:
		r.send(ev.ChannelID, "Thik hai Papa ji, so raha hoon. 😴")
		if r.control.Shutdown != nil {
			r.control.Shutdown()
		}
	case classifier.AdminRestart:
		r.send(ev.ChannelID, "Restart kar raha hoon Papa ji, abhi wapas aata hoon. 🔄")
		if r.control.Restart != nil {
			r.control.Restart()
		}
	case classifier.AdminOwnerDM:
		r.toggleCommand(ctx, ev, lang, cmd.Toggle, "owner_dm", func(on bool) {
			r.settings.SetOwnerDMOnly(ctx, on)
		})
	case classifier.AdminStealth:
		r.toggleCommand(ctx, ev, lang, cmd.Toggle, "stealth", func(on bool) {
			r.settings.SetStealth(ctx, on)
			if err := r.platform.SetPresence(on); err != nil {
				log.WithError(err).Warn("Presence update failed")
			}
		})
	case classifier.AdminEnglish:
		r.toggleCommand(ctx, ev, lang, cmd.Toggle, "english", func(on bool) {
			r.settings.SetEnglishLock(ctx, on)
		})
	case classifier.AdminProfanity:
		r.toggleCommand(ctx, ev, lang, cmd.Toggle, "allow_profanity", func(on bool) {
			r.settings.SetAllowProfanity(ctx, on)
		})
	case classifier.AdminMode:
		if r.settings.ApplyMode(ctx, cmd.Mode) {
			r.send(ev.ChannelID, fmt.Sprintf("Mode badal diya Papa ji: ab main **%s** hoon. 😏", r.settings.Snapshot().Mode))
		} else {
			r.send(ev.ChannelID, fmt.Sprintf("Ye `%s` kaunsa mode hai Papa ji? Options: funny, angry, serious, flirty, sarcastic, bhaukaal, kid, toxic, coder, bhai-ji, dark.", cmd.Mode))
		}
	case classifier.AdminDeleteLast:
		r.deleteLast(ev, lang)
	case classifier.AdminAnnounce:
		r.announce(ctx, ev, cmd.Topic, lang)
	case classifier.AdminMute:
		r.roleAction(ev, lang, "mute", func(target models.TaggedUser) error {
			return r.platform.AddRole(ev.GuildID, target.ID, "Muted")
		}, "Papa ji, %s ko mute kar diya. 🤐")
	case classifier.AdminUnmute:
		r.roleAction(ev, lang, "unmute", func(target models.TaggedUser) error {
			return r.platform.RemoveRole(ev.GuildID, target.ID, "Muted")
		}, "Papa ji, %s ab bol sakta hai. 🔊")
	case classifier.AdminKick:
		r.memberAction(ev, lang, "kick", func(target models.TaggedUser) error {
			return r.platform.Kick(ev.GuildID, target.ID, "Papa ji ka order")
		}, "%s ko bahar nikal diya Papa ji. 👋")
	case classifier.AdminBan:
		r.memberAction(ev, lang, "ban", func(target models.TaggedUser) error {
			return r.platform.Ban(ev.GuildID, target.ID, "Papa ji ka order")
		}, "%s ko ban kar diya Papa ji. 🔨")
	case classifier.AdminUnban:
		r.unban(ev, cmd.UnbanSpec, lang)
	case classifier.AdminRoast:
		r.ownerRoast(ev, lang)
	}
}

func adminCommandLabel(kind classifier.AdminKind) string {
	switch kind {
	case classifier.AdminShutdown:
		return "shutdown"
	case classifier.AdminRestart:
		return "restart"
	case classifier.AdminOwnerDM:
		return "owner_dm"
	case classifier.AdminStealth:
		return "stealth"
	case classifier.AdminMode:
		return "mode"
	case classifier.AdminEnglish:
		return "english"
	case classifier.AdminProfanity:
		return "allow_profanity"
	case classifier.AdminDeleteLast:
		return "delete_last"
	case classifier.AdminAnnounce:
		return "announce"
	case classifier.AdminMute:
		return "mute"
	case classifier.AdminUnmute:
		return "unmute"
	case classifier.AdminKick:
		return "kick"
	case classifier.AdminBan:
		return "ban"
	case classifier.AdminUnban:
		return "unban"
	case classifier.AdminRoast:
		return "roast"
	default:
		return "unknown"
	}
}

func (r *Router) toggleCommand(ctx context.Context, ev models.Event, lang string, toggle classifier.Toggle, name string, apply func(on bool)) {
	switch toggle {
	case classifier.ToggleOn:
		apply(true)
		if name == "owner_dm" {
			r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgMaintenance, nil))
		} else {
			r.send(ev.ChannelID, fmt.Sprintf("`%s` on kar diya Papa ji. ✅", name))
		}
	case classifier.ToggleOff:
		apply(false)
		r.send(ev.ChannelID, fmt.Sprintf("`%s` off kar diya Papa ji. ❎", name))
	default:
		r.send(ev.ChannelID, fmt.Sprintf("Papa ji, `%s on` ya `%s off` bolo.", name, name))
	}
}

// deleteLast removes the bot's most recent message in the channel.
func (r *Router) deleteLast(ev models.Event, lang string) {
	history, err := r.platform.RecentHistory(ev.ChannelID, historyScan)
	if err != nil {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgActionFailed, map[string]interface{}{"Error": err.Error()}))
		return
	}
	botID := r.platform.BotUserID()
	for _, msg := range history {
		if msg.AuthorID != botID {
			continue
		}
		if err := r.platform.DeleteMessage(ev.ChannelID, msg.ID); err != nil {
			r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgActionFailed, map[string]interface{}{"Error": err.Error()}))
			return
		}
		r.send(ev.ChannelID, "Ho gaya delete Papa ji. 🗑️")
		return
	}
	r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgNoLastMessage, nil))
}

// announce drafts an announcement with the generation backend and posts
// it to the tagged channel, or the current one when none is tagged.
func (r *Router) announce(ctx context.Context, ev models.Event, topic, lang string) {
	if topic == "" {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgAnnouncementTopic, nil))
		return
	}
	if !r.gen.Configured() {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgGenNotConfigured, map[string]interface{}{"Name": ownerDisplayName}))
		return
	}

	target := ev.TargetChannel()
	r.platform.Typing(target)
	draft, err := r.gen.Generate(ctx, buildAnnouncementPrompt(topic))
	if err != nil {
		r.logger.WithError(err).Error("Announcement draft failed")
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgApology, map[string]interface{}{
			"Name":  ownerDisplayName,
			"Error": err.Error(),
		}))
		return
	}
	r.send(target, draft)
	if target != ev.ChannelID {
		r.send(ev.ChannelID, "Announcement bhej diya Papa ji. 📢")
	}
}

func (r *Router) roleAction(ev models.Event, lang, action string, do func(models.TaggedUser) error, ack string) {
	target, ok := ev.Target()
	if !ok {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgTagTarget, map[string]interface{}{"Action": action}))
		return
	}
	if err := do(target); err != nil {
		if errors.Is(err, platform.ErrRoleNotFound) {
			r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgMutedRoleMissing, nil))
			return
		}
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgActionFailed, map[string]interface{}{"Error": err.Error()}))
		return
	}
	r.send(ev.ChannelID, fmt.Sprintf(ack, target.DisplayName))
}

func (r *Router) memberAction(ev models.Event, lang, action string, do func(models.TaggedUser) error, ack string) {
	target, ok := ev.Target()
	if !ok {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgTagTarget, map[string]interface{}{"Action": action}))
		return
	}
	if err := do(target); err != nil {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgActionFailed, map[string]interface{}{"Error": err.Error()}))
		return
	}
	r.send(ev.ChannelID, fmt.Sprintf(ack, target.DisplayName))
}

// unban accepts either a tagged user or a raw id / name#discrim token.
func (r *Router) unban(ev models.Event, spec, lang string) {
	if target, ok := ev.Target(); ok && spec == "" {
		spec = target.ID
	}
	if spec == "" {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgTagTarget, map[string]interface{}{"Action": "unban"}))
		return
	}
	username, err := r.platform.Unban(ev.GuildID, spec)
	if err != nil {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgActionFailed, map[string]interface{}{"Error": err.Error()}))
		return
	}
	r.send(ev.ChannelID, fmt.Sprintf("%s ka ban hata diya Papa ji. 🤝", username))
}

// ownerRoast serves an explicit "roast them" order from the owner. The
// profanity toggle picks the pool; with the toggle off the target still
// gets roasted, just clean.
func (r *Router) ownerRoast(ev models.Event, lang string) {
	target, ok := ev.Target()
	if !ok {
		r.send(ev.ChannelID, r.localizer.Get(lang, i18n.MsgTagTarget, map[string]interface{}{"Action": "roast"}))
		return
	}
	set := r.settings.Snapshot()
	r.send(ev.ChannelID, chooseRoast(target.DisplayName, set.AllowProfanity))
}
