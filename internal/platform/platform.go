package platform

import (
	"github.com/pappu-dcbot-go/internal/models"
)

// Adapter is the narrow chat-platform surface the router talks to.
type Adapter interface {
	BotUserID() string

	// SendText delivers text to a channel, chunked to the platform's
	// message length limit.
	SendText(channelID, text string) error
	Typing(channelID string)
	SetPresence(invisible bool) error

	DeleteMessage(channelID, messageID string) error
	RecentHistory(channelID string, limit int) ([]models.HistoryMessage, error)

	AddRole(guildID, userID, roleName string) error
	RemoveRole(guildID, userID, roleName string) error
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error

	// Unban lifts a ban matched by user id or name#discriminator and
	// returns the display name of the unbanned user.
	Unban(guildID, spec string) (string, error)
}
