package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pappu-dcbot-go/internal/models"
)

func classifyAdmin(t *testing.T, c *Classifier, ev models.Event) *AdminCommand {
	t.Helper()
	result := c.Classify(ev, nil)
	require.Equal(t, IntentAdmin, result.Intent, "content: %s", ev.Content)
	require.NotNil(t, result.Admin)
	return result.Admin
}

func TestAdminRequiresOwner(t *testing.T) {
	c := newTestClassifier()
	result := c.Classify(guildEvent(testUser, "pappu shutdown"), nil)
	assert.NotEqual(t, IntentAdmin, result.Intent)
}

func TestAdminRequiresInvocation(t *testing.T) {
	c := newTestClassifier()
	ev := guildEvent(testOwner, "pappu shutdown")
	ev.Invoked = false
	result := c.Classify(ev, nil)
	assert.Equal(t, IntentIgnore, result.Intent)
}

func TestAdminLifecycleCommands(t *testing.T) {
	c := newTestClassifier()

	cmd := classifyAdmin(t, c, guildEvent(testOwner, "pappu shutdown"))
	assert.Equal(t, AdminShutdown, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu sleep"))
	assert.Equal(t, AdminShutdown, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu restart"))
	assert.Equal(t, AdminRestart, cmd.Kind)
}

func TestAdminToggles(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		content string
		kind    AdminKind
		toggle  Toggle
	}{
		{"pappu owner_dm on", AdminOwnerDM, ToggleOn},
		{"pappu owner_dm off", AdminOwnerDM, ToggleOff},
		{"pappu owner_dm pls", AdminOwnerDM, ToggleInvalid},
		{"pappu stealth on", AdminStealth, ToggleOn},
		{"pappu english off", AdminEnglish, ToggleOff},
		{"pappu allow_profanity on", AdminProfanity, ToggleOn},
	}
	for _, tt := range tests {
		cmd := classifyAdmin(t, c, guildEvent(testOwner, tt.content))
		assert.Equal(t, tt.kind, cmd.Kind, tt.content)
		assert.Equal(t, tt.toggle, cmd.Toggle, tt.content)
	}
}

func TestAdminModeCommand(t *testing.T) {
	c := newTestClassifier()

	cmd := classifyAdmin(t, c, guildEvent(testOwner, "pappu mode toxic"))
	assert.Equal(t, AdminMode, cmd.Kind)
	assert.Equal(t, "toxic", cmd.Mode)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu mode"))
	assert.Empty(t, cmd.Mode, "bare mode command carries no candidate")
}

func TestAdminGuildOnlyCommands(t *testing.T) {
	c := newTestClassifier()

	cmd := classifyAdmin(t, c, guildEvent(testOwner, "pappu delete last message"))
	assert.Equal(t, AdminDeleteLast, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu pichla message hata de"))
	assert.Equal(t, AdminDeleteLast, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu unmute karo"))
	assert.Equal(t, AdminUnmute, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu mute kar do"))
	assert.Equal(t, AdminMute, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu isko kick kar"))
	assert.Equal(t, AdminKick, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu isko bahar nikal"))
	assert.Equal(t, AdminKick, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu isko ban kar de"))
	assert.Equal(t, AdminBan, cmd.Kind)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu isko gali de"))
	assert.Equal(t, AdminRoast, cmd.Kind)
}

func TestAdminUnbanSpec(t *testing.T) {
	c := newTestClassifier()

	cmd := classifyAdmin(t, c, guildEvent(testOwner, "pappu unban 123456789"))
	assert.Equal(t, AdminUnban, cmd.Kind)
	assert.Equal(t, "123456789", cmd.UnbanSpec)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu unban rahul#1234"))
	assert.Equal(t, "rahul#1234", cmd.UnbanSpec)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu unban karo"))
	assert.Empty(t, cmd.UnbanSpec)
}

func TestAdminAnnounceExtractsTopic(t *testing.T) {
	c := newTestClassifier()

	cmd := classifyAdmin(t, c, guildEvent(testOwner, "pappu announce weekend gaming event"))
	assert.Equal(t, AdminAnnounce, cmd.Kind)
	assert.Equal(t, "weekend gaming event", cmd.Topic)

	cmd = classifyAdmin(t, c, guildEvent(testOwner, "pappu announcement"))
	assert.Empty(t, cmd.Topic)
}

func TestGuildCommandsRejectedInDM(t *testing.T) {
	c := newTestClassifier()

	ev := guildEvent(testOwner, "pappu isko mute kar")
	ev.GuildID = ""
	ev.IsDM = true
	result := c.Classify(ev, nil)
	assert.NotEqual(t, IntentAdmin, result.Intent)
}

func TestOwnerChatStillFallsThrough(t *testing.T) {
	c := newTestClassifier()
	result := c.Classify(guildEvent(testOwner, "pappu ek shayari suna"), nil)
	assert.Equal(t, IntentChat, result.Intent)
}
