package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pappu-dcbot-go/internal/models"
)

const (
	testOwner = "111"
	testUser  = "222"
)

func guildEvent(author, content string) models.Event {
	return models.Event{
		ChannelID:  "chan",
		GuildID:    "guild",
		AuthorID:   author,
		AuthorName: "Rahul",
		Content:    content,
		Invoked:    true,
	}
}

func newTestClassifier() *Classifier {
	return New("pappu", testOwner, true, false, true)
}

func TestClassifyIgnoresUninvokedMessages(t *testing.T) {
	c := newTestClassifier()
	ev := guildEvent(testUser, "kya haal hai sab log")
	ev.Invoked = false

	result := c.Classify(ev, nil)
	assert.Equal(t, IntentIgnore, result.Intent)
}

func TestClassifyGreeting(t *testing.T) {
	c := newTestClassifier()
	for _, content := range []string{"pappu", "Pappu!", "pappu?"} {
		result := c.Classify(guildEvent(testUser, content), nil)
		assert.Equal(t, IntentGreeting, result.Intent, content)
	}
}

func TestClassifyDefaultsToChat(t *testing.T) {
	c := newTestClassifier()
	result := c.Classify(guildEvent(testUser, "pappu ek joke suna"), nil)
	assert.Equal(t, IntentChat, result.Intent)
	assert.Equal(t, "pappu ek joke suna", result.Query)
}

func TestInsultBeatsFollowUp(t *testing.T) {
	c := newTestClassifier()
	session := &models.SessionEntry{LastQuery: "daru suggest karo", Items: []string{"Old Monk"}}

	// Short, cued, and insulting: the insult rule runs first.
	result := c.Classify(guildEvent(testUser, "chutiya naam bata"), session)
	assert.Equal(t, IntentInsult, result.Intent)
}

func TestInsultRequiresDirection(t *testing.T) {
	c := newTestClassifier()

	ev := guildEvent(testUser, "tu chutiya hai")
	result := c.Classify(ev, nil)
	assert.Equal(t, IntentInsult, result.Intent, "wake-word with nobody else tagged is directed")

	ev.TaggedUsers = []models.TaggedUser{{ID: "333", DisplayName: "Amit"}}
	result = c.Classify(ev, nil)
	assert.NotEqual(t, IntentInsult, result.Intent, "two humans fighting are left alone")

	// retaliate_all ignores direction entirely.
	all := New("pappu", testOwner, true, true, true)
	result = all.Classify(ev, nil)
	assert.Equal(t, IntentInsult, result.Intent)
}

func TestInsultNeverFiresForOwner(t *testing.T) {
	c := newTestClassifier()
	result := c.Classify(guildEvent(testOwner, "tu chutiya hai"), nil)
	assert.NotEqual(t, IntentInsult, result.Intent)
}

func TestReplyToBotInsultIsDirected(t *testing.T) {
	c := newTestClassifier()
	ev := guildEvent(testUser, "bekar jawab, idiot")
	ev.Invoked = true
	ev.IsReplyToBot = true
	result := c.Classify(ev, nil)
	assert.Equal(t, IntentInsult, result.Intent)
}

func TestFollowUpExpandsWithItems(t *testing.T) {
	c := newTestClassifier()
	session := &models.SessionEntry{
		LastQuery: "daru suggest karo",
		Items:     []string{"Old Monk", "Magic Moments"},
	}

	result := c.Classify(guildEvent(testUser, "naam bata"), session)
	require.Equal(t, IntentFollowUp, result.Intent)
	assert.Equal(t,
		"daru suggest karo — items: Old Monk, Magic Moments — follow-up: naam bata",
		result.Query)
}

func TestFollowUpWithoutItems(t *testing.T) {
	c := newTestClassifier()
	session := &models.SessionEntry{LastQuery: "best phone under 20k"}

	result := c.Classify(guildEvent(testUser, "which one"), session)
	require.Equal(t, IntentFollowUp, result.Intent)
	assert.Equal(t, "best phone under 20k — user follow-up: which one", result.Query)
}

func TestFollowUpCapsInjectedItems(t *testing.T) {
	c := newTestClassifier()
	session := &models.SessionEntry{
		LastQuery: "daru list de",
		Items:     []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	}

	result := c.Classify(guildEvent(testUser, "inme se kaun"), session)
	require.Equal(t, IntentFollowUp, result.Intent)
	assert.Equal(t, "daru list de — items: a, b, c, d, e, f — follow-up: inme se kaun", result.Query)
}

func TestFollowUpRequiresShortCuedMessage(t *testing.T) {
	c := newTestClassifier()
	session := &models.SessionEntry{LastQuery: "daru suggest karo"}

	// Too long to be an ellipsis.
	result := c.Classify(guildEvent(testUser, "pappu uska naam kya tha jo tune bataya"), session)
	assert.NotEqual(t, IntentFollowUp, result.Intent)

	// No cue word at all.
	result = c.Classify(guildEvent(testUser, "thik hai bhai"), session)
	assert.NotEqual(t, IntentFollowUp, result.Intent)

	// No session context.
	result = c.Classify(guildEvent(testUser, "naam bata"), nil)
	assert.NotEqual(t, IntentFollowUp, result.Intent)
}

func TestExtractSong(t *testing.T) {
	tests := []struct {
		text string
		song string
		ok   bool
	}{
		{"pappu lyrics of Tum Hi Ho", "Tum Hi Ho", true},
		{"lyrics for 'Kesariya'", "Kesariya", true},
		{"pappu Kesariya lyrics bhej", "bhej", true},
		{"gaana bajao", "", false},
	}
	for _, tt := range tests {
		song, ok := ExtractSong(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		if tt.ok {
			assert.Equal(t, tt.song, song, tt.text)
		}
	}
}

func TestClassifyLyrics(t *testing.T) {
	c := newTestClassifier()
	result := c.Classify(guildEvent(testUser, "pappu lyrics of Tum Hi Ho"), nil)
	require.Equal(t, IntentLyrics, result.Intent)
	assert.Equal(t, "Tum Hi Ho", result.Song)
}

func TestLiveInfoNeedsSearchBackend(t *testing.T) {
	withSearch := newTestClassifier()
	result := withSearch.Classify(guildEvent(testUser, "pappu aaj ki news kya hai"), nil)
	assert.Equal(t, IntentLiveInfo, result.Intent)

	noSearch := New("pappu", testOwner, true, false, false)
	result = noSearch.Classify(guildEvent(testUser, "pappu aaj ki news kya hai"), nil)
	assert.Equal(t, IntentChat, result.Intent, "recency cues degrade to chat without a backend")
}

func TestContainsInsult(t *testing.T) {
	assert.True(t, ContainsInsult("tu chutiya hai"))
	assert.True(t, ContainsInsult("kya STUPID bot hai"))
	assert.True(t, ContainsInsult("chup kar!!!"))
	assert.False(t, ContainsInsult("bhai ek gaana suna de"))
	assert.False(t, ContainsInsult("wow!!"))
}
