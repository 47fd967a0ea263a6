package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextIsSinglePiece(t *testing.T) {
	chunks := SplitMessage("chhota message", 100)
	assert.Equal(t, []string{"chhota message"}, chunks)
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("pehli line hai ye wali\n", 20)
	chunks := SplitMessage(strings.TrimSpace(text), 100)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
		assert.False(t, strings.HasPrefix(chunk, "line hai"), "cuts land on line boundaries")
	}
	assert.Equal(t, strings.TrimSpace(text), strings.Join(chunks, "\n"))
}

func TestSplitMessageFallsBackToSpaces(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("shabd ", 60))
	chunks := SplitMessage(text, 100)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
	}
	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestSplitMessageHardCutsUnbreakableText(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := SplitMessage(text, 100)

	assert.Equal(t, []string{
		strings.Repeat("a", 100),
		strings.Repeat("a", 100),
		strings.Repeat("a", 50),
	}, chunks)
}
