package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLocalizesPerLanguage(t *testing.T) {
	l := NewLocalizer("hi")

	hi := l.Get("hi", MsgGreeting, map[string]interface{}{"Name": "Rahul"})
	assert.Contains(t, hi, "Rahul")
	assert.Contains(t, hi, "scene")

	en := l.Get("en", MsgGreeting, map[string]interface{}{"Name": "Rahul"})
	assert.Contains(t, en, "Rahul")
	assert.Contains(t, en, "what's up")
}

func TestGetInterpolatesErrorData(t *testing.T) {
	l := NewLocalizer("hi")
	got := l.Get("en", MsgApology, map[string]interface{}{"Name": "Rahul", "Error": "timeout"})
	assert.Contains(t, got, "timeout")
}

func TestGetFallsBackToDefaultLanguage(t *testing.T) {
	l := NewLocalizer("hi")
	got := l.Get("fr", MsgEmptyReply, nil)
	assert.NotEmpty(t, got)
}
