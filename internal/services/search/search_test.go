package search

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pappu-dcbot-go/internal/config"
	"github.com/pappu-dcbot-go/internal/models"
)

func TestConfigured(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	tests := []struct {
		name string
		cfg  config.SearchConfig
		want bool
	}{
		{"no provider", config.SearchConfig{}, false},
		{"serpapi without key", config.SearchConfig{Provider: "serpapi"}, false},
		{"serpapi with key", config.SearchConfig{Provider: "serpapi", SerpAPIKey: "k"}, true},
		{"google missing cx", config.SearchConfig{Provider: "google", GoogleAPIKey: "k"}, false},
		{"google complete", config.SearchConfig{Provider: "google", GoogleAPIKey: "k", GoogleCSEID: "cx"}, true},
	}
	for _, tt := range tests {
		client := NewClient(&tt.cfg, log)
		assert.Equal(t, tt.want, client.Configured(), tt.name)
	}
}

func TestSearchUnconfiguredReturnsNothing(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.SearchConfig{}, log)

	results, err := client.Search(context.Background(), "aaj ki news")
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestSummaryRendersBullets(t *testing.T) {
	results := []models.SearchResult{
		{Title: "IPL final", Snippet: "CSK won by 6 wickets", Link: "https://example.com/ipl"},
		{Snippet: "answer box only"},
	}

	got := Summary(results)
	assert.Contains(t, got, "• IPL final — CSK won by 6 wickets")
	assert.Contains(t, got, "  https://example.com/ipl")
	assert.Contains(t, got, "• answer box only")
}

func TestSummaryEmpty(t *testing.T) {
	assert.Empty(t, Summary(nil))
}
