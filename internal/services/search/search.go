package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pappu-dcbot-go/internal/config"
	"github.com/pappu-dcbot-go/internal/models"
	"github.com/sirupsen/logrus"
)

const maxResults = 3

// Service is the web-search surface. An unconfigured service returns an
// empty slice, never an error.
type Service interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Configured() bool
}

// Client selects a provider (serpapi or Google CSE) from config.
type Client struct {
	provider   string
	serpKey    string
	googleKey  string
	googleCSE  string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates the search client for the configured provider.
func NewClient(cfg *config.SearchConfig, logger *logrus.Logger) *Client {
	return &Client{
		provider:  cfg.Provider,
		serpKey:   cfg.SerpAPIKey,
		googleKey: cfg.GoogleAPIKey,
		googleCSE: cfg.GoogleCSEID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Configured() bool {
	switch c.provider {
	case "serpapi":
		return c.serpKey != ""
	case "google":
		return c.googleKey != "" && c.googleCSE != ""
	}
	return false
}

func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if !c.Configured() {
		return nil, nil
	}

	switch c.provider {
	case "serpapi":
		return c.searchSerpAPI(ctx, query)
	case "google":
		return c.searchGoogleCSE(ctx, query)
	}
	return nil, nil
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	AnswerBox struct {
		Answer      string `json:"answer"`
		Description string `json:"description"`
	} `json:"answer_box"`
	KnowledgeGraph struct {
		Description string `json:"description"`
	} `json:"knowledge_graph"`
}

func (c *Client) searchSerpAPI(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", c.serpKey)
	params.Set("num", fmt.Sprint(maxResults))

	body, err := c.get(ctx, "https://serpapi.com/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp serpAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse serpapi response: %w", err)
	}

	results := make([]models.SearchResult, 0, maxResults)
	for _, item := range resp.OrganicResults {
		if len(results) >= maxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:   strings.TrimSpace(item.Title),
			Snippet: strings.TrimSpace(item.Snippet),
			Link:    item.Link,
		})
	}

	// Answer box fallback when no organic results came back
	if len(results) == 0 {
		answer := resp.AnswerBox.Description
		if answer == "" {
			answer = resp.AnswerBox.Answer
		}
		if answer == "" {
			answer = resp.KnowledgeGraph.Description
		}
		if answer != "" {
			results = append(results, models.SearchResult{Snippet: answer})
		}
	}

	return results, nil
}

type googleCSEResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

func (c *Client) searchGoogleCSE(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.googleKey)
	params.Set("cx", c.googleCSE)
	params.Set("num", fmt.Sprint(maxResults))

	body, err := c.get(ctx, "https://www.googleapis.com/customsearch/v1?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp googleCSEResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse google cse response: %w", err)
	}

	results := make([]models.SearchResult, 0, maxResults)
	for _, item := range resp.Items {
		if len(results) >= maxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:   strings.TrimSpace(item.Title),
			Snippet: strings.TrimSpace(item.Snippet),
			Link:    item.Link,
		})
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Summary renders results as the bulleted text block used for prompt
// grounding and for direct fallback replies.
func Summary(results []models.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range results {
		b.WriteString("• ")
		if r.Title != "" {
			b.WriteString(r.Title)
			if r.Snippet != "" {
				b.WriteString(" — ")
			}
		}
		b.WriteString(r.Snippet)
		if r.Link != "" {
			b.WriteString("\n  ")
			b.WriteString(r.Link)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
