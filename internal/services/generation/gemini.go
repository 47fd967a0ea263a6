package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pappu-dcbot-go/internal/config"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Service is the single-shot text generation surface the router calls.
type Service interface {
	// Generate submits one prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Configured reports whether a backend is available at all.
	Configured() bool
}

// Gemini implements Service over the Google GenAI SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewGemini creates the Gemini service. A missing API key is not an
// error: the service reports unconfigured and the caller degrades to
// canned replies.
func NewGemini(ctx context.Context, cfg *config.GeminiConfig, logger *logrus.Logger) (*Gemini, error) {
	g := &Gemini{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if cfg.APIKey == "" {
		logger.Warn("Gemini API key missing, generation disabled")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client

	logger.WithField("model", cfg.Model).Info("Gemini service initialized")
	return g, nil
}

func (g *Gemini) Configured() bool {
	return g.client != nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("generation backend not configured")
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(reqCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	g.logger.WithFields(logrus.Fields{
		"model":    g.model,
		"duration": time.Since(start),
		"chars":    len(text),
	}).Debug("Generation completed")

	if text == "" {
		return "", fmt.Errorf("empty generation response")
	}
	return text, nil
}
