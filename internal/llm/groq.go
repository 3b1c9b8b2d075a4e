// Package llm wraps the completion provider behind the Generator port.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config configures the chat completion client. Groq exposes an
// OpenAI-compatible endpoint, so the same client serves both.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

// Client generates answers from an assembled prompt.
type Client struct {
	model       llms.Model
	temperature float64
}

// NewClient creates the completion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: initialize client: %w", err)
	}
	return &Client{model: model, temperature: cfg.Temperature}, nil
}

// Generate runs one completion call and returns the model's raw text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	return out, nil
}
