// Package embedding constructs the provider-backed embedder used to build
// and query the retrieval index.
package embedding

import (
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config configures the OpenAI-compatible embeddings provider.
type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	BatchSize int
}

// NewOpenAI builds a batched langchaingo embedder over an OpenAI-compatible
// embeddings endpoint. The returned embedder satisfies domain.Embedder.
func NewOpenAI(cfg Config) (embeddings.Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding: API key is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("embedding: initialize client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithBatchSize(cfg.BatchSize),
		embeddings.WithStripNewLines(true),
	)
	if err != nil {
		return nil, fmt.Errorf("embedding: construct embedder: %w", err)
	}
	return embedder, nil
}
