package domain

import "context"

// Extractor produces the pages of a document file in their original order.
type Extractor interface {
	Extract(path string) ([]Page, error)
}

// Embedder converts text into fixed-dimensional vectors. The shape matches
// langchaingo's embeddings.Embedder so provider clients plug in directly.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator completes an assembled prompt with the backing language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
