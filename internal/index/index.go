// Package index builds an in-memory similarity index over document chunks
// and answers top-k cosine queries against it.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"pdfchat/internal/domain"
)

// Index holds the chunks of one processing session and their L2-normalised
// embedding vectors. It is built once from the full chunk set and never
// mutated afterwards; a re-process replaces the whole index.
type Index struct {
	embedder  domain.Embedder
	dimension int
	chunks    []domain.Chunk
	vectors   [][]float32
}

// Build embeds every chunk in one batched provider call and constructs the
// index. The provider's vectors must share one dimension and contain only
// finite values; anything else fails the build.
func Build(ctx context.Context, embedder domain.Embedder, chunks []domain.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks to index", domain.ErrEmptyInput)
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingProvider, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbeddingProvider, len(vectors), len(chunks))
	}
	dimension := len(vectors[0])
	for i, vec := range vectors {
		if err := validateVector(vec, dimension); err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", domain.ErrEmbeddingProvider, i, err)
		}
	}
	normalised := make([][]float32, len(vectors))
	for i, vec := range vectors {
		normalised[i] = normalise(vec)
	}
	return &Index{
		embedder:  embedder,
		dimension: dimension,
		chunks:    chunks,
		vectors:   normalised,
	}, nil
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Query embeds the question with the index's provider and returns the
// min(k, Len) most similar chunks, ordered by descending similarity with
// ties broken by chunk insertion order. The index itself is not modified.
func (ix *Index) Query(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: retrieval count %d must be positive", domain.ErrInvalidArgument, k)
	}
	vec, err := ix.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingProvider, err)
	}
	if err := validateVector(vec, ix.dimension); err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrEmbeddingProvider, err)
	}
	query := normalise(vec)

	scored := make([]domain.ScoredChunk, len(ix.chunks))
	for i := range ix.chunks {
		scored[i] = domain.ScoredChunk{Chunk: ix.chunks[i], Score: dot(ix.vectors[i], query)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func validateVector(vec []float32, dimension int) error {
	if len(vec) == 0 {
		return fmt.Errorf("empty vector")
	}
	if len(vec) != dimension {
		return fmt.Errorf("dimension %d, want %d", len(vec), dimension)
	}
	for _, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite component")
		}
	}
	return nil
}

func normalise(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	if norm == 0 {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
