// Package chunker splits extracted document pages into overlapping text
// windows sized for retrieval.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"pdfchat/internal/domain"
)

// Chunker carves pages into chunks of at most Size characters, with up to
// Overlap characters shared between consecutive chunks of the same page.
type Chunker struct {
	size     int
	overlap  int
	splitter textsplitter.RecursiveCharacter
}

// New validates the chunking parameters and builds a recursive character
// splitter: paragraph boundaries first, then sentences, whitespace, and
// finally raw characters, preferring the largest separator that keeps
// pieces within the size limit.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be greater than zero", domain.ErrInvalidArgument)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be in [0, %d)", domain.ErrInvalidArgument, overlap, size)
	}
	return &Chunker{
		size:    size,
		overlap: overlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
		),
	}, nil
}

// Chunk splits every page and tags each resulting chunk with the metadata
// of its source page. Chunk order follows page order; empty pieces are
// skipped.
func (c *Chunker) Chunk(pages []domain.Page) ([]domain.Chunk, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages to chunk", domain.ErrEmptyInput)
	}
	var chunks []domain.Chunk
	for _, page := range pages {
		pieces, err := c.splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("split page: %w", err)
		}
		for _, piece := range pieces {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				ID:       uuid.NewString(),
				Text:     piece,
				Metadata: cloneMetadata(page.Metadata),
			})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: pages contained no text", domain.ErrEmptyInput)
	}
	return chunks, nil
}

func cloneMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
