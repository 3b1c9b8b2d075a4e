// Package session is the conversational state machine: it routes the
// upload/process/ask/clear actions, tracks whether an index exists, and
// deduplicates repeated identical questions so the model is not invoked
// twice for accidental resubmissions.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"pdfchat/internal/chunker"
	"pdfchat/internal/domain"
	"pdfchat/internal/index"
	"pdfchat/internal/rag"
	"pdfchat/internal/summarizer"
)

// askCache is the single-slot cache of the most recent exchange.
type askCache struct {
	question string
	answer   string
	history  []domain.Message
}

// Controller owns one session: its index slot, conversation, processed
// flag, and ask cache. All mutations go through Process, Ask and Clear.
type Controller struct {
	extractor domain.Extractor
	chunker   *chunker.Chunker
	embedder  domain.Embedder
	engine    *rag.Engine
	digester  *summarizer.Summarizer

	processed bool
	digest    string
	cache     *askCache
}

// New assembles a controller in the empty state.
func New(extractor domain.Extractor, ch *chunker.Chunker, embedder domain.Embedder, engine *rag.Engine, digester *summarizer.Summarizer) *Controller {
	return &Controller{
		extractor: extractor,
		chunker:   ch,
		embedder:  embedder,
		engine:    engine,
		digester:  digester,
	}
}

// Process extracts, chunks and indexes the given PDF files. The new index
// is installed only after the whole build succeeds; on any failure the
// previous index, processed flag and history are left untouched.
func (c *Controller) Process(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: no files to process", domain.ErrEmptyInput)
	}
	var pages []domain.Page
	for _, path := range paths {
		extracted, err := c.extractor.Extract(path)
		if err != nil {
			log.Error("extraction failed", "component", "session", "file", path, "err", err)
			return err
		}
		pages = append(pages, extracted...)
	}
	chunks, err := c.chunker.Chunk(pages)
	if err != nil {
		log.Error("chunking failed", "component", "session", "err", err)
		return err
	}
	ix, err := index.Build(ctx, c.embedder, chunks)
	if err != nil {
		log.Error("index build failed", "component", "session", "chunks", len(chunks), "err", err)
		return err
	}

	c.engine.SetIndex(ix)
	c.processed = true
	c.cache = nil
	c.digest = c.summarise(pages)
	log.Info("documents processed", "component", "session", "files", len(paths), "pages", len(pages), "chunks", ix.Len())
	return nil
}

// Ask answers a question against the current index. A question that is
// character-identical to the immediately preceding one is served from the
// cache without another model call.
func (c *Controller) Ask(ctx context.Context, question string) (string, []domain.Message, error) {
	if !c.processed || !c.engine.Ready() {
		return "", nil, domain.ErrNotReady
	}
	if c.cache != nil && c.cache.question == question {
		log.Debug("serving cached answer", "component", "session")
		history := make([]domain.Message, len(c.cache.history))
		copy(history, c.cache.history)
		return c.cache.answer, history, nil
	}
	answer, messages, err := c.engine.Ask(ctx, question)
	if err != nil {
		log.Error("ask failed", "component", "session", "err", err)
		return "", nil, err
	}
	c.cache = &askCache{question: question, answer: answer, history: messages}
	return answer, messages, nil
}

// Clear empties the conversation and invalidates the ask cache. The index
// and the processed flag are untouched.
func (c *Controller) Clear() {
	c.engine.History().Clear()
	c.cache = nil
	log.Info("conversation cleared", "component", "session")
}

// Processed reports whether a document set has been indexed.
func (c *Controller) Processed() bool { return c.processed }

// History returns the current conversation in chronological order.
func (c *Controller) History() []domain.Message { return c.engine.History().Snapshot() }

// Digest returns the short overview of the processed documents, if any.
func (c *Controller) Digest() string { return c.digest }

func (c *Controller) summarise(pages []domain.Page) string {
	if c.digester == nil {
		return ""
	}
	var all strings.Builder
	for _, p := range pages {
		all.WriteString(p.Text)
		all.WriteString("\n")
	}
	digest, err := c.digester.Summarize(all.String(), 3)
	if err != nil {
		log.Warn("digest failed", "component", "session", "err", err)
		return ""
	}
	return digest
}

// UserMessage maps an error to the short string the presentation layer
// shows. Detail stays in the log.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotReady):
		return "Please upload and process PDFs first."
	case errors.Is(err, domain.ErrEmptyInput):
		return "Nothing to process: no documents or readable text found."
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Invalid input. Please enter a question."
	case errors.Is(err, domain.ErrEmbeddingProvider):
		return "Processing failed: the embedding service is unavailable."
	case errors.Is(err, domain.ErrGeneration):
		return "Generating the answer failed. Please try again."
	default:
		return "Something went wrong. See the log for details."
	}
}
