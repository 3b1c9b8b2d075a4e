// Package rag answers questions by retrieving indexed chunks and
// conditioning the language model on them plus the conversation so far.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"pdfchat/internal/domain"
	"pdfchat/internal/history"
	"pdfchat/internal/index"
)

const promptTemplate = `You are an expert document analyst providing precise, clear, and well-structured answers from PDF documents.

CORE PRINCIPLES:
1. Extract ONLY relevant information that answers the question
2. Use clear organization - bullets, headings, logical structure
3. Avoid redundancy and vague language; do not repeat information across sections
4. No filler phrases like "the document says" or "according to the context"
5. If the information is missing, say "This information is not available in the document"

CHAT HISTORY:
%s

QUESTION:
%s

DOCUMENT CONTEXT:
%s

YOUR ANSWER:
`

// Engine runs one ask: retrieve, prompt, generate, record.
type Engine struct {
	llm     domain.Generator
	history *history.Store
	index   *index.Index
	topK    int
}

// New creates an engine without an index; SetIndex attaches one once a
// document set has been processed.
func New(llm domain.Generator, hist *history.Store, topK int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{llm: llm, history: hist, topK: topK}
}

// SetIndex swaps in a freshly built retrieval index.
func (e *Engine) SetIndex(ix *index.Index) { e.index = ix }

// Ready reports whether an index is attached.
func (e *Engine) Ready() bool { return e.index != nil }

// History exposes the conversation store owned by this engine.
func (e *Engine) History() *history.Store { return e.history }

// Ask retrieves context for the question, generates an answer grounded in
// it, and appends the exchange to the history. The history is only touched
// after a successful generation; any failure leaves it as it was.
func (e *Engine) Ask(ctx context.Context, question string) (string, []domain.Message, error) {
	if strings.TrimSpace(question) == "" {
		return "", nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidArgument)
	}
	if e.index == nil {
		return "", nil, domain.ErrNotReady
	}
	results, err := e.index.Query(ctx, question, e.topK)
	if err != nil {
		return "", nil, err
	}
	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.Text
	}
	prompt := fmt.Sprintf(promptTemplate,
		e.history.FormatForPrompt(),
		question,
		strings.Join(contexts, "\n\n"),
	)

	answer, err := e.llm.Generate(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", nil, fmt.Errorf("%w: model returned an empty answer", domain.ErrGeneration)
	}

	e.history.Append(domain.RoleUser, question)
	e.history.Append(domain.RoleAssistant, answer)
	log.Debug("answer generated", "component", "rag", "retrieved", len(results), "history", e.history.Len())
	return answer, e.history.Snapshot(), nil
}
