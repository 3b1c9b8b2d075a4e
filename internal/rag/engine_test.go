package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfchat/internal/domain"
	"pdfchat/internal/history"
	"pdfchat/internal/index"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 1}
		}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

type fakeGenerator struct {
	answer  string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func readyEngine(t *testing.T, gen *fakeGenerator) *Engine {
	t.Helper()
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"Cats are mammals.":     {1, 0},
		"Dogs are mammals too.": {0.5, 0.5},
	}}
	ix, err := index.Build(context.Background(), emb, []domain.Chunk{
		{ID: "c1", Text: "Cats are mammals."},
		{ID: "c2", Text: "Dogs are mammals too."},
	})
	require.NoError(t, err)
	engine := New(gen, history.NewStore(), 4)
	engine.SetIndex(ix)
	return engine
}

func TestAsk(t *testing.T) {
	t.Run("ShouldRejectBlankQuestion", func(t *testing.T) {
		gen := &fakeGenerator{answer: "irrelevant"}
		engine := readyEngine(t, gen)
		_, _, err := engine.Ask(context.Background(), "   ")
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.Zero(t, gen.calls)
		assert.Zero(t, engine.History().Len())
	})
	t.Run("ShouldFailWhenNoIndexAttached", func(t *testing.T) {
		engine := New(&fakeGenerator{answer: "x"}, history.NewStore(), 4)
		_, _, err := engine.Ask(context.Background(), "What are cats?")
		require.ErrorIs(t, err, domain.ErrNotReady)
	})
	t.Run("ShouldAnswerAndAppendExactlyTwoMessages", func(t *testing.T) {
		gen := &fakeGenerator{answer: "Cats are small mammals."}
		engine := readyEngine(t, gen)
		answer, messages, err := engine.Ask(context.Background(), "What are cats?")
		require.NoError(t, err)
		assert.Equal(t, "Cats are small mammals.", answer)
		require.Len(t, messages, 2)
		assert.Equal(t, domain.RoleUser, messages[0].Role)
		assert.Equal(t, "What are cats?", messages[0].Content)
		assert.Equal(t, domain.RoleAssistant, messages[1].Role)
		assert.Equal(t, answer, messages[1].Content)
	})
	t.Run("ShouldGroundThePromptInRetrievedContext", func(t *testing.T) {
		gen := &fakeGenerator{answer: "answer"}
		engine := readyEngine(t, gen)
		_, _, err := engine.Ask(context.Background(), "What are cats?")
		require.NoError(t, err)
		require.Len(t, gen.prompts, 1)
		prompt := gen.prompts[0]
		assert.Contains(t, prompt, "What are cats?")
		assert.Contains(t, prompt, "Cats are mammals.")
		assert.Contains(t, prompt, "Dogs are mammals too.")
		assert.Contains(t, prompt, "No previous conversation")
	})
	t.Run("ShouldIncludeHistoryOnFollowUps", func(t *testing.T) {
		gen := &fakeGenerator{answer: "answer"}
		engine := readyEngine(t, gen)
		_, _, err := engine.Ask(context.Background(), "What are cats?")
		require.NoError(t, err)
		_, messages, err := engine.Ask(context.Background(), "And dogs?")
		require.NoError(t, err)
		assert.Len(t, messages, 4)
		require.Len(t, gen.prompts, 2)
		assert.Contains(t, gen.prompts[1], "User: What are cats?")
		assert.Contains(t, gen.prompts[1], "Assistant: answer")
	})
	t.Run("ShouldLeaveHistoryUntouchedOnGenerationFailure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("rate limit")}
		engine := readyEngine(t, gen)
		_, _, err := engine.Ask(context.Background(), "What are cats?")
		require.ErrorIs(t, err, domain.ErrGeneration)
		assert.Zero(t, engine.History().Len())
	})
	t.Run("ShouldTreatEmptyCompletionAsGenerationFailure", func(t *testing.T) {
		gen := &fakeGenerator{answer: "   "}
		engine := readyEngine(t, gen)
		_, _, err := engine.Ask(context.Background(), "What are cats?")
		require.ErrorIs(t, err, domain.ErrGeneration)
		assert.Zero(t, engine.History().Len())
	})
}
