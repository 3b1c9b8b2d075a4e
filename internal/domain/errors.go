package domain

import "errors"

// Error kinds surfaced by the pipeline. Callers branch with errors.Is;
// wrapped detail is for the log, never for the UI.
var (
	// ErrEmptyInput indicates there were no pages or chunks to operate on.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidArgument indicates a malformed question or retrieval count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmbeddingProvider indicates the embedding service failed or
	// returned malformed vectors.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrGeneration indicates the completion service failed.
	ErrGeneration = errors.New("generation failure")

	// ErrNotReady indicates an action was requested before any documents
	// were processed into an index.
	ErrNotReady = errors.New("no documents processed")
)
