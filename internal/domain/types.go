package domain

// Page is a single page of text extracted from an uploaded document,
// together with its source metadata (file name, page number). Pages are
// consumed by the chunker and not retained afterwards.
type Page struct {
	Text     string
	Metadata map[string]string
}

// Chunk is a bounded-length slice of page text used as the unit of
// retrieval. It inherits the metadata of the page it was carved from.
type Chunk struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Role tags a conversation message as coming from the user or the assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
