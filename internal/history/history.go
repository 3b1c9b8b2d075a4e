// Package history keeps the ordered conversation of one session.
package history

import (
	"strings"

	"pdfchat/internal/domain"
)

// Store is an append-only, in-memory message sequence, oldest first.
type Store struct {
	messages []domain.Message
}

// NewStore returns an empty conversation store.
func NewStore() *Store { return &Store{} }

// Append adds one message to the end of the history.
func (s *Store) Append(role domain.Role, content string) {
	s.messages = append(s.messages, domain.Message{Role: role, Content: content})
}

// Len reports the number of stored messages.
func (s *Store) Len() int { return len(s.messages) }

// Snapshot returns a copy of the full history in chronological order.
func (s *Store) Snapshot() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear empties the history in place.
func (s *Store) Clear() {
	s.messages = s.messages[:0]
}

// FormatForPrompt renders the history as alternating "User:"/"Assistant:"
// lines for the generation prompt.
func (s *Store) FormatForPrompt() string {
	if len(s.messages) == 0 {
		return "No previous conversation"
	}
	lines := make([]string, 0, len(s.messages))
	for _, msg := range s.messages {
		label := "User"
		if msg.Role == domain.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
