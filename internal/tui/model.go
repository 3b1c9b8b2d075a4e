// Package tui is the terminal chat interface. It talks to the session
// controller through the Session port and renders only user-facing
// strings; raw errors stay in the log.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfchat/internal/domain"
	"pdfchat/internal/session"
)

// Session is the TUI-facing subset of the session controller.
type Session interface {
	Process(ctx context.Context, paths []string) error
	Ask(ctx context.Context, question string) (string, []domain.Message, error)
	Clear()
	Processed() bool
	History() []domain.Message
	Digest() string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	session  Session
	paths    []string
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates the chat model. paths are the PDF files named on the command
// line, processed when the user presses ctrl+p.
func New(sess Session, paths []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about your documents"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := fmt.Sprintf("%d PDF(s) queued. Press ctrl+p to process.", len(paths))
	return Model{session: sess, paths: paths, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events. Process and Ask run synchronously
// and block until the providers answer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1 // header + digest + status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.status = "Thinking..."
			_, _, err := m.session.Ask(context.Background(), question)
			if err != nil {
				m.status = session.UserMessage(err)
			} else {
				m.status = "Ready."
				m.input.SetValue("")
			}
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		case "ctrl+p":
			m.status = "Processing PDFs and building the index..."
			if err := m.session.Process(context.Background(), m.paths); err != nil {
				m.status = session.UserMessage(err)
			} else {
				m.status = "PDFs processed. You can now ask questions."
			}
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "ctrl+l":
			m.session.Clear()
			m.status = "Conversation cleared."
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the header, digest, transcript, input and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Chat with PDFs")
	digest := m.session.Digest()
	if digest == "" {
		digest = "Upload PDFs and start asking questions."
	}
	digestLine := digestStyle.Render(truncate(digest, max(20, m.viewport.Width)))
	transcript := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + digestLine + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	messages := m.session.History()
	if len(messages) == 0 {
		if m.session.Processed() {
			return "PDFs ready. Ask your first question."
		}
		return "No conversation yet."
	}
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: ") + msg.Content)
		case domain.RoleAssistant:
			b.WriteString(assistantStyle.Render("Assistant: ") + msg.Content)
		}
	}
	return b.String()
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	digestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
