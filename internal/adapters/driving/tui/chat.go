// Package tui implements the interactive chat interface over the
// question-answering pipeline.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/core/services"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1).
			MarginBottom(1)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF5F")).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7AF")).
			PaddingLeft(2)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
	sources  []string
	err      error
}

// Model is the bubbletea model for the chat session.
type Model struct {
	asker driving.Asker
	topK  int

	input    textinput.Model
	spinner  spinner.Model
	history  []exchange
	loading  bool
	quitting bool
	width    int
}

// NewModel creates a chat model over the given asker.
func NewModel(asker driving.Asker, topK int) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your knowledge base..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		asker:   asker,
		topK:    topK,
		input:   ti,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// answerMsg carries a completed generation back into the update loop.
type answerMsg struct {
	question string
	answer   *driving.Answer
	err      error
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.loading {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			if question == "exit" || question == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.loading = true
			m.input.Reset()
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.loading = false
		ex := exchange{question: msg.question, err: msg.err}
		if msg.answer != nil {
			ex.answer = msg.answer.Text
			ex.sources = services.Sources(msg.answer.Hits)
		}
		m.history = append(m.history, ex)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "\nBye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ragdex chat"))
	b.WriteString("\n")

	for _, ex := range m.history {
		b.WriteString(questionStyle.Render("> " + ex.question))
		b.WriteString("\n")
		if ex.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", ex.err)))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(answerStyle.Render(wrap(ex.answer, m.contentWidth())))
		b.WriteString("\n")
		if len(ex.sources) > 0 {
			b.WriteString(sourceStyle.Render("Sources: " + strings.Join(ex.sources, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" thinking...\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: ask • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return 76
}

// ask runs the question-answering pipeline off the update loop.
func (m *Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.asker.Ask(context.Background(), question, m.topK)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// wrap reflows text to the given width, preserving paragraph breaks.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Run starts the chat session and blocks until the user quits.
func Run(asker driving.Asker, topK int) error {
	p := tea.NewProgram(NewModel(asker, topK), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session: %w", err)
	}
	return nil
}
