// Package confirm provides a single-question y/N prompt built on Bubble Tea.
package confirm

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"obsidian-cli/internal/logging"
	"obsidian-cli/internal/tui/styles"
)

// KeyMap defines the prompt's bindings.
type KeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

// DefaultKeyMap answers with y/n; enter keeps the default answer (no).
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:     key.NewBinding(key.WithKeys("n", "N", "enter"), key.WithHelp("n/enter", "no")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
	}
}

// Model asks one question and records the answer.
type Model struct {
	Question string
	keys     KeyMap
	answered bool
	accepted bool
}

// New returns a prompt for question.
func New(question string) Model {
	return Model{Question: question, keys: DefaultKeyMap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	logging.LogMessage(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.answered {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answered, m.accepted = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Cancel):
		m.answered, m.accepted = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.answered {
		if m.accepted {
			return fmt.Sprintf("%s %s\n", m.Question, styles.SuccessStyle.Render("yes"))
		}
		return fmt.Sprintf("%s %s\n", m.Question, styles.HelpStyle.Render("no"))
	}
	return fmt.Sprintf("%s %s ", styles.WarningStyle.Render(m.Question), styles.HelpStyle.Render("[y/N]"))
}

// Accepted reports whether the user answered yes.
func (m Model) Accepted() bool {
	return m.accepted
}

// Ask runs the prompt on the given streams and returns the answer.
func Ask(question string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(New(question), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.Accepted(), nil
}
