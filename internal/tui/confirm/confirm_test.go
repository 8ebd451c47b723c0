package confirm

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func runPrompt(t *testing.T, keys ...tea.KeyMsg) Model {
	t.Helper()
	tm := teatest.NewTestModel(t, New("Remove note a.md?"), teatest.WithInitialTermSize(80, 10))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(string(b), "[y/N]")
	}, teatest.WithCheckInterval(10*time.Millisecond), teatest.WithDuration(3*time.Second))

	for _, k := range keys {
		tm.Send(k)
	}

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
	m, ok := final.(Model)
	if !ok {
		t.Fatalf("unexpected final model %T", final)
	}
	return m
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{"yes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"upper yes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{"no", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{"enter keeps default", tea.KeyMsg{Type: tea.KeyEnter}, false},
		{"escape cancels", tea.KeyMsg{Type: tea.KeyEscape}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := runPrompt(t, tt.key)
			if m.Accepted() != tt.want {
				t.Errorf("Accepted() = %v, want %v", m.Accepted(), tt.want)
			}
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := runPrompt(t,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")},
	)
	if !m.Accepted() {
		t.Error("expected the prompt to wait for a valid answer")
	}
}

func TestConfirmUpdateAfterAnswer(t *testing.T) {
	m := New("Continue?")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatal("expected quit command after answer")
	}
	answered := next.(Model)

	again, cmd := answered.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd != nil {
		t.Error("expected no command once answered")
	}
	if !again.(Model).Accepted() {
		t.Error("answer changed after it was recorded")
	}
	if !strings.Contains(again.View(), "yes") {
		t.Errorf("View() = %q, want the recorded answer", again.View())
	}
}

func TestAskReadsInput(t *testing.T) {
	var out strings.Builder
	ok, err := Ask("Delete?", strings.NewReader("y"), &out)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !ok {
		t.Error("Ask() = false, want true")
	}
}
