package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWait bounds how long WaitFor helpers poll the program output.
const DefaultWait = 3 * time.Second

// BubbleModel is a Bubble Tea model whose Update returns its concrete type.
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

type adapter[T BubbleModel[T]] struct {
	model T
}

func (a adapter[T]) Init() tea.Cmd { return a.model.Init() }

func (a adapter[T]) View() string { return a.model.View() }

//nolint:ireturn // Must satisfy [tea.Model].
func (a adapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)

	return adapter[T]{model: m}, cmd
}

// NewTestModel starts m in a teatest program of the given size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, adapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height))
}

// FinalModel returns the model of a finished program.
func FinalModel[T BubbleModel[T]](tb testing.TB, tm *teatest.TestModel) T {
	tb.Helper()

	final := tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultWait))

	fm, ok := final.(adapter[T])
	if !ok {
		tb.Fatalf("unexpected final model type %T", final)
	}

	return fm.model
}

// WaitForText waits until the plain text output contains every string in
// want.
func WaitForText(tb testing.TB, r io.Reader, want ...string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		plain := []byte(ansi.Strip(string(b)))
		for _, w := range want {
			if !bytes.Contains(plain, []byte(w)) {
				return false
			}
		}

		return true
	}, teatest.WithDuration(DefaultWait), teatest.WithCheckInterval(10*time.Millisecond))
}

// Keys returns a key message typing s.
func Keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Key returns a key message for a special key.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
