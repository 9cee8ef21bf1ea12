// Package common holds state shared by the namify UI components.
package common

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/keys"
	"github.com/macropower/namify/pkg/ui/statusbar"
	"github.com/macropower/namify/pkg/ui/theme"
)

// StatusMessageTimeout is how long a status message stays visible.
const StatusMessageTimeout = 3 * time.Second

type CommonModel struct {
	Theme         *theme.Theme
	KeyBinds      *KeyBinds
	StatusMessage StatusMessage
	Width         int
	Height        int
	// CellWidth converts terminal columns into logical pixels.
	CellWidth  int
	statusSeq  int
	ShowStatus bool
}

type (
	StatusMessage struct {
		Message string
		Style   statusbar.Style
	}
	StatusMessageTimeoutMsg struct {
		seq int
	}
)

// ViewportWidth returns the terminal width in logical pixels.
func (m *CommonModel) ViewportWidth() int {
	return m.Width * max(1, m.CellWidth)
}

// StatusBar returns a renderer for the current width and status message.
func (m *CommonModel) StatusBar() *statusbar.Renderer {
	if m.ShowStatus && m.StatusMessage.Message != "" {
		return statusbar.New(m.Theme, m.Width,
			statusbar.WithMessage(m.StatusMessage.Message, m.StatusMessage.Style))
	}

	return statusbar.New(m.Theme, m.Width)
}

// SendStatusMessage shows msg in the status bar until it times out or is
// replaced.
func (m *CommonModel) SendStatusMessage(msg string, style statusbar.Style) tea.Cmd {
	m.statusSeq++
	m.ShowStatus = true
	m.StatusMessage = StatusMessage{Message: msg, Style: style}

	seq := m.statusSeq

	return tea.Tick(StatusMessageTimeout, func(time.Time) tea.Msg {
		return StatusMessageTimeoutMsg{seq: seq}
	})
}

// HandleStatusTimeout hides the status message if msg belongs to it.
func (m *CommonModel) HandleStatusTimeout(msg StatusMessageTimeoutMsg) {
	if msg.seq == m.statusSeq {
		m.ShowStatus = false
	}
}

type KeyBinds struct {
	Quit    *keys.KeyBind `json:"quit,omitempty"`
	Suspend *keys.KeyBind `json:"suspend,omitempty"`
	Reload  *keys.KeyBind `json:"reload,omitempty"`
	Help    *keys.KeyBind `json:"help,omitempty"`
	Error   *keys.KeyBind `json:"error,omitempty"`
	Escape  *keys.KeyBind `json:"escape,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	// ctrl+c always quits.
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Suspend,
		keys.NewBind("suspend",
			keys.New("ctrl+z", keys.WithAlias("⌃z"), keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Reload,
		keys.NewBind("reload page",
			keys.New("r"),
		))
	keys.SetDefaultBind(&kb.Escape,
		keys.NewBind("clear / close",
			keys.New("esc"),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
	keys.SetDefaultBind(&kb.Error,
		keys.NewBind("toggle error",
			keys.New("!"),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Quit,
		*kb.Suspend,
		*kb.Reload,
		*kb.Escape,
		*kb.Help,
		*kb.Error,
	}
}
