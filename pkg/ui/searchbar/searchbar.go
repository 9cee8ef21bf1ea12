// Package searchbar implements the search input and its suggestion
// dropdown.
package searchbar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/keys"
	"github.com/macropower/namify/pkg/ui/theme"
)

const (
	Placeholder = "Search by name"
	// DefaultMaxSuggestions is the number of dropdown rows shown at once.
	DefaultMaxSuggestions = 5
	prompt                = "/ "
)

// TermChangedMsg is sent whenever the input value changes.
type TermChangedMsg struct {
	Term string
}

// SuggestionAcceptedMsg is sent when a dropdown entry is accepted.
type SuggestionAcceptedMsg struct {
	Name string
}

// SubmittedMsg is sent when enter is pressed without a highlighted
// suggestion.
type SubmittedMsg struct {
	Term string
}

type KeyBinds struct {
	Accept *keys.KeyBind `json:"accept,omitempty"`
	Up     *keys.KeyBind `json:"up,omitempty"`
	Down   *keys.KeyBind `json:"down,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Accept,
		keys.NewBind("accept suggestion",
			keys.New("tab"),
			keys.New("enter"),
		))
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("previous suggestion",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("ctrl+p", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("next suggestion",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("ctrl+n", keys.Hidden()),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Accept,
		*kb.Up,
		*kb.Down,
	}
}

type Config struct {
	Theme          *theme.Theme
	KeyBinds       *KeyBinds
	MaxSuggestions int
}

type Model struct {
	theme       *theme.Theme
	kb          *KeyBinds
	suggestions []string
	input       textinput.Model
	cursor      int
	maxRows     int
}

func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = prompt

	if cfg.KeyBinds == nil {
		cfg.KeyBinds = &KeyBinds{}
	}

	cfg.KeyBinds.EnsureDefaults()

	rows := cfg.MaxSuggestions
	if rows <= 0 {
		rows = DefaultMaxSuggestions
	}

	m := Model{
		kb:      cfg.KeyBinds,
		input:   ti,
		cursor:  -1,
		maxRows: rows,
	}
	m.SetTheme(cfg.Theme)

	return m
}

func (m *Model) SetTheme(t *theme.Theme) {
	m.theme = t
	m.input.PromptStyle = t.SearchPromptStyle
	m.input.TextStyle = t.GenericStyle
	m.input.PlaceholderStyle = t.SubtleStyle
	m.input.Cursor.Style = t.SelectedStyle
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Focus focuses the input so it receives key presses.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur unfocuses the input and closes the dropdown.
func (m *Model) Blur() {
	m.input.Blur()
	m.cursor = -1
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the input value without emitting [TermChangedMsg].
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// SetSuggestions replaces the dropdown entries, keeping the highlighted
// name when it is still present.
func (m *Model) SetSuggestions(names []string) {
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.suggestions) {
		selected = m.suggestions[m.cursor]
	}

	m.suggestions = names
	m.cursor = -1

	for i, name := range names {
		if name == selected && selected != "" {
			m.cursor = i
		}
	}
}

func (m Model) Suggestions() []string {
	return m.suggestions
}

// Highlighted returns the highlighted suggestion, if any.
func (m Model) Highlighted() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.suggestions) {
		return "", false
	}

	return m.suggestions[m.cursor], true
}

// DropdownOpen reports whether suggestions are being shown.
func (m Model) DropdownOpen() bool {
	return m.input.Focused() && len(m.suggestions) > 0
}

// SetWidth sets the input width in cells.
func (m *Model) SetWidth(w int) {
	m.input.Width = max(1, w-ansi.StringWidth(prompt)-1)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.input.Focused() {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		key := msg.String()

		switch {
		case m.DropdownOpen() && m.kb.Down.Match(key):
			m.cursor = min(m.cursor+1, len(m.suggestions)-1)

			return m, nil

		case m.DropdownOpen() && m.kb.Up.Match(key):
			m.cursor = max(m.cursor-1, -1)

			return m, nil

		case m.kb.Accept.Match(key):
			return m.accept(key)
		}
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		m.cursor = -1

		return m, tea.Batch(cmd, func() tea.Msg {
			return TermChangedMsg{Term: after}
		})
	}

	return m, cmd
}

func (m Model) accept(key string) (Model, tea.Cmd) {
	if name, ok := m.Highlighted(); ok {
		m.SetValue(name)
		m.Blur()

		return m, func() tea.Msg {
			return SuggestionAcceptedMsg{Name: name}
		}
	}

	// Tab without a highlight moves into the dropdown.
	if key == "tab" && m.DropdownOpen() {
		m.cursor = 0

		return m, nil
	}

	term := m.input.Value()
	m.Blur()

	return m, func() tea.Msg {
		return SubmittedMsg{Term: term}
	}
}

func (m Model) View() string {
	return m.Render(m.input.Width + ansi.StringWidth(prompt) + 1)
}

// Render renders the input line followed by the dropdown when it is open.
func (m Model) Render(width int) string {
	line := m.input.View()
	if !m.DropdownOpen() {
		return line
	}

	return lipgloss.JoinVertical(lipgloss.Left, line, m.renderDropdown(width))
}

func (m Model) renderDropdown(width int) string {
	inner := max(1, width-2)
	start := 0
	if m.cursor >= m.maxRows {
		start = m.cursor - m.maxRows + 1
	}

	end := min(len(m.suggestions), start+m.maxRows)
	matches := matchIndexes(m.input.Value(), m.suggestions)

	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		name := ansi.Truncate(m.suggestions[i], inner-2, m.theme.Ellipsis)

		base := m.theme.SuggestionStyle
		marker := "  "
		if i == m.cursor {
			base = m.theme.SuggestionCursorStyle
			marker = "> "
		}

		rows = append(rows, base.Render(marker)+
			lipgloss.StyleRunes(name, matches[i], m.theme.SuggestionMatchStyle.Inherit(base), base))
	}

	if hidden := len(m.suggestions) - end; hidden > 0 {
		rows = append(rows, m.theme.SubtleStyle.Render(fmt.Sprintf("  +%d more", hidden)))
	}

	return m.theme.DropdownStyle.Width(inner).Render(strings.Join(rows, "\n"))
}

// matchIndexes returns, for each name, the rune positions matched by term.
func matchIndexes(term string, names []string) map[int][]int {
	out := make(map[int][]int, len(names))
	if strings.TrimSpace(term) == "" {
		return out
	}

	for _, match := range fuzzy.Find(term, names) {
		out[match.Index] = runeIndexes(match.Str, match.MatchedIndexes)
	}

	return out
}

func runeIndexes(s string, byteIdx []int) []int {
	if len(s) == utf8.RuneCountInString(s) {
		return byteIdx
	}

	pos := make(map[int]int, len(s))
	r := 0
	for b := range s {
		pos[b] = r
		r++
	}

	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if i, ok := pos[b]; ok {
			out = append(out, i)
		}
	}

	return out
}
