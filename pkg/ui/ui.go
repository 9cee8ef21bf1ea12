// Package ui implements the namify terminal interface.
package ui

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/browse"
	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/keys"
	"github.com/macropower/namify/pkg/ui/cards"
	"github.com/macropower/namify/pkg/ui/common"
	"github.com/macropower/namify/pkg/ui/gotopage"
	"github.com/macropower/namify/pkg/ui/overlay"
	"github.com/macropower/namify/pkg/ui/pagectl"
	"github.com/macropower/namify/pkg/ui/searchbar"
	"github.com/macropower/namify/pkg/ui/statusbar"
	"github.com/macropower/namify/pkg/ui/table"
	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/view"
)

const (
	title   = "Namify"
	tagline = "Uncover Your Digital Identity"
)

// NewProgram returns a Bubble Tea program browsing the catalog through c.
func NewProgram(cfg *Config, c *browse.Coordinator, opts ...Opt) *tea.Program {
	slog.Debug("starting namify ui")

	return tea.NewProgram(NewModel(cfg, c, opts...), tea.WithAltScreen())
}

// ApplyConfigMsg replaces the theme, view mode and cell width while the
// program runs.
type ApplyConfigMsg struct {
	Config *Config
}

type copiedMsg struct {
	err  error
	name string
}

type overlayState int

const (
	overlayNone overlayState = iota
	overlayError
	overlayGoTo
)

type Opt func(*Model)

// WithClipboard replaces the function used to copy names.
func WithClipboard(write func(string) error) Opt {
	return func(m *Model) {
		m.copy = write
	}
}

type Model struct {
	cm      *common.CommonModel
	kb      *KeyBinds
	coord   *browse.Coordinator
	cards   *cards.Model
	table   *table.Model
	overlay *overlay.Overlay
	copy    func(string) error
	snap    browse.Snapshot
	rm      view.RenderModel
	search  searchbar.Model
	goTo    gotopage.Model
	spinner spinner.Model
	view    ViewMode
	cursor  int
	state   overlayState
	help    bool
	spin    bool
}

func NewModel(cfg *Config, c *browse.Coordinator, opts ...Opt) *Model {
	cfg.EnsureDefaults()

	t := theme.New(cfg.Theme)
	cm := &common.CommonModel{
		Theme:     t,
		KeyBinds:  cfg.KeyBinds.Common,
		CellWidth: *cfg.CellWidth,
	}

	m := &Model{
		cm:    cm,
		kb:    cfg.KeyBinds,
		coord: c,
		cards: cards.New(t),
		table: table.New(t),
		search: searchbar.New(searchbar.Config{
			Theme:    t,
			KeyBinds: cfg.KeyBinds.Search,
		}),
		overlay: overlay.New(t, overlay.WithTruncationHint("message truncated; press ! to close")),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(t.SelectedStyle)),
		copy:    clipboard.WriteAll,
		view:    cfg.View,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.coord.Init(), m.refresh())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case searchbar.TermChangedMsg:
		m.cursor = 0
		cmds = append(cmds, m.coord.SetTerm(msg.Term))

	case searchbar.SubmittedMsg:
		m.cursor = 0
		if msg.Term != m.coord.Snapshot().Term {
			cmds = append(cmds, m.coord.SetTerm(msg.Term))
		}

		cmds = append(cmds, m.coord.SubmitTerm())

	case searchbar.SuggestionAcceptedMsg:
		m.cursor = 0
		cmds = append(cmds, m.coord.SelectSuggestion(msg.Name))

	case gotopage.SubmitMsg:
		m.state = overlayNone
		cmds = append(cmds, m.coord.GoTo(msg.Page))

	case gotopage.CancelMsg:
		m.state = overlayNone

	case copiedMsg:
		if msg.err != nil {
			slog.Warn("copy to clipboard", slog.Any("err", msg.err))
			cmds = append(cmds, m.cm.SendStatusMessage("copy failed: "+msg.err.Error(), statusbar.StyleError))

			break
		}

		cmds = append(cmds, m.cm.SendStatusMessage("copied "+msg.name, statusbar.StyleSuccess))

	case ApplyConfigMsg:
		m.applyConfig(msg.Config)

	case common.StatusMessageTimeoutMsg:
		m.cm.HandleStatusTimeout(msg)

	case spinner.TickMsg:
		if !m.rm.Loading {
			m.spin = false

			break
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if cmd, ok := m.coord.Update(msg); ok {
			cmds = append(cmds, cmd)

			break
		}

		cmds = append(cmds, m.updateChildren(msg))
	}

	cmds = append(cmds, m.refresh())

	return m, tea.Batch(cmds...)
}

// updateChildren forwards internal messages, such as cursor blinks, to
// the focused child.
func (m *Model) updateChildren(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case m.state == overlayGoTo:
		m.goTo, cmd = m.goTo.Update(msg)
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	}

	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.cm.KeyBinds.Suspend.Match(key) {
		return tea.Suspend
	}

	if m.matchAction(m.cm.KeyBinds.Quit, key) {
		return tea.Quit
	}

	if m.state == overlayGoTo {
		var cmd tea.Cmd

		m.goTo, cmd = m.goTo.Update(msg)

		return cmd
	}

	if m.cm.KeyBinds.Error.Match(key) && !m.search.Focused() {
		switch {
		case m.state == overlayError:
			m.state = overlayNone
		case m.rm.ErrorMessage != "":
			m.state = overlayError
		}

		return nil
	}

	// Any other key dismisses the error and is handled as usual.
	if m.state == overlayError {
		m.state = overlayNone
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	return m.handleBrowseKey(key)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if m.cm.KeyBinds.Escape.Match(msg.String()) {
		m.search.Blur()

		return nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	return cmd
}

func (m *Model) handleBrowseKey(key string) tea.Cmd {
	ckb, bkb := m.cm.KeyBinds, m.kb.Browse

	switch {
	case ckb.Escape.Match(key):
		if m.help {
			m.help = false

			return nil
		}
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.cursor = 0

			return m.coord.SetTerm("")
		}

	case ckb.Help.Match(key):
		m.help = !m.help

	case ckb.Reload.Match(key):
		return m.coord.Reload()

	case bkb.Search.Match(key):
		return m.search.Focus()

	case bkb.GoTo.Match(key):
		m.goTo = gotopage.New(m.cm.Theme, m.rm.CurrentPage, m.rm.TotalPages)
		m.state = overlayGoTo

		return m.goTo.Init()

	case bkb.ToggleView.Match(key):
		m.toggleView()

	case bkb.Up.Match(key):
		m.cursor = max(0, m.cursor-1)

	case bkb.Down.Match(key):
		m.cursor = min(len(m.rm.VisibleItems)-1, m.cursor+1)

	case bkb.Prev.Match(key):
		return m.goToPage(m.rm.CurrentPage - 1)

	case bkb.Next.Match(key):
		return m.goToPage(m.rm.CurrentPage + 1)

	case bkb.First.Match(key):
		return m.goToPage(1)

	case bkb.Last.Match(key):
		return m.goToPage(m.rm.TotalPages)

	case bkb.Copy.Match(key):
		return m.copySelected()

	default:
		// Digits only reach the page numbers currently shown.
		if n, err := strconv.Atoi(key); err == nil && slices.Contains(m.rm.PageNumbers, n) {
			return m.goToPage(n)
		}
	}

	return nil
}

func (m *Model) matchAction(kb *keys.KeyBind, key string) bool {
	if m.isTextInputFocused() && keys.IsTextInputAction(key) {
		return false
	}

	return kb.Match(key)
}

func (m *Model) isTextInputFocused() bool {
	return m.search.Focused() || m.state == overlayGoTo
}

func (m *Model) goToPage(page int) tea.Cmd {
	cmd := m.coord.GoTo(page)
	if cmd != nil {
		m.cursor = 0
	}

	return cmd
}

func (m *Model) toggleView() {
	if m.view == ViewTable {
		m.view = ViewCards
	} else {
		m.view = ViewTable
	}

	slog.Debug("toggled view", slog.String("view", string(m.view)))
}

func (m *Model) selected() (catalog.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rm.VisibleItems) {
		return catalog.Item{}, false
	}

	return m.rm.VisibleItems[m.cursor], true
}

func (m *Model) copySelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}

	write := m.copy

	return func() tea.Msg {
		return copiedMsg{name: item.Name, err: write(item.Name)}
	}
}

func (m *Model) applyConfig(cfg *Config) {
	cfg.EnsureDefaults()

	t := theme.New(cfg.Theme)
	m.cm.Theme = t
	m.cm.CellWidth = *cfg.CellWidth
	m.cards.SetTheme(t)
	m.table.SetTheme(t)
	m.search.SetTheme(t)
	m.spinner.Style = t.SelectedStyle
	m.view = cfg.View

	m.overlay = overlay.New(t, overlay.WithTruncationHint("message truncated; press ! to close"))
	m.overlay.SetSize(m.cm.Width, m.cm.Height)

	slog.Info("applied ui config",
		slog.String("theme", t.Name),
		slog.String("view", string(cfg.View)),
		slog.Int("cellWidth", *cfg.CellWidth),
	)
}

// refresh re-projects the coordinator state for rendering.
func (m *Model) refresh() tea.Cmd {
	prev := m.snap.Load.Status

	m.snap = m.coord.Snapshot()
	m.rm = view.Project(m.snap, m.cm.ViewportWidth())

	m.search.SetSuggestions(m.rm.Suggestions)
	m.cards.SetItems(m.rm.VisibleItems, m.rm.DuplicateNames)
	m.table.SetItems(m.rm.VisibleItems, m.rm.DuplicateNames)
	m.cursor = max(0, min(m.cursor, len(m.rm.VisibleItems)-1))

	var cmds []tea.Cmd

	if m.rm.ErrorMessage != "" && prev != browse.StatusFailed {
		if m.state == overlayNone {
			m.state = overlayError
		}

		cmds = append(cmds, m.cm.SendStatusMessage(m.rm.ErrorMessage, statusbar.StyleError))
	}
	if m.rm.ErrorMessage == "" && m.state == overlayError {
		m.state = overlayNone
	}

	if m.rm.Loading && !m.spin {
		m.spin = true
		cmds = append(cmds, m.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.cm.Width = msg.Width
	m.cm.Height = msg.Height
	m.overlay.SetSize(msg.Width, msg.Height)
	m.search.SetWidth(msg.Width)
}

func (m *Model) View() string {
	if m.cm.Width == 0 {
		return ""
	}

	t := m.cm.Theme
	width := m.cm.Width

	header := t.LogoStyle.Render(title) + " " + t.TaglineStyle.Render(tagline)
	search := m.search.Render(width)
	controls := pagectl.Render(t, m.rm)
	status := m.statusBar()

	var help string
	if m.help {
		help = statusbar.NewHelpRenderer(t, m.keyBindRenderer()).Render(width)
	}

	used := lipgloss.Height(header) + 1 + lipgloss.Height(search) + 1 +
		lipgloss.Height(controls) + lipgloss.Height(status)
	if help != "" {
		used += lipgloss.Height(help)
	}

	bodyHeight := max(1, m.cm.Height-used)
	body := lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		MaxWidth(width).
		Render(m.body(width, bodyHeight))

	parts := []string{header, "", search, "", body, controls, status}
	if help != "" {
		parts = append(parts, help)
	}

	s := lipgloss.JoinVertical(lipgloss.Left, parts...)

	switch m.state {
	case overlayError:
		s = m.overlay.Place(s, m.errorView(), 2.0/3.0, t.ErrorOverlayStyle.Align(lipgloss.Left))
	case overlayGoTo:
		s = m.overlay.Place(s, m.goTo.View(), 1.0/3.0, t.GenericOverlayStyle.Align(lipgloss.Left))
	}

	return s
}

func (m *Model) body(width, height int) string {
	t := m.cm.Theme

	if len(m.rm.VisibleItems) == 0 {
		switch {
		case m.rm.Loading:
			return t.EmptyStyle.Render(m.spinner.View() + " Loading…")
		case m.rm.Term != "":
			return t.EmptyStyle.Render(fmt.Sprintf("No one on this page matches %q", m.rm.Term))
		default:
			return t.EmptyStyle.Render("No people found")
		}
	}

	if m.view == ViewTable {
		m.table.SetSize(width, height)

		return m.table.View(m.cursor)
	}

	return m.cards.View(width, height, m.cursor)
}

func (m *Model) statusBar() string {
	rm := m.rm

	var note string

	switch {
	case rm.Loading:
		note = fmt.Sprintf("%s loading page %d", m.spinner.View(), rm.CurrentPage)
	case rm.SearchPending:
		note = fmt.Sprintf("searching for %q…", rm.Term)
	case m.snap.LoadedAt.IsZero():
		note = "no data"
	default:
		note = fmt.Sprintf("%s people · updated %s",
			humanize.Comma(int64(rm.TotalCount)), humanize.Time(m.snap.LoadedAt))
	}

	if n := len(rm.DuplicateNames); n > 0 {
		note += fmt.Sprintf(" · %d duplicate %s", n, plural(n, "name", "names"))
	}

	position := fmt.Sprintf("page %d/%d", rm.CurrentPage, rm.TotalPages)

	if !m.cm.ShowStatus && rm.ErrorMessage != "" {
		return statusbar.New(m.cm.Theme, m.cm.Width, statusbar.WithError(rm.ErrorMessage)).
			Render(note, position)
	}

	return m.cm.StatusBar().Render(note, position)
}

func (m *Model) errorView() string {
	t := m.cm.Theme

	return lipgloss.JoinVertical(lipgloss.Left,
		t.ErrorTitleStyle.Render("ERROR"),
		lipgloss.NewStyle().Padding(1, 0).Render(m.rm.ErrorMessage),
		t.SubtleStyle.Render(fmt.Sprintf("press %s to retry", m.cm.KeyBinds.Reload.String())),
	)
}

func (m *Model) keyBindRenderer() *keys.Renderer {
	r := &keys.Renderer{}
	r.AddColumn(m.kb.Browse.GetKeyBinds()...)
	r.AddColumn(append(m.cm.KeyBinds.GetKeyBinds(), m.kb.Search.GetKeyBinds()...)...)

	return r
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
