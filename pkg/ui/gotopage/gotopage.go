// Package gotopage implements the "go to page" prompt.
package gotopage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/ui/theme"
)

var ErrInvalidPage = errors.New("invalid page")

// SubmitMsg is sent when a valid page number was entered.
type SubmitMsg struct {
	Page int
}

// CancelMsg is sent when the prompt was dismissed.
type CancelMsg struct{}

type Model struct {
	form  *huh.Form
	value *string
	width int
}

// New builds a prompt accepting pages 1 to total, prefilled with current.
func New(t *theme.Theme, current, total int) Model {
	value := strconv.Itoa(current)

	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))

	m := Model{value: &value, width: 36}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("page").
				Title("Go to page").
				Description(fmt.Sprintf("1 – %d", total)).
				CharLimit(len(strconv.Itoa(total))).
				Value(m.value).
				Validate(Validate(total)),
		),
	).
		WithShowHelp(false).
		WithKeyMap(km).
		WithWidth(m.width).
		WithTheme(theme.HuhTheme(t))

	m.form.SubmitCmd = func() tea.Msg {
		page, _ := Parse(*m.value, total)

		return SubmitMsg{Page: page}
	}
	m.form.CancelCmd = func() tea.Msg {
		return CancelMsg{}
	}

	return m
}

// Validate returns a validator accepting page numbers 1 to total.
func Validate(total int) func(string) error {
	return func(s string) error {
		_, err := Parse(s, total)

		return err
	}
}

// Parse parses s as a page number between 1 and total.
func Parse(s string, total int) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPage, s)
	}

	if page < 1 || page > total {
		return 0, fmt.Errorf("%w: choose a page between 1 and %d", ErrInvalidPage, total)
	}

	return page, nil
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m, cmd
}

// Done reports whether the prompt was submitted or dismissed.
func (m Model) Done() bool {
	return m.form.State != huh.StateNormal
}

func (m Model) View() string {
	if m.Done() {
		return ""
	}

	return lipgloss.NewStyle().Width(m.width).Render(m.form.View())
}
