// Package statusbar renders the single-line status bar and the help panel.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/version"
)

const (
	helpText  = " ? Help "
	errorText = " ! Error "
)

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// Renderer renders the status bar: logo, note, padding, position, help.
type Renderer struct {
	theme   *theme.Theme
	message string
	width   int
	style   Style
}

type Opt func(*Renderer)

// WithMessage replaces the note with message in the given style.
func WithMessage(message string, style Style) Opt {
	return func(r *Renderer) {
		r.message = message
		r.style = style
	}
}

// WithError replaces the note with an error message.
func WithError(message string) Opt {
	return WithMessage(message, StyleError)
}

func New(t *theme.Theme, width int, opts ...Opt) *Renderer {
	r := &Renderer{theme: t, width: width}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render renders note on the left and position on the right. A message set
// through the options replaces note.
func (r *Renderer) Render(note, position string) string {
	logo := r.theme.LogoStyle.Render("namify " + version.GetVersion())
	help := r.helpNote()
	pos := r.noteStyle(true).Render(" " + position + " ")

	if r.message != "" {
		note = r.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))

	avail := max(0, r.width-ansi.StringWidth(logo)-ansi.StringWidth(pos)-ansi.StringWidth(help))
	note = ansi.Truncate(" "+note+" ", avail, r.theme.Ellipsis)
	pad := strings.Repeat(" ", max(0, avail-ansi.StringWidth(note)))

	return logo + r.noteStyle(false).Render(note+pad) + pos + help
}

func (r *Renderer) helpNote() string {
	if r.style == StyleError {
		return r.theme.StatusBarErrorStyle.Reverse(true).Render(errorText)
	}

	return r.theme.StatusBarHelpStyle.Render(helpText)
}

func (r *Renderer) noteStyle(position bool) lipgloss.Style {
	switch r.style {
	case StyleError:
		return r.theme.StatusBarErrorStyle
	case StyleSuccess:
		return r.theme.StatusBarMessageStyle
	}

	if position {
		return r.theme.StatusBarPosStyle
	}

	return r.theme.StatusBarStyle
}
