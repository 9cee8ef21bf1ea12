// Package theme derives lipgloss styles for the namify UI from a chroma
// style, so any chroma theme name can be used.
package theme

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const Ellipsis = "…"

// Default is the theme used when none is configured.
var Default = New("auto")

type Theme struct {
	// Chrome.
	LogoStyle     lipgloss.Style
	TaglineStyle  lipgloss.Style
	GenericStyle  lipgloss.Style
	SubtleStyle   lipgloss.Style
	SelectedStyle lipgloss.Style
	HelpStyle     lipgloss.Style

	// Search.
	SearchPromptStyle     lipgloss.Style
	SuggestionStyle       lipgloss.Style
	SuggestionMatchStyle  lipgloss.Style
	SuggestionCursorStyle lipgloss.Style
	DropdownStyle         lipgloss.Style

	// Results.
	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	CardTitleStyle    lipgloss.Style
	CardLabelStyle    lipgloss.Style
	TableHeaderStyle  lipgloss.Style
	TableCursorStyle  lipgloss.Style
	EmptyStyle        lipgloss.Style

	// Page controls.
	PageStyle         lipgloss.Style
	PageActiveStyle   lipgloss.Style
	PageDisabledStyle lipgloss.Style

	// Status bar and overlays.
	StatusBarStyle        lipgloss.Style
	StatusBarPosStyle     lipgloss.Style
	StatusBarHelpStyle    lipgloss.Style
	StatusBarMessageStyle lipgloss.Style
	StatusBarErrorStyle   lipgloss.Style
	ErrorTitleStyle       lipgloss.Style
	ErrorOverlayStyle     lipgloss.Style
	GenericOverlayStyle   lipgloss.Style

	Name     string
	Ellipsis string
}

// New builds a [Theme] from the named chroma style. "auto" picks a light or
// dark style from the terminal background; unknown names fall back to
// chroma's fallback style.
func New(name string) *Theme {
	cs := newChromaStyle(name)

	accent := cs.fg(chroma.NameTag)
	text := cs.fg(chroma.Background)
	bg := cs.bg(chroma.Background)
	subtle := cs.fg(chroma.Comment)
	danger := cs.fg(chroma.GenericDeleted)

	generic := lipgloss.NewStyle().Foreground(text)
	subtleStyle := lipgloss.NewStyle().Foreground(subtle)
	selected := lipgloss.NewStyle().Foreground(accent).Bold(true)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cs.fgShade(chroma.Comment, 0.2)).
		Padding(0, 1)

	statusBar := lipgloss.NewStyle().
		Foreground(text).
		Background(cs.bgShade(chroma.Background, 0.1))

	return &Theme{
		LogoStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true).
			Padding(0, 1),
		TaglineStyle:  subtleStyle.Italic(true),
		GenericStyle:  generic,
		SubtleStyle:   subtleStyle,
		SelectedStyle: selected,
		HelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),

		SearchPromptStyle:     selected,
		SuggestionStyle:       generic,
		SuggestionMatchStyle:  lipgloss.NewStyle().Foreground(accent).Underline(true),
		SuggestionCursorStyle: selected,
		DropdownStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(subtle),

		CardStyle:         card,
		CardSelectedStyle: card.BorderForeground(accent),
		CardTitleStyle:    lipgloss.NewStyle().Bold(true),
		CardLabelStyle:    lipgloss.NewStyle().Faint(true),
		TableHeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle),
		TableCursorStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent),
		EmptyStyle: subtleStyle.Padding(1, 2),

		PageStyle:         generic.Padding(0, 1),
		PageActiveStyle:   lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true).Padding(0, 1),
		PageDisabledStyle: subtleStyle.Faint(true).Padding(0, 1),

		StatusBarStyle: statusBar,
		StatusBarPosStyle: lipgloss.NewStyle().
			Foreground(text).
			Background(cs.bgShade(chroma.Background, 0.15)),
		StatusBarHelpStyle: lipgloss.NewStyle().
			Foreground(cs.fgShade(chroma.Background, 0.2)).
			Background(cs.bgShade(chroma.Background, 0.2)),
		StatusBarMessageStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(cs.fgShade(chroma.GenericInserted, 0.1)),
		StatusBarErrorStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(danger),
		ErrorTitleStyle: lipgloss.NewStyle().
			Foreground(bg).
			Background(danger).
			Padding(0, 1),
		ErrorOverlayStyle: generic.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1),
		GenericOverlayStyle: generic.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1),

		Name:     cs.style.Name,
		Ellipsis: Ellipsis,
	}
}

// Register adds a custom chroma style that can then be selected by name.
func Register(name string, entries chroma.StyleEntries) error {
	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("create chroma style: %w", err)
	}

	styles.Register(s)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(name string) chromaStyle {
	s := styles.Get(resolve(name))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) fg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bg(t chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Background.String())
}

func (cs chromaStyle) fgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bgShade(t chroma.TokenType, factor float64) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(t).Background.BrightenOrDarken(factor).String())
}

func resolve(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return "github"
		}
		if termenv.HasDarkBackground() {
			return "github-dark"
		}

		return "github"
	}

	return name
}
