// Package cards renders catalog items as a grid of cards coloured by hair
// colour.
package cards

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/ui/theme"
)

const (
	// CardWidth is the outer width of a card in cells.
	CardWidth = 30
	// CardHeight is the outer height of a card in cells.
	CardHeight = 7
	gap        = 1
	// DuplicateMarker follows names that occur more than once on a page.
	DuplicateMarker = " *"
)

var fields = []string{"hair_color", "skin_color", "gender", "vehicles"}

var labelCaser = cases.Title(language.English)

// Label converts a catalog field name into a card label.
func Label(field string) string {
	return labelCaser.String(strings.ReplaceAll(field, "_", " "))
}

type Model struct {
	theme      *theme.Theme
	duplicates map[string]bool
	items      []catalog.Item
	offset     int
}

func New(t *theme.Theme) *Model {
	return &Model{theme: t}
}

// SetTheme replaces the theme used for card chrome.
func (m *Model) SetTheme(t *theme.Theme) {
	m.theme = t
}

// SetItems replaces the rendered items. Names in duplicates are marked.
func (m *Model) SetItems(items []catalog.Item, duplicates []string) {
	m.items = items
	m.duplicates = make(map[string]bool, len(duplicates))
	for _, name := range duplicates {
		m.duplicates[name] = true
	}
}

// Columns returns how many cards fit side by side in width.
func Columns(width int) int {
	return max(1, (width+gap)/(CardWidth+gap))
}

// View renders the grid into width x height cells, scrolling so that the
// card at cursor is visible.
func (m *Model) View(width, height, cursor int) string {
	if len(m.items) == 0 {
		return ""
	}

	cols := Columns(width)
	visibleRows := max(1, height/CardHeight)

	row := 0
	if cursor >= 0 {
		row = cursor / cols
	}

	switch {
	case row < m.offset:
		m.offset = row
	case row >= m.offset+visibleRows:
		m.offset = row - visibleRows + 1
	}

	lastRow := (len(m.items) - 1) / cols
	m.offset = min(m.offset, max(0, lastRow-visibleRows+1))

	rows := make([]string, 0, visibleRows)
	for r := m.offset; r <= lastRow && r < m.offset+visibleRows; r++ {
		start := r * cols
		end := min(start+cols, len(m.items))

		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", gap))
			}

			cells = append(cells, m.Card(m.items[i], i == cursor))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

// Card renders a single item.
func (m *Model) Card(item catalog.Item, selected bool) string {
	inner := CardWidth - 4

	bg := HairColor(item.HairColor)
	fg := TextColor(item.HairColor)
	text := lipgloss.NewStyle().Foreground(fg).Background(bg)

	name := item.Name
	if m.duplicates[name] {
		name += DuplicateMarker
	}

	lines := []string{
		m.theme.CardTitleStyle.Inherit(text).Render(ansi.Truncate(name, inner, m.theme.Ellipsis)),
	}

	for _, field := range fields {
		label := Label(field) + ": "
		value := ansi.Truncate(fieldValue(item, field), max(1, inner-ansi.StringWidth(label)), m.theme.Ellipsis)
		lines = append(lines,
			m.theme.CardLabelStyle.Inherit(text).Render(label)+text.Render(value))
	}

	style := m.theme.CardStyle
	if selected {
		style = m.theme.CardSelectedStyle
	}

	return style.
		Background(bg).
		Width(CardWidth - 2).
		Render(strings.Join(lines, "\n"))
}

func fieldValue(item catalog.Item, field string) string {
	switch field {
	case "hair_color":
		return item.HairColor
	case "skin_color":
		return item.SkinColor
	case "gender":
		return item.Gender
	case "vehicles":
		return strconv.Itoa(item.VehicleCount())
	}

	return ""
}
