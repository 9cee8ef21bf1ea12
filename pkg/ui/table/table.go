// Package table renders catalog items as a table.
package table

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/ui/cards"
	"github.com/macropower/namify/pkg/ui/theme"
)

type column struct {
	title string
	value func(catalog.Item) string
	width int
}

var columns = []column{
	{title: "Name", width: 24, value: func(i catalog.Item) string { return i.Name }},
	{title: cards.Label("hair_color"), width: 14, value: func(i catalog.Item) string { return i.HairColor }},
	{title: cards.Label("skin_color"), width: 14, value: func(i catalog.Item) string { return i.SkinColor }},
	{title: cards.Label("gender"), width: 10, value: func(i catalog.Item) string { return i.Gender }},
	{title: cards.Label("birth_year"), width: 10, value: func(i catalog.Item) string { return i.BirthYear }},
	{title: cards.Label("vehicles"), width: 8, value: func(i catalog.Item) string { return strconv.Itoa(i.VehicleCount()) }},
}

type Model struct {
	table      table.Model
	duplicates map[string]bool
}

func New(t *theme.Theme) *Model {
	m := &Model{table: table.New(table.WithColumns(toColumns(0)))}
	m.SetTheme(t)

	return m
}

func (m *Model) SetTheme(t *theme.Theme) {
	styles := table.DefaultStyles()
	styles.Header = t.TableHeaderStyle.Padding(0, 1)
	styles.Cell = t.GenericStyle.Padding(0, 1)
	styles.Selected = t.TableCursorStyle
	m.table.SetStyles(styles)
}

// SetItems replaces the table rows. Names in duplicates are marked.
func (m *Model) SetItems(items []catalog.Item, duplicates []string) {
	m.duplicates = make(map[string]bool, len(duplicates))
	for _, name := range duplicates {
		m.duplicates[name] = true
	}

	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		row := make(table.Row, 0, len(columns))
		for i, c := range columns {
			v := c.value(item)
			if i == 0 && m.duplicates[v] {
				v += cards.DuplicateMarker
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	m.table.SetRows(rows)
}

// SetSize sizes the table to width x height cells. The name column takes
// whatever the fixed columns leave over.
func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(toColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(2, height))
}

// View renders the table with the row at cursor selected.
func (m *Model) View(cursor int) string {
	m.table.SetCursor(max(0, cursor))

	return m.table.View()
}

func toColumns(width int) []table.Column {
	fixed := 0
	for _, c := range columns[1:] {
		fixed += c.width + 2
	}

	out := make([]table.Column, 0, len(columns))
	for i, c := range columns {
		w := c.width
		if i == 0 && width > 0 {
			w = max(ansi.StringWidth(c.title), width-fixed-2)
		}

		out = append(out, table.Column{Title: c.title, Width: w})
	}

	return out
}
