// Package overlay composites a boxed panel over the centre of a rendered
// view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/macropower/namify/pkg/ui/theme"
)

const (
	defaultMinWidth = 16
	// Rows kept free for the header, page controls and status bar.
	reservedRows = 8
)

type Overlay struct {
	theme    *theme.Theme
	fill     termenv.Style
	hint     string
	width    int
	height   int
	minWidth int
}

type Opt func(*Overlay)

// WithMinWidth sets the minimum panel width in cells.
func WithMinWidth(minWidth int) Opt {
	return func(o *Overlay) {
		o.minWidth = minWidth
	}
}

// WithTruncationHint sets the line shown when the panel content is cut.
func WithTruncationHint(hint string) Opt {
	return func(o *Overlay) {
		o.hint = hint
	}
}

func New(t *theme.Theme, opts ...Opt) *Overlay {
	o := &Overlay{
		theme:    t,
		minWidth: defaultMinWidth,
		hint:     "message truncated",
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// SetSize sets the size of the view the panel is placed on.
func (o *Overlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Place renders fg with style at widthFraction of the view width and
// draws it centred on top of bg.
func (o *Overlay) Place(bg, fg string, widthFraction float64, style lipgloss.Style) string {
	panelWidth := clamp(int(float64(o.width)*widthFraction), o.minWidth, max(o.minWidth, o.width))
	panel := style.Width(panelWidth).Render(o.fit(fg, panelWidth))

	fgLines, fgWidth := lines(panel)
	bgLines, bgWidth := lines(bg)

	x := clamp(bgWidth-fgWidth, 0, bgWidth) / 2
	y := clamp(len(bgLines)-len(fgLines), 0, len(bgLines)) / 2

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+len(fgLines) {
			b.WriteString(bgLine)

			continue
		}

		b.WriteString(o.splice(bgLine, fgLines[i-y], x))
	}

	return b.String()
}

// fit wraps content to the panel and cuts it to the rows left over by the
// surrounding chrome.
func (o *Overlay) fit(content string, width int) string {
	content = cellbuf.Wrap(content, width, " /-")

	rows, _ := lines(content)
	limit := o.height - reservedRows

	switch {
	case limit < 1:
		return ""
	case len(rows) <= limit:
		return content
	}

	hint := truncate.StringWithTail(o.hint, uint(max(0, width-4)), o.theme.Ellipsis) //nolint:gosec // Non-negative.
	rows = append(rows[:limit], "", o.theme.SubtleStyle.Render(hint))

	return strings.Join(rows, "\n")
}

func (o *Overlay) splice(bgLine, fgLine string, x int) string {
	var b strings.Builder

	pos := 0
	if x > 0 {
		left := truncate.String(bgLine, uint(x)) //nolint:gosec // Non-negative.
		pos = ansi.PrintableRuneWidth(left)
		b.WriteString(left)
		if pos < x {
			b.WriteString(o.blank(x - pos))
			pos = x
		}
	}

	b.WriteString(fgLine)
	pos += ansi.PrintableRuneWidth(fgLine)

	right := xansi.TruncateLeft(bgLine, pos, "")
	bgWidth := ansi.PrintableRuneWidth(bgLine)
	if rw := ansi.PrintableRuneWidth(right); rw <= bgWidth-pos {
		b.WriteString(o.blank(bgWidth - rw - pos))
	}

	b.WriteString(right)

	return b.String()
}

func (o *Overlay) blank(width int) string {
	return o.fill.Styled(strings.Repeat(" ", max(0, width)))
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}

// lines splits s into lines and reports the widest one.
func lines(s string) ([]string, int) {
	out := strings.Split(s, "\n")
	widest := 0
	for _, l := range out {
		widest = max(widest, xansi.StringWidth(l))
	}

	return out, widest
}
