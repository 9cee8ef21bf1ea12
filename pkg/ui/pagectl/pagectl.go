// Package pagectl renders the page controls under the results.
package pagectl

import (
	"strconv"
	"strings"

	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/view"
)

const (
	prevLabel = "←"
	nextLabel = "→"
	more      = "…"
)

// Render renders "← 1 2 3 … →" for rm. Arrows are dimmed when navigation
// in their direction is not allowed, and every page is dimmed while a page
// is loading.
func Render(t *theme.Theme, rm view.RenderModel) string {
	parts := make([]string, 0, len(rm.PageNumbers)+3)

	parts = append(parts, arrow(t, prevLabel, rm.CanGoPrevious))

	for _, n := range rm.PageNumbers {
		label := strconv.Itoa(n)

		switch {
		case n == rm.CurrentPage:
			parts = append(parts, t.PageActiveStyle.Render(label))
		case rm.Loading:
			parts = append(parts, t.PageDisabledStyle.Render(label))
		default:
			parts = append(parts, t.PageStyle.Render(label))
		}
	}

	if len(rm.PageNumbers) < rm.TotalPages {
		parts = append(parts, t.PageDisabledStyle.Render(more))
	}

	parts = append(parts, arrow(t, nextLabel, rm.CanGoNext))

	return strings.Join(parts, "")
}

func arrow(t *theme.Theme, label string, enabled bool) string {
	if enabled {
		return t.PageStyle.Render(label)
	}

	return t.PageDisabledStyle.Render(label)
}
