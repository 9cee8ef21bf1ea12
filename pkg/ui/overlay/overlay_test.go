package overlay_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/ui/overlay"
	"github.com/macropower/namify/pkg/ui/theme"
)

func background(width, height int) string {
	row := strings.Repeat(".", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}

	return strings.Join(rows, "\n")
}

func TestPlace(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fg       string
		want     []string
		dontWant []string
		width    int
		height   int
	}{
		"centred": {
			width:  40,
			height: 20,
			fg:     "Error fetching data",
			want:   []string{"Error fetching data"},
		},
		"too short for content": {
			width:    40,
			height:   6,
			fg:       "Error fetching data",
			dontWant: []string{"Error fetching data"},
		},
		"truncated": {
			width:    60,
			height:   11,
			fg:       "one\ntwo\nthree\nfour\nfive",
			want:     []string{"one", "three", "message truncated"},
			dontWant: []string{"four", "five"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			o := overlay.New(theme.New("github"))
			o.SetSize(tc.width, tc.height)

			bg := background(tc.width, tc.height)
			out := ansi.Strip(o.Place(bg, tc.fg, 0.5, lipgloss.NewStyle()))

			rows := strings.Split(out, "\n")
			require.Len(t, rows, tc.height)
			for _, row := range rows {
				assert.Equal(t, tc.width, ansi.StringWidth(row))
			}

			for _, w := range tc.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tc.dontWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestPlaceKeepsBackgroundEdges(t *testing.T) {
	t.Parallel()

	o := overlay.New(theme.New("github"), overlay.WithMinWidth(4))
	o.SetSize(20, 12)

	out := ansi.Strip(o.Place(background(20, 12), "hi", 0.2, lipgloss.NewStyle()))
	rows := strings.Split(out, "\n")

	assert.Equal(t, strings.Repeat(".", 20), rows[0])
	assert.True(t, strings.HasPrefix(rows[5], "........"), rows[5])
	assert.True(t, strings.HasSuffix(rows[5], "........"), rows[5])
	assert.Contains(t, rows[5], "hi")
}
