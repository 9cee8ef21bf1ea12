package pagectl_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/namify/pkg/ui/pagectl"
	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/uitest"
	"github.com/macropower/namify/pkg/view"
)

func TestRender(t *testing.T) {
	t.Parallel()

	th := theme.New("github")

	tcs := map[string]struct {
		want string
		rm   view.RenderModel
	}{
		"all pages": {
			rm: view.RenderModel{
				PageNumbers: []int{1, 2, 3, 4},
				CurrentPage: 2,
				TotalPages:  4,
			},
			want: " ←  1  2  3  4  → ",
		},
		"narrow": {
			rm: view.RenderModel{
				PageNumbers: []int{1, 2, 3},
				CurrentPage: 1,
				TotalPages:  9,
			},
			want: " ←  1  2  3  …  → ",
		},
		"single page": {
			rm: view.RenderModel{
				PageNumbers: []int{1},
				CurrentPage: 1,
				TotalPages:  1,
			},
			want: " ←  1  → ",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ansi.Strip(pagectl.Render(th, tc.rm)))
		})
	}
}

func TestRenderActivePage(t *testing.T) {
	t.Parallel()
	uitest.SetupColorProfile()

	th := theme.New("github")
	out := pagectl.Render(th, view.RenderModel{
		PageNumbers:   []int{1, 2, 3},
		CurrentPage:   2,
		TotalPages:    3,
		CanGoPrevious: true,
		CanGoNext:     true,
	})

	var bold []string
	for _, seg := range uitest.Segments(out) {
		if seg.Bold {
			bold = append(bold, seg.Text)
		}
	}

	assert.Equal(t, []string{"2"}, bold)
}
