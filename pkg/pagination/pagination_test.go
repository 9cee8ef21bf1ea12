package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/macropower/namify/pkg/pagination"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s := pagination.New()
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.CanGoPrevious(false))
	assert.False(t, s.CanGoNext(false))
	assert.Equal(t, []int{1}, s.PageNumbers(1024))

	var zero pagination.State
	assert.Equal(t, 1, zero.Current())
	assert.Equal(t, 1, zero.Total())
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		count    int
		current  int
		loading  bool
		wantPrev bool
		wantNext bool
	}{
		"first page": {count: 82, current: 1, wantNext: true},
		"middle":     {count: 82, current: 5, wantPrev: true, wantNext: true},
		"last page":  {count: 82, current: 9, wantPrev: true},
		"loading":    {count: 82, current: 5, loading: true},
		"single":     {count: 7, current: 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := pagination.New().WithTotalCount(tc.count).WithCurrent(tc.current)
			assert.Equal(t, tc.current, s.Current())
			assert.Equal(t, tc.wantPrev, s.CanGoPrevious(tc.loading))
			assert.Equal(t, tc.wantNext, s.CanGoNext(tc.loading))
		})
	}
}

func TestCanGoTo(t *testing.T) {
	t.Parallel()

	s := pagination.New().WithTotalCount(30)

	tcs := map[string]struct {
		page    int
		loading bool
		want    bool
	}{
		"zero":       {page: 0},
		"negative":   {page: -1},
		"first":      {page: 1, want: true},
		"last":       {page: 3, want: true},
		"past end":   {page: 4},
		"while busy": {page: 2, loading: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, s.CanGoTo(tc.page, tc.loading))
		})
	}
}

func TestPageNumbers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		count int
		width int
		want  []int
	}{
		"wide":             {count: 82, width: 1200, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		"boundary is wide": {count: 82, width: 600, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		"narrow":           {count: 82, width: 599, want: []int{1, 2, 3}},
		"narrow few pages": {count: 12, width: 320, want: []int{1, 2}},
		"empty collection": {count: 0, width: 320, want: []int{1}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := pagination.New().WithTotalCount(tc.count)
			assert.Equal(t, tc.want, s.PageNumbers(tc.width))
		})
	}
}

func TestPageNumbersProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 10_000).Draw(t, "count")
		width := rapid.IntRange(0, 4000).Draw(t, "width")

		s := pagination.New().WithTotalCount(count)
		pages := s.PageNumbers(width)

		want := s.Total()
		if width < pagination.NarrowViewportWidth {
			want = min(pagination.NarrowPageLimit, s.Total())
		}

		assert.Len(t, pages, want)

		for i, p := range pages {
			assert.Equal(t, i+1, p)
		}
	})
}
