// Package pagination tracks the current page of a remote collection and the
// page controls that should be offered for it.
package pagination

import "github.com/macropower/namify/pkg/catalog"

const (
	// NarrowViewportWidth is the logical pixel width below which the page
	// controls are truncated to [NarrowPageLimit] entries.
	NarrowViewportWidth = 600
	NarrowPageLimit     = 3
)

// State holds the current page and the total page count. Both are 1-based
// and never below one.
type State struct {
	current int
	total   int
}

// New returns a [State] on page 1 of 1.
func New() State {
	return State{current: 1, total: 1}
}

// Current returns the current page.
func (s State) Current() int {
	return max(1, s.current)
}

// Total returns the total number of pages.
func (s State) Total() int {
	return max(1, s.total)
}

// InRange reports whether page is a valid page number.
func (s State) InRange(page int) bool {
	return page >= 1 && page <= s.Total()
}

// CanGoTo reports whether navigation to page is allowed.
func (s State) CanGoTo(page int, loading bool) bool {
	return !loading && s.InRange(page)
}

// CanGoPrevious reports whether a previous page exists and navigation is
// currently allowed.
func (s State) CanGoPrevious(loading bool) bool {
	return s.CanGoTo(s.Current()-1, loading)
}

// CanGoNext reports whether a next page exists and navigation is currently
// allowed.
func (s State) CanGoNext(loading bool) bool {
	return s.CanGoTo(s.Current()+1, loading)
}

// WithCurrent returns a copy of s on the given page. Callers validate the
// page first; out of range values are clamped.
func (s State) WithCurrent(page int) State {
	s.current = min(max(1, page), s.Total())

	return s
}

// WithTotalCount returns a copy of s whose total is derived from a
// collection count. The current page is left as is so that a committed
// page number is never rewritten.
func (s State) WithTotalCount(count int) State {
	s.total = catalog.TotalPages(count)

	return s
}

// PageNumbers returns the page numbers to render for a viewport of the
// given logical width.
func (s State) PageNumbers(viewportWidth int) []int {
	n := s.Total()
	if Narrow(viewportWidth) {
		n = min(NarrowPageLimit, n)
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}

	return pages
}

// Narrow reports whether viewportWidth is below [NarrowViewportWidth].
func Narrow(viewportWidth int) bool {
	return viewportWidth < NarrowViewportWidth
}
