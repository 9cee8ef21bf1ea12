// Package view derives what should be rendered from a browse snapshot.
package view

import (
	"github.com/macropower/namify/pkg/browse"
	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/pagination"
	"github.com/macropower/namify/pkg/search"
)

// RenderModel is everything the presentation layer needs for one frame.
type RenderModel struct {
	Term           string
	ErrorMessage   string
	VisibleItems   []catalog.Item
	Suggestions    []string
	PageNumbers    []int
	DuplicateNames []string
	CurrentPage    int
	TotalPages     int
	TotalCount     int
	Loading        bool
	EmptyState     bool
	Narrow         bool
	CanGoPrevious  bool
	CanGoNext      bool
	SearchPending  bool
}

// Project computes a [RenderModel] for a viewport of the given logical
// width. It has no side effects.
func Project(s browse.Snapshot, viewportWidth int) RenderModel {
	visible := search.Filter(s.Items, s.Term)
	loading := s.Load.Loading()

	rm := RenderModel{
		Term:           s.Term,
		VisibleItems:   visible,
		Suggestions:    s.Suggestions,
		Loading:        loading,
		EmptyState:     len(visible) == 0 && !loading,
		PageNumbers:    s.Pages.PageNumbers(viewportWidth),
		Narrow:         pagination.Narrow(viewportWidth),
		CurrentPage:    s.Pages.Current(),
		TotalPages:     s.Pages.Total(),
		TotalCount:     s.TotalCount,
		CanGoPrevious:  s.Pages.CanGoPrevious(loading),
		CanGoNext:      s.Pages.CanGoNext(loading),
		DuplicateNames: search.DuplicateNames(visible),
		SearchPending:  s.SearchPending,
	}

	if s.Load.Failed() {
		rm.ErrorMessage = s.Load.Message
	}

	return rm
}
