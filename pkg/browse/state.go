package browse

import (
	"time"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/pagination"
)

// Status is the page load status.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	}

	return "unknown"
}

// LoadState describes the most recent page request.
type LoadState struct {
	Err     error
	Message string
	Status  Status
}

// Loading reports whether a page request is in flight.
func (l LoadState) Loading() bool {
	return l.Status == StatusLoading
}

// Failed reports whether the most recent page request failed.
func (l LoadState) Failed() bool {
	return l.Status == StatusFailed
}

// Snapshot is a read-only copy of the coordinator's state, taken for
// rendering.
type Snapshot struct {
	LoadedAt    time.Time
	Load        LoadState
	Term        string
	Items       []catalog.Item
	Suggestions []string
	Pages       pagination.State
	TotalCount  int
	// SearchPending is set while a term change waits for the debounce delay.
	SearchPending bool
}

// PageLoadedMsg carries the result of a page request back to the update
// loop. Seq and PageNumber identify the request it answers.
type PageLoadedMsg struct {
	Err        error
	Page       *catalog.Page
	Seq        uint64
	PageNumber int
}

// SuggestionsMsg carries the result of a suggestion request back to the
// update loop.
type SuggestionsMsg struct {
	Err   error
	Term  string
	Names []string
	Seq   uint64
}
