// Package browse coordinates page fetching, search and pagination for the
// catalog.
//
// A [Coordinator] is owned by a Bubble Tea model and is only ever mutated
// from its update loop. Network calls run as [tea.Cmd]s and report back as
// [PageLoadedMsg] and [SuggestionsMsg]; results that no longer match the
// latest request are discarded when they arrive.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/debounce"
	"github.com/macropower/namify/pkg/log"
	"github.com/macropower/namify/pkg/pagination"
	"github.com/macropower/namify/pkg/search"
)

// DefaultDebounce is the delay between the last term edit and the refetch
// of the first page.
const DefaultDebounce = 500 * time.Millisecond

// Coordinator owns the browsing state.
type Coordinator struct {
	ctx     context.Context
	fetcher catalog.Fetcher
	refetch *debounce.Debouncer[string]
	now     func() time.Time

	cancel     context.CancelFunc
	pageCancel context.CancelFunc
	suggCancel context.CancelFunc

	page     *catalog.Page
	loadedAt time.Time
	search   search.State
	load     LoadState
	pages    pagination.State

	pageSeq     uint64
	suggSeq     uint64
	desiredPage int
	closed      bool
}

type options struct {
	now       func() time.Time
	tick      debounce.TickFunc
	debounce  time.Duration
	startPage int
}

// Opt configures a [Coordinator].
type Opt func(*options)

// WithDebounce sets the search debounce delay.
func WithDebounce(d time.Duration) Opt {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithStartPage sets the page fetched by [Coordinator.Init].
func WithStartPage(page int) Opt {
	return func(o *options) {
		if page >= 1 {
			o.startPage = page
		}
	}
}

// WithClock overrides the clock used to stamp loaded pages.
func WithClock(now func() time.Time) Opt {
	return func(o *options) {
		o.now = now
	}
}

// WithTicker overrides the debounce timer source.
func WithTicker(tick debounce.TickFunc) Opt {
	return func(o *options) {
		o.tick = tick
	}
}

// New creates a [Coordinator] on page 1 with an empty term. Requests are
// bound to ctx and cancelled by [Coordinator.Close].
func New(ctx context.Context, fetcher catalog.Fetcher, opts ...Opt) *Coordinator {
	o := options{
		now:       time.Now,
		tick:      tea.Tick,
		debounce:  DefaultDebounce,
		startPage: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)

	c := &Coordinator{
		ctx:         ctx,
		cancel:      cancel,
		fetcher:     fetcher,
		now:         o.now,
		pages:       pagination.New(),
		desiredPage: o.startPage,
	}
	c.refetch = debounce.New(o.debounce, c.resetAndRefetch, debounce.WithTicker[string](o.tick))

	return c
}

// Init fetches the start page.
func (c *Coordinator) Init() tea.Cmd {
	if c.closed {
		return nil
	}

	return c.fetchPage(c.desiredPage)
}

// SetTerm updates the search term. Suggestions for the new term are
// requested immediately; the first page is refetched once the term has been
// stable for the debounce delay.
func (c *Coordinator) SetTerm(term string) tea.Cmd {
	if c.closed {
		return nil
	}

	c.search.Term = term

	return tea.Batch(
		c.requestSuggestions(term),
		c.refetch.Trigger(term),
	)
}

// SubmitTerm refetches the first page immediately when a term change is
// still waiting for the debounce delay.
func (c *Coordinator) SubmitTerm() tea.Cmd {
	if c.closed {
		return nil
	}

	return c.refetch.Flush()
}

// SelectSuggestion applies a suggested name as the search term.
func (c *Coordinator) SelectSuggestion(name string) tea.Cmd {
	return c.SetTerm(name)
}

// GoTo moves to page and fetches it. It does nothing when page is out of
// range or a page request is in flight.
func (c *Coordinator) GoTo(page int) tea.Cmd {
	if c.closed || !c.pages.CanGoTo(page, c.load.Loading()) {
		return nil
	}

	c.pages = c.pages.WithCurrent(page)

	return c.fetchPage(page)
}

// Next moves to the following page.
func (c *Coordinator) Next() tea.Cmd {
	return c.GoTo(c.pages.Current() + 1)
}

// Previous moves to the preceding page.
func (c *Coordinator) Previous() tea.Cmd {
	return c.GoTo(c.pages.Current() - 1)
}

// Reload repeats the most recent page request. It does nothing while a
// page request is in flight.
func (c *Coordinator) Reload() tea.Cmd {
	if c.closed || c.load.Loading() {
		return nil
	}

	return c.fetchPage(c.desiredPage)
}

// SetDebounce changes the search debounce delay for future edits.
func (c *Coordinator) SetDebounce(d time.Duration) {
	c.refetch.SetDelay(d)
}

// Update applies messages produced by the coordinator's own commands. The
// returned bool reports whether msg was handled.
func (c *Coordinator) Update(msg tea.Msg) (tea.Cmd, bool) {
	if cmd, ok := c.refetch.Update(msg); ok {
		return cmd, true
	}

	switch msg := msg.(type) {
	case PageLoadedMsg:
		c.commitPage(msg)

		return nil, true

	case SuggestionsMsg:
		c.commitSuggestions(msg)

		return nil, true
	}

	return nil, false
}

// Close cancels outstanding requests and stops the debouncer. Every later
// operation and result is ignored.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}

	c.closed = true
	c.refetch.Stop()
	c.cancel()
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{
		Term:          c.search.Term,
		Suggestions:   slices.Clone(c.search.Suggestions),
		Load:          c.load,
		Pages:         c.pages,
		LoadedAt:      c.loadedAt,
		SearchPending: c.refetch.Pending(),
	}

	if c.page != nil {
		s.Items = slices.Clone(c.page.Items)
		s.TotalCount = c.page.TotalCount
	}

	return s
}

func (c *Coordinator) resetAndRefetch(term string) tea.Cmd {
	if c.closed {
		return nil
	}

	c.logger().Debug("search settled, refetching first page", slog.String("term", term))

	c.pages = c.pages.WithCurrent(1)

	return c.fetchPage(1)
}

func (c *Coordinator) fetchPage(page int) tea.Cmd {
	if c.pageCancel != nil {
		c.pageCancel()
	}

	c.pageSeq++
	c.desiredPage = page
	c.load = LoadState{Status: StatusLoading}

	ctx, cancel := context.WithCancel(c.ctx)
	c.pageCancel = cancel

	seq, fetcher := c.pageSeq, c.fetcher

	return func() tea.Msg {
		p, err := fetcher.FetchPage(ctx, page)

		return PageLoadedMsg{Seq: seq, PageNumber: page, Page: p, Err: err}
	}
}

func (c *Coordinator) commitPage(msg PageLoadedMsg) {
	logger := c.logger().With(slog.Int("page", msg.PageNumber))

	if c.closed || msg.Seq != c.pageSeq || msg.PageNumber != c.desiredPage {
		logger.Debug("discarding stale page result",
			slog.Uint64("seq", msg.Seq),
			slog.Uint64("latest_seq", c.pageSeq),
		)

		return
	}

	if c.pageCancel != nil {
		c.pageCancel()
		c.pageCancel = nil
	}

	if msg.Err != nil || msg.Page == nil {
		err := msg.Err
		if err == nil {
			err = &catalog.FetchError{Page: msg.PageNumber, Err: errors.New("empty response")}
		}

		c.load = LoadState{Status: StatusFailed, Err: err, Message: errorMessage(err)}
		logger.Error("fetch page", slog.Any("err", err))

		return
	}

	// A start page requested before the total was known may not exist.
	if total := msg.Page.TotalPages(); msg.PageNumber > total {
		err := &catalog.FetchError{
			Page: msg.PageNumber,
			Err:  fmt.Errorf("%w: %d of %d", catalog.ErrPageOutOfRange, msg.PageNumber, total),
		}

		c.pages = c.pages.WithTotalCount(msg.Page.TotalCount)
		c.desiredPage = min(c.pages.Current(), total)
		c.load = LoadState{Status: StatusFailed, Err: err, Message: errorMessage(err)}
		logger.Error("fetch page", slog.Any("err", err))

		return
	}

	c.page = msg.Page
	c.pages = c.pages.WithTotalCount(msg.Page.TotalCount).WithCurrent(msg.PageNumber)
	c.load = LoadState{Status: StatusIdle}
	c.loadedAt = c.now()

	logger.Debug("page loaded",
		slog.Int("items", len(msg.Page.Items)),
		slog.Int("total_pages", c.pages.Total()),
	)

	if dups := search.DuplicateNames(msg.Page.Items); len(dups) > 0 {
		logger.Warn("page contains duplicate names", slog.Any("names", dups))
	}
}

func (c *Coordinator) requestSuggestions(term string) tea.Cmd {
	if c.suggCancel != nil {
		c.suggCancel()
		c.suggCancel = nil
	}

	c.suggSeq++

	if search.Blank(term) {
		c.search.Suggestions = nil

		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.suggCancel = cancel

	seq, fetcher := c.suggSeq, c.fetcher

	return func() tea.Msg {
		names, err := fetcher.FetchSuggestions(ctx, term)

		return SuggestionsMsg{Seq: seq, Term: term, Names: names, Err: err}
	}
}

func (c *Coordinator) commitSuggestions(msg SuggestionsMsg) {
	if c.closed || msg.Seq != c.suggSeq || msg.Term != c.search.Term {
		return
	}

	if c.suggCancel != nil {
		c.suggCancel()
		c.suggCancel = nil
	}

	if msg.Err != nil {
		c.search.Suggestions = nil

		c.logger().Warn("fetch suggestions",
			slog.String("term", msg.Term),
			slog.Any("err", msg.Err),
		)

		return
	}

	c.search.Suggestions = msg.Names
}

func (c *Coordinator) logger() *slog.Logger {
	return log.FromContext(c.ctx)
}

func errorMessage(err error) string {
	var fetchErr *catalog.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message()
	}

	return "Error fetching data"
}
