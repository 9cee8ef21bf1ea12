// Package debounce coalesces bursts of Bubble Tea events into one action.
//
// A [Debouncer] schedules a timer on every [Debouncer.Trigger]. Timer
// messages are routed back through [Debouncer.Update], which only runs the
// action for the most recent trigger, so a burst of triggers closer together
// than the delay results in a single action carrying the last value.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Uint64

// FiredMsg is sent when a trigger's delay elapses.
type FiredMsg struct {
	id  uint64
	gen uint64
}

// TickFunc schedules fn after d. It has the signature of [tea.Tick].
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Debouncer delays an action until triggers stop arriving for a full delay.
// It is not safe for concurrent use; drive it from the update loop.
type Debouncer[T any] struct {
	action  func(T) tea.Cmd
	tick    TickFunc
	value   T
	id      uint64
	gen     uint64
	delay   time.Duration
	pending bool
	stopped bool
}

// Opt configures a [Debouncer].
type Opt[T any] func(*Debouncer[T])

// WithTicker replaces [tea.Tick] as the timer source.
func WithTicker[T any](tick TickFunc) Opt[T] {
	return func(d *Debouncer[T]) {
		d.tick = tick
	}
}

// New creates a [Debouncer] that runs action after delay of quiescence.
func New[T any](delay time.Duration, action func(T) tea.Cmd, opts ...Opt[T]) *Debouncer[T] {
	d := &Debouncer[T]{
		id:     lastID.Add(1),
		delay:  delay,
		action: action,
		tick:   tea.Tick,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Trigger supersedes any pending trigger and returns the timer command for
// v. It returns nil once the debouncer has been stopped.
func (d *Debouncer[T]) Trigger(v T) tea.Cmd {
	if d.stopped {
		return nil
	}

	d.gen++
	d.value = v
	d.pending = true

	id, gen := d.id, d.gen

	return d.tick(d.delay, func(time.Time) tea.Msg {
		return FiredMsg{id: id, gen: gen}
	})
}

// Update consumes this debouncer's [FiredMsg]s. The returned bool reports
// whether msg belonged to this debouncer. The action's command is returned
// only when msg fired for the latest trigger.
func (d *Debouncer[T]) Update(msg tea.Msg) (tea.Cmd, bool) {
	fired, ok := msg.(FiredMsg)
	if !ok || fired.id != d.id {
		return nil, false
	}

	if d.stopped || !d.pending || fired.gen != d.gen {
		return nil, true
	}

	d.pending = false

	return d.action(d.value), true
}

// Flush runs the pending action now instead of waiting for its timer,
// which becomes a no-op. It returns nil when nothing is pending.
func (d *Debouncer[T]) Flush() tea.Cmd {
	if !d.Pending() {
		return nil
	}

	d.gen++
	d.pending = false

	return d.action(d.value)
}

// Pending reports whether a trigger is waiting for its delay to elapse.
func (d *Debouncer[T]) Pending() bool {
	return d.pending && !d.stopped
}

// Delay returns the quiescence period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// SetDelay changes the quiescence period for future triggers.
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	d.delay = delay
}

// Stop disposes of the debouncer. Timers already in flight become no-ops.
func (d *Debouncer[T]) Stop() {
	d.stopped = true
	d.pending = false
}
