package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultRingSize is used when [NewRing] receives a non-positive size.
const DefaultRingSize = 100

// Ring is an [io.Writer] that keeps the most recent writes in memory.
//
// It is used as the log sink while the terminal UI owns the screen; the
// retained lines are flushed to stderr once the program exits.
type Ring struct {
	lines [][]byte
	next  int
	count int
	mu    sync.Mutex
}

// NewRing creates a [Ring] holding at most size writes.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}

	return &Ring{lines: make([][]byte, size)}
}

// Write retains a copy of p, evicting the oldest write when full.
func (r *Ring) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.next] = append([]byte(nil), p...)
	r.next = (r.next + 1) % len(r.lines)

	if r.count < len(r.lines) {
		r.count++
	}

	return len(p), nil
}

// Lines returns the retained writes, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, r.count)
	start := (r.next - r.count + len(r.lines)) % len(r.lines)

	for i := range r.count {
		out = append(out, string(r.lines[(start+i)%len(r.lines)]))
	}

	return out
}

// Len returns the number of retained writes.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Cap returns the maximum number of retained writes.
func (r *Ring) Cap() int {
	return len(r.lines)
}

// Reset drops all retained writes.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.lines)
	r.next, r.count = 0, 0
}

// WriteTo implements [io.WriterTo].
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, line := range r.Lines() {
		n, err := io.WriteString(w, line)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write log line: %w", err)
		}
	}

	return total, nil
}
