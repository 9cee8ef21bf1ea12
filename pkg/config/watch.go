package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a [Watcher] waits for writes to stop before
// reloading.
const DefaultSettle = 100 * time.Millisecond

// Watcher reloads a config file whenever it is written.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	opts    []LoaderOpt
	settle  time.Duration
}

// NewWatcher watches the file at path. The parent directory is watched so
// that editors replacing the file are noticed.
func NewWatcher(path string, opts ...LoaderOpt) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close() //nolint:errcheck // Already failing.

		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher: fw,
		path:    abs,
		opts:    opts,
		settle:  DefaultSettle,
	}, nil
}

// SetSettle changes the delay between the last write and the reload.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Run calls onChange with the reloaded config, or the load error, after
// each burst of writes. It returns when ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config, error)) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if evt.Name != w.path || !evt.Has(fsnotify.Create|fsnotify.Write) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			slog.Debug("config changed, reloading", slog.String("path", w.path))

			l, err := NewLoaderFromFile(w.path, w.opts...)
			if err != nil {
				onChange(nil, err)

				continue
			}

			onChange(l.Load())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			onChange(nil, fmt.Errorf("watch config: %w", err))
		}
	}
}

func (w *Watcher) Close() error {
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}
