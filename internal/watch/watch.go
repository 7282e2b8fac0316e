// Package watch re-runs validation when a watched prescription or document
// file changes, debouncing bursts of nearly-simultaneous writes into one
// callback invocation.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps an fsnotify.Watcher with mdrx's debounce policy.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	dirs     map[string]bool
}

// New creates a Watcher that waits debounce after the last event in a burst
// before firing its callback.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{fsw: fsw, debounce: debounce, dirs: map[string]bool{}}, nil
}

// Add registers the directories containing each of the given files. fsnotify
// watches directories rather than individual files so that edits which
// replace a file (write-to-temp-then-rename, as most editors do) are still
// observed.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		dir := filepath.Dir(p)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks, invoking onChange with the set of changed markdown paths after
// each debounce window, until ctx is cancelled. Chmod-only events are
// ignored; only .md files are tracked.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	var mu sync.Mutex
	pending := map[string]bool{}
	var timer *time.Timer

	fire := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		pending = map[string]bool{}
		mu.Unlock()

		if len(changed) > 0 {
			onChange(changed)
		}
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}

			mu.Lock()
			pending[event.Name] = true
			mu.Unlock()

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
