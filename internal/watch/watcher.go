// Package watch re-runs a callback whenever a single file settles after
// being saved.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Triggers int
	Errors   int
}

// FileWatcher watches the directory holding one file so that editors which
// save by rename are still seen. Bursts of events are collapsed into one
// callback once the file has been quiet for the debounce window.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending time.Time
	stats   Stats
}

func NewFileWatcher(path string, debounce time.Duration, onChange func(path string), logger *slog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  w,
	}, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Run blocks until ctx is cancelled or the watcher fails, then releases the
// underlying inotify handle.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	tick := fw.debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	fw.logger.Debug("watching file", "path", fw.path, "debounce_ms", fw.debounce.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.mu.Lock()
			fw.stats.Errors++
			fw.mu.Unlock()
			fw.logger.Warn("watcher error", "path", fw.path, "error", err)

		case <-ticker.C:
			fw.fireIfSettled()
		}
	}
}

// Stats returns a snapshot of the counters.
func (fw *FileWatcher) Stats() Stats {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.stats
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	fw.mu.Lock()
	fw.stats.Events++
	fw.pending = time.Now()
	fw.mu.Unlock()
}

func (fw *FileWatcher) fireIfSettled() {
	fw.mu.Lock()
	if fw.pending.IsZero() || time.Since(fw.pending) < fw.debounce {
		fw.mu.Unlock()
		return
	}
	fw.pending = time.Time{}
	fw.stats.Triggers++
	fw.mu.Unlock()

	fw.onChange(fw.path)
}
