// Package watch re-renders unit files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/trokit/aerotro/internal/parser"
)

// DefaultDebounce absorbs the burst of events an editor produces per save.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called once per settled change to a unit file.
type ChangeFunc func(ctx context.Context, path string)

// Stats counts what the watcher has seen.
type Stats struct {
	Events    int
	Changes   int
	Errors    int
	LastPath  string
	LastEvent time.Time
}

// Watcher watches directories for unit file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	stats   Stats

	closeOnce sync.Once
	closeErr  error
}

// New watches dirs and calls onChange for .yaml, .yml and .json files that
// are created or written. A debounce of zero uses DefaultDebounce.
func New(dirs []string, debounce time.Duration, logger *slog.Logger, onChange ChangeFunc) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("no directories to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Info("Watching for unit changes", "dir", dir)
	}

	return &Watcher{
		watcher:  fw,
		onChange: onChange,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[string]time.Time),
	}, nil
}

// Run handles events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case now := <-ticker.C:
			for _, path := range w.settled(now) {
				w.onChange(ctx, path)
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if _, ok := parser.FormatFromPath(event.Name); !ok {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := filepath.Clean(event.Name)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
	w.stats.Events++
	w.stats.LastPath = path
	w.stats.LastEvent = time.Now()
}

// settled removes and returns the pending paths that have been quiet for
// the debounce interval, sorted by when they last changed.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
		}
	}
	slices.SortFunc(ready, func(a, b string) int {
		return w.pending[a].Compare(w.pending[b])
	})
	for _, path := range ready {
		delete(w.pending, path)
	}
	w.stats.Changes += len(ready)
	return ready
}
