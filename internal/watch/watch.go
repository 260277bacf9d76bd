// Package watch regenerates steering documents when the analyzed inputs of a
// project change. It watches the files the analyzer reads and coalesces
// editor save bursts into a single regeneration run.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sourceDirs are the conventional top-level directories whose contents feed
// the analyzer. They are watched when present.
var sourceDirs = []string{"app", "src", "pages", "components", "lib"}

// sourceExts mirror the file types the analyzer scans.
var sourceExts = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".mjs": true, ".vue": true, ".php": true,
}

// RegenerateFunc is invoked once per settled change burst.
type RegenerateFunc func(ctx context.Context) error

// Stats tracks watcher activity.
type Stats struct {
	EventsSeen    int
	RunsTriggered int
	LastRun       time.Time
}

// Watcher debounces filesystem events under a project root and triggers
// regeneration after the configured quiet period.
type Watcher struct {
	mu         sync.RWMutex
	watcher    *fsnotify.Watcher
	root       string
	extraPaths []string
	pending    map[string]time.Time
	debounce   time.Duration
	regenerate RegenerateFunc
	log        *zap.Logger
	stopCh     chan struct{}
	doneCh     chan struct{}
	running    bool
	stats      Stats
}

// New creates a watcher over the project root. extraPaths adds watch roots
// beyond the conventional ones. A nil logger is replaced with a no-op one.
func New(root string, extraPaths []string, debounce time.Duration, regenerate RegenerateFunc, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		watcher:    fw,
		root:       root,
		extraPaths: extraPaths,
		pending:    make(map[string]time.Time),
		debounce:   debounce,
		regenerate: regenerate,
		log:        log,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; the event loop runs in a
// goroutine until Stop is called or the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.root); err != nil {
		w.log.Warn("watch root unavailable", zap.String("path", w.root), zap.Error(err))
	}

	for _, dir := range sourceDirs {
		path := filepath.Join(w.root, dir)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn("watch dir unavailable", zap.String("path", path), zap.Error(err))
		}
	}

	for _, extra := range w.extraPaths {
		path := extra
		if !filepath.IsAbs(path) {
			path = filepath.Join(w.root, path)
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn("watch path unavailable", zap.String("path", path), zap.Error(err))
		}
	}

	w.log.Info("watching for changes",
		zap.String("root", w.root),
		zap.Duration("debounce", w.debounce),
		zap.Strings("paths", w.watcher.WatchList()))

	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Error("error closing watcher", zap.Error(err))
	}
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Pending events are swept on a fixed cadence; the configured debounce
	// decides when a burst counts as settled.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", zap.Error(err))

		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !isRelevant(event.Name) {
		return
	}

	w.log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.EventsSeen++
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// sweep fires one regeneration run when every pending event has settled past
// the debounce window.
func (w *Watcher) sweep(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	now := time.Now()
	var latest time.Time
	for _, at := range w.pending {
		if at.After(latest) {
			latest = at
		}
	}
	if now.Sub(latest) < w.debounce {
		w.mu.Unlock()
		return
	}

	changed := len(w.pending)
	w.pending = make(map[string]time.Time)
	w.stats.RunsTriggered++
	w.stats.LastRun = now
	w.mu.Unlock()

	runID := uuid.NewString()[:8]
	w.log.Info("regenerating steering documents",
		zap.String("run", runID),
		zap.Int("changes", changed))

	if err := w.regenerate(ctx); err != nil {
		w.log.Error("regeneration failed", zap.String("run", runID), zap.Error(err))
		return
	}
	w.log.Info("regeneration complete", zap.String("run", runID))
}

// isRelevant reports whether a change to the path can affect the generated
// documents: the analyzer's manifest inputs, dotenv files, the README, or a
// source file under one of the watched directories.
func isRelevant(path string) bool {
	base := filepath.Base(path)
	switch base {
	case "package.json", "composer.json", "README.md":
		return true
	}
	if strings.HasPrefix(base, ".env") {
		return true
	}
	return sourceExts[filepath.Ext(base)]
}
