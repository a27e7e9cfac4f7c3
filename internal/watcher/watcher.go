// Package watcher invalidates cached project indexes when record files
// change on disk.
//
// It watches a single flat directory of <project-id>.json files, the
// layout the file store uses. Events for one project are debounced so an
// editor's save burst evicts once, not per write.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/showfolio/showmcp/internal/store"
)

// CacheEvictor receives eviction requests for changed projects.
// *index.Indexer satisfies this.
type CacheEvictor interface {
	ClearProjectCache(projectID string)
}

// Options configures the watcher.
type Options struct {
	// Debounce is the quiet period before an eviction fires.
	// Default: 500ms.
	Debounce time.Duration

	// Logger receives watch events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Watcher evicts cache entries for projects whose record files change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	evictor  CacheEvictor
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	pending  map[string]*time.Timer
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a watcher that evicts through the given evictor.
func New(evictor CacheEvictor, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		evictor:  evictor,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		pending:  make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start watches dir until the context is cancelled or Stop is called.
// It blocks; run it in a goroutine.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve watch dir: %w", err)
	}
	if err := w.fsw.Add(absDir); err != nil {
		return fmt.Errorf("watch %s: %w", absDir, err)
	}

	w.logger.Info("watching record directory", "dir", absDir, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	projectID := store.ProjectIDFromPath(event.Name)
	if projectID == "" {
		return
	}
	w.scheduleEviction(projectID)
}

// scheduleEviction (re)arms the debounce timer for one project.
func (w *Watcher) scheduleEviction(projectID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[projectID]; ok {
		timer.Stop()
	}
	w.pending[projectID] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, projectID)
		w.mu.Unlock()

		w.evictor.ClearProjectCache(projectID)
		w.logger.Info("evicted stale index", "project_id", projectID)
	})
}

// Stop stops the watcher and cancels pending evictions.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)

		w.mu.Lock()
		for id, timer := range w.pending {
			timer.Stop()
			delete(w.pending, id)
		}
		w.mu.Unlock()

		err = w.fsw.Close()
	})
	return err
}
