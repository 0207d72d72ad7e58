// Package watch reloads the object store when definition files change.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/objstore/internal/config"
	"github.com/standardbeagle/objstore/internal/debug"
	"github.com/standardbeagle/objstore/internal/loader"
)

// EventType is the kind of change seen for a definition file
type EventType int

const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventWrite:
		return "write"
	case EventRemove:
		return "remove"
	case EventRename:
		return "rename"
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// ReloadFunc is called once per quiet period with the definition files that
// changed, sorted
type ReloadFunc func(ctx context.Context, changed []string) error

// Watcher monitors the definition tree and calls a ReloadFunc after events
// have settled for the debounce interval
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	include  []string
	exclude  []string
	debounce time.Duration
	reload   ReloadFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats   Stats
	statsMu sync.RWMutex
}

// Stats contains statistics about watch operations
type Stats struct {
	EventsProcessed int64
	Reloads         int64
	ErrorCount      int64
	LastReloadTime  time.Time
	IsActive        bool
}

// New creates a watcher over cfg.Loader.Root using the configured globs
func New(cfg *config.Config, reload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:  fw,
		root:     cfg.Loader.Root,
		include:  cfg.Include,
		exclude:  cfg.Exclude,
		debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		reload:   reload,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start adds watches for every directory under the root and begins
// processing events
func (w *Watcher) Start() error {
	debug.LogWatch("Starting watcher for directory: %s\n", w.root)

	if err := w.addWatches(w.root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", w.root, err)
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop ends event processing and waits for an in-flight reload to return.
// Changes still inside the debounce window are dropped.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	debug.LogWatch("Watcher stopped\n")
	return err
}

// addWatches recursively adds watches to every directory not excluded
func (w *Watcher) addWatches(root string) error {
	// symlink cycles would otherwise loop forever
	visited := make(map[string]bool)

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[realPath] {
			return filepath.SkipDir
		}
		visited[realPath] = true

		if path != root && w.ignoreDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) ignoreDir(path string) bool {
	rel, ok := w.rel(path)
	return !ok || loader.Excluded(rel, w.exclude) || loader.Excluded(rel+"/", w.exclude)
}

func (w *Watcher) isDefinition(path string) bool {
	rel, ok := w.rel(path)
	return ok && loader.Matches(rel, w.include, w.exclude)
}

// processEvents collects relevant events and runs the reload once the
// debounce timer fires without further events
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	pending := make(map[string]EventType)
	// armed by the first relevant event
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event, pending) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
			w.incrementStats(0, 0, 1)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path, ev := range pending {
				debug.LogWatch("%s %s\n", ev, path)
				changed = append(changed, path)
			}
			sort.Strings(changed)
			clear(pending)
			w.runReload(changed)
		}
	}
}

// handleEvent records a definition file event in pending and reports
// whether the debounce timer should restart
func (w *Watcher) handleEvent(event fsnotify.Event, pending map[string]EventType) bool {
	path := event.Name

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		if event.Op&fsnotify.Create != 0 && !w.ignoreDir(path) {
			// files may already exist inside a directory moved into place
			if err := w.addWatches(path); err != nil {
				log.Printf("Warning: failed to watch new directory %s: %v", path, err)
			}
		}
		return false
	}

	if !w.isDefinition(path) {
		return false
	}

	var ev EventType
	switch {
	case event.Op&fsnotify.Create != 0:
		ev = EventCreate
	case event.Op&fsnotify.Write != 0:
		ev = EventWrite
	case event.Op&fsnotify.Remove != 0:
		ev = EventRemove
	case event.Op&fsnotify.Rename != 0:
		ev = EventRename
	default:
		return false
	}

	pending[path] = ev
	w.incrementStats(1, 0, 0)
	return true
}

func (w *Watcher) runReload(changed []string) {
	start := time.Now()
	debug.LogWatch("Reloading after %d changed files\n", len(changed))

	if err := w.reload(w.ctx, changed); err != nil {
		log.Printf("Reload failed: %v", err)
		w.incrementStats(0, 1, 1)
		return
	}
	w.incrementStats(0, 1, 0)
	debug.LogWatch("Reload finished in %v\n", time.Since(start))
}

func (w *Watcher) incrementStats(events, reloads, errors int64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.stats.EventsProcessed += events
	w.stats.Reloads += reloads
	w.stats.ErrorCount += errors
	if reloads > 0 {
		w.stats.LastReloadTime = time.Now()
	}
}

// GetStats returns current watch statistics
func (w *Watcher) GetStats() Stats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	s := w.stats
	s.IsActive = w.ctx.Err() == nil
	return s
}
