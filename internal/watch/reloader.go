package watch

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/objstore/internal/debug"
	"github.com/standardbeagle/objstore/internal/loader"
	"github.com/standardbeagle/objstore/internal/objcache"
	"github.com/standardbeagle/objstore/internal/objects"
)

// Reloader owns the published store. A reload builds a complete new store
// and only replaces the published one when the new store loaded cleanly.
// A published store is never modified or freed afterwards: readers that
// still hold a replaced store keep a consistent view, and the garbage
// collector reclaims it once they drop it. Only a rejected store, which was
// never published, is torn down with Free.
type Reloader struct {
	opts      loader.Options
	cacheFile string

	mu      sync.Mutex // serialises reloads
	current atomic.Pointer[objects.Store]

	// OnReport, when set, receives the report of every load attempt
	OnReport func(*loader.Report)
}

// NewReloader creates a reloader that loads with opts and rewrites cacheFile
// after each successful swap
func NewReloader(opts loader.Options, cacheFile string) *Reloader {
	return &Reloader{opts: opts, cacheFile: cacheFile}
}

// Store returns the published store, or nil before the first good load.
// The returned store stays intact for as long as the caller holds it, even
// across later reloads and Close.
func (r *Reloader) Store() *objects.Store {
	return r.current.Load()
}

// Reload loads the definitions again. It returns the load report; the error
// is set when the load could not run or produced errors, in which case the
// previously published store stays in place.
func (r *Reloader) Reload(ctx context.Context) (*loader.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, report, err := loader.Load(ctx, r.opts)
	if err != nil {
		return nil, err
	}
	if r.OnReport != nil {
		r.OnReport(report)
	}
	if err := report.Err(); err != nil {
		stats := next.Free()
		debug.LogWatch("discarded store with errors (%d objects freed)\n", stats.Objects)
		return report, err
	}

	if err := objcache.WriteFile(r.cacheFile, next); err != nil {
		// the store itself is good; a stale cache file is not fatal
		log.Printf("Warning: failed to write object cache: %v", err)
	}

	if prev := r.current.Swap(next); prev != nil {
		debug.LogWatch("replaced store of %d objects with %d objects\n",
			prev.Counts().Total(), next.Counts().Total())
	}
	return report, nil
}

// ReloadFunc adapts the reloader to a Watcher callback
func (r *Reloader) ReloadFunc() ReloadFunc {
	return func(ctx context.Context, _ []string) error {
		_, err := r.Reload(ctx)
		return err
	}
}

// Close unpublishes the current store. Readers holding it are unaffected.
func (r *Reloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.Store(nil)
}
