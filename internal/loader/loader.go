// Package loader turns definition files into a resolved objects.Store.
//
// Files are discovered with doublestar globs, decoded in parallel and then
// applied to a fresh store on a single goroutine, kind by kind, so that every
// reference a record makes points at a kind that has already been created.
package loader

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/objstore/internal/config"
	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/objects"
)

// Options controls one load cycle
type Options struct {
	Root                    string
	Include                 []string
	Exclude                 []string
	Workers                 int // parallel decoders; 0 = runtime.NumCPU()
	LargeInstallationTweaks bool
}

// OptionsFromConfig copies the loader settings out of a configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Root:                    cfg.Loader.Root,
		Include:                 cfg.Include,
		Exclude:                 cfg.Exclude,
		Workers:                 cfg.Loader.Workers,
		LargeInstallationTweaks: cfg.Objects.LargeInstallationTweaks,
	}
}

// Report describes what a load cycle did
type Report struct {
	Files      []string
	Counts     objects.Counts // records seen per kind
	Created    objects.Counts // objects actually created per kind
	Rejected   int            // records or attachments that failed
	Duplicates int            // structurally duplicate dependencies skipped
	Errors     []error
	Duration   time.Duration
}

// Err returns the collected errors as one MultiError, or nil
func (r *Report) Err() error {
	return objerrors.NewMultiError(r.Errors).ErrOrNil()
}

// Fatal reports whether any collected error is an internal index failure
func (r *Report) Fatal() bool {
	for _, err := range r.Errors {
		var oe *objerrors.ObjectError
		if errors.As(err, &oe) && oe.IsFatal() {
			return true
		}
	}
	return false
}

// Load discovers, decodes and applies every definition file under
// opts.Root. Decode failures and rejected records are collected in the
// report; the returned error is set only when discovery fails or ctx is
// cancelled.
func Load(ctx context.Context, opts Options) (*objects.Store, *Report, error) {
	start := time.Now()

	paths, err := Discover(opts.Root, opts.Include, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	files, decodeErrs, err := decodeAll(ctx, paths, opts.Workers)
	if err != nil {
		return nil, nil, err
	}

	store, report := Build(files, opts.LargeInstallationTweaks)
	report.Files = paths
	report.Errors = append(decodeErrs, report.Errors...)
	report.Duration = time.Since(start)

	debug.LogLoad("loaded %d files: %d objects created, %d rejected in %v\n",
		len(paths), report.Created.Total(), report.Rejected, report.Duration)
	return store, report, nil
}

// decodeAll decodes paths with at most workers goroutines. The result keeps
// the order of paths; a file that fails to decode leaves a nil slot and an
// error in the returned list.
func decodeAll(ctx context.Context, paths []string, workers int) ([]*File, []error, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files := make([]*File, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := DecodeFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var decodeErrs []error
	for _, err := range errs {
		if err != nil {
			decodeErrs = append(decodeErrs, err)
		}
	}
	return files, decodeErrs, nil
}

// Build creates a store sized for files, applies every record and resolves
// the result. It always returns a usable store.
func Build(files []*File, largeInstallation bool) (*objects.Store, *Report) {
	report := &Report{Counts: counts(files)}
	store := objects.New(report.Counts, objects.WithLargeInstallationTweaks(largeInstallation))

	a := &applier{store: store, report: report}
	a.apply(files)

	if err := store.Resolve(); err != nil {
		var me *objerrors.MultiError
		if errors.As(err, &me) {
			for _, e := range me.Errors {
				a.fail(e)
			}
		} else {
			a.fail(err)
		}
	}

	sg := newSuggester(store)
	for i, err := range report.Errors {
		report.Errors[i] = sg.annotate(err)
	}
	return store, report
}
