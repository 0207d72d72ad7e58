package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/standardbeagle/objstore/internal/config"
	"github.com/standardbeagle/objstore/internal/debug"
	"github.com/standardbeagle/objstore/internal/loader"
	"github.com/standardbeagle/objstore/internal/metrics"
	"github.com/standardbeagle/objstore/internal/objcache"
	"github.com/standardbeagle/objstore/internal/objects"
	"github.com/standardbeagle/objstore/internal/watch"
	"github.com/standardbeagle/objstore/pkg/pathutil"

	"github.com/urfave/cli/v2"
)

// CheckReport is the JSON form of a check run
type CheckReport struct {
	Timestamp  time.Time      `json:"timestamp"`
	Root       string         `json:"root"`
	Files      []string       `json:"files"`
	Objects    int            `json:"objects"`
	Created    objects.Counts `json:"created"`
	Rejected   int            `json:"rejected"`
	Duplicates int            `json:"duplicates"`
	Fatal      bool           `json:"fatal"`
	Errors     []string       `json:"errors"`
	DurationMs int64          `json:"duration_ms"`
}

// loadStore loads the configured definitions. The caller owns the store.
func loadStore(c *cli.Context) (*config.Config, *objects.Store, *loader.Report, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, nil, nil, err
	}
	store, report, err := loader.Load(c.Context, loader.OptionsFromConfig(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load definitions from %s: %w", cfg.Loader.Root, err)
	}
	return cfg, store, report, nil
}

// errorExit turns a report with errors into a non-zero exit. Index failures
// exit 2, everything else 1.
func errorExit(report *loader.Report) error {
	if len(report.Errors) == 0 {
		return nil
	}
	if report.Fatal() {
		return cli.Exit(debug.Fatal("index failure with %d error(s) in object definitions", len(report.Errors)).Error(), 2)
	}
	return cli.Exit(fmt.Sprintf("%d error(s) in object definitions", len(report.Errors)), 1)
}

func printSummary(w io.Writer, report *loader.Report) {
	fmt.Fprintf(w, "Loaded %d objects from %d files in %v\n",
		report.Created.Total(), len(report.Files), report.Duration.Round(time.Millisecond))
	if report.Rejected > 0 || report.Duplicates > 0 {
		fmt.Fprintf(w, "  rejected: %d, duplicate dependencies skipped: %d\n", report.Rejected, report.Duplicates)
	}
}

func printErrors(w io.Writer, report *loader.Report) {
	for _, err := range report.Errors {
		fmt.Fprintf(w, "  %v\n", err)
	}
}

// loadCommand loads, resolves and writes the object cache
func loadCommand(c *cli.Context) error {
	cfg, store, report, err := loadStore(c)
	if err != nil {
		return err
	}
	defer store.Free()

	printSummary(c.App.Writer, report)
	if exit := errorExit(report); exit != nil {
		printErrors(c.App.ErrWriter, report)
		return exit
	}

	cacheFile := cfg.Objects.CacheFile
	if objcache.Skip(cacheFile) {
		fmt.Fprintln(c.App.Writer, "Object cache disabled")
		return nil
	}
	if err := objcache.WriteFile(cacheFile, store); err != nil {
		return fmt.Errorf("failed to write object cache: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Wrote object cache to %s\n", cacheFile)
	return nil
}

// checkCommand reports every load and resolve error without writing a cache
func checkCommand(c *cli.Context) error {
	cfg, store, report, err := loadStore(c)
	if err != nil {
		return err
	}
	defer store.Free()

	if c.Bool("json") {
		out := CheckReport{
			Timestamp:  time.Now(),
			Root:       cfg.Loader.Root,
			Files:      pathutil.ToRelativeAll(report.Files, cfg.Loader.Root),
			Objects:    report.Created.Total(),
			Created:    report.Created,
			Rejected:   report.Rejected,
			Duplicates: report.Duplicates,
			Fatal:      report.Fatal(),
			Errors:     make([]string, 0, len(report.Errors)),
			DurationMs: report.Duration.Milliseconds(),
		}
		for _, e := range report.Errors {
			out.Errors = append(out.Errors, e.Error())
		}
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return err
		}
		return errorExit(report)
	}

	printSummary(c.App.Writer, report)
	if len(report.Errors) == 0 {
		fmt.Fprintln(c.App.Writer, "No errors found")
		return nil
	}
	printErrors(c.App.Writer, report)
	return errorExit(report)
}

// statsCommand prints object statistics for the loaded store
func statsCommand(c *cli.Context) error {
	_, store, report, err := loadStore(c)
	if err != nil {
		return err
	}
	defer store.Free()

	if n := len(report.Errors); n > 0 {
		fmt.Fprintf(c.App.ErrWriter, "Warning: %d error(s) while loading; statistics cover what loaded\n", n)
	}

	stats := metrics.Compute(store)
	if c.Bool("json") {
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats.FormatAsJSON())
	}
	fmt.Fprint(c.App.Writer, stats.FormatAsText())
	return nil
}

// watchCommand publishes a store and reloads it on every definition change
// until the context is cancelled or a termination signal arrives
func watchCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if c.IsSet("debounce") {
		cfg.Watch.DebounceMs = c.Int("debounce")
		if err := config.ValidateConfig(cfg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := c.App.Writer
	reloader := watch.NewReloader(loader.OptionsFromConfig(cfg), cfg.Objects.CacheFile)
	defer reloader.Close()
	reloader.OnReport = func(report *loader.Report) {
		printSummary(out, report)
		printErrors(out, report)
	}

	// a broken initial load still watches so the fix gets picked up
	if _, err := reloader.Reload(ctx); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Initial load failed: %v\n", err)
	}

	reload := reloader.ReloadFunc()
	w, err := watch.New(cfg, func(ctx context.Context, changed []string) error {
		fmt.Fprintf(out, "Changed: %s\n", strings.Join(pathutil.ToRelativeAll(changed, cfg.Loader.Root), ", "))
		return reload(ctx, changed)
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s (debounce %dms)\n", cfg.Loader.Root, cfg.Watch.DebounceMs)

	<-ctx.Done()
	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	stats := w.GetStats()
	fmt.Fprintf(out, "Stopped after %d reloads (%d errors)\n", stats.Reloads, stats.ErrorCount)
	return nil
}
