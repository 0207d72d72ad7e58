package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/standardbeagle/objstore/internal/config"
	"github.com/standardbeagle/objstore/internal/debug"
	"github.com/standardbeagle/objstore/internal/version"

	"github.com/urfave/cli/v2"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath := c.String("config"); configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		dir := c.String("root")
		if dir == "" {
			dir = "."
		}
		cfg, err = config.Load(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config for %s: %w", dir, err)
		}
	}

	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Loader.Root = absRoot
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if c.IsSet("cache-file") {
		cacheFile := c.String("cache-file")
		if cacheFile != "" && cacheFile != os.DevNull {
			if cacheFile, err = filepath.Abs(cacheFile); err != nil {
				return nil, fmt.Errorf("failed to resolve cache file %q: %w", c.String("cache-file"), err)
			}
		}
		cfg.Objects.CacheFile = cacheFile
	}
	if c.IsSet("large-installation") {
		cfg.Objects.LargeInstallationTweaks = c.Bool("large-installation")
	}
	if c.IsSet("workers") {
		cfg.Loader.Workers = c.Int("workers")
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "objstore",
		Usage:                  "Load, resolve and cache monitoring object definitions",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		// main decides the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: .objstore.kdl in the root, merged over ~/.objstore.kdl)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory holding the definition files (overrides config)",
			},
			&cli.StringFlag{
				Name:  "cache-file",
				Usage: "Object cache file to write; empty or " + os.DevNull + " disables it",
			},
			&cli.BoolFlag{
				Name:  "large-installation",
				Usage: "Keep group members in insertion order instead of sorting them",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Definition file glob patterns (e.g., --include 'hosts/**/*.yaml')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (e.g., --exclude '**/disabled/**')",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel file decoders (0 = number of CPUs)",
			},
			// no -v alias: the built-in --version flag owns it
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Write debug output to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Write debug output to a log file in the temp directory",
			},
		},
		Before: func(c *cli.Context) error {
			switch {
			case c.Bool("debug-log"):
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.ErrWriter, "Debug log: %s\n", path)
				debug.SetEnabled(true)
			case c.Bool("verbose"):
				debug.SetDebugOutput(c.App.ErrWriter)
				debug.SetEnabled(true)
			}
			debug.Printf("%s\n", version.FullInfo())
			return nil
		},
		After: func(c *cli.Context) error {
			if c.Bool("verbose") || c.Bool("debug-log") {
				debug.SetEnabled(false)
			}
			if c.Bool("verbose") {
				debug.SetDebugOutput(nil)
			}
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:    "load",
				Aliases: []string{"l"},
				Usage:   "Load and resolve definitions, then write the object cache",
				Action:  loadCommand,
			},
			{
				Name:  "check",
				Usage: "Load and resolve definitions and report every error",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: checkCommand,
			},
			{
				Name:  "stats",
				Usage: "Show object counts and topology statistics",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: statsCommand,
			},
			{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Reload definitions whenever they change, until interrupted",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "debounce",
						Usage: "Quiet period in milliseconds before a reload (overrides config)",
					},
				},
				Action: watchCommand,
			},
			{
				Name:  "version",
				Usage: "Show detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
