package config

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the per-directory configuration file
const ConfigFileName = ".objstore.kdl"

const (
	DefaultCacheFile       = "objects.cache"
	DefaultWatchDebounceMs = 300
)

type Config struct {
	Version int
	Objects Objects
	Loader  Loader
	Watch   Watch
	Include []string // definition file globs, relative to Loader.Root
	Exclude []string
}

type Objects struct {
	CacheFile               string // "" or os.DevNull disables the object cache
	LargeInstallationTweaks bool   // keep group members in insertion order
}

type Loader struct {
	Root    string // directory the include globs are matched under
	Workers int    // parallel file decoders; 0 = auto-detect
}

type Watch struct {
	Enabled    bool
	DebounceMs int // quiet period before a reload runs
}

// Load reads the configuration for dir: the global ~/.objstore.kdl is the
// base and dir/.objstore.kdl overrides it. Without either file the defaults
// are returned.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	projectConfig, err := LoadKDL(dir)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		cfg = baseConfig
		cfg.Loader.Root = absOrSelf(dir)
	default:
		cfg = Default()
		cfg.Loader.Root = absOrSelf(dir)
	}

	// no include list anywhere means the default definition extensions
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultIncludes()
	}
	resolveCacheFile(cfg)
	return cfg, nil
}

// Default returns the built-in configuration rooted at the working directory
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		Version: 1,
		Objects: Objects{
			CacheFile: DefaultCacheFile,
		},
		Loader: Loader{
			Root:    cwd,
			Workers: 0,
		},
		Watch: Watch{
			Enabled:    false,
			DebounceMs: DefaultWatchDebounceMs,
		},
		Include: DefaultIncludes(),
		Exclude: []string{
			"**/.git/**",
			"**/.*/**",
			"**/*~",
			"**/*.swp",
		},
	}
}

// DefaultIncludes matches every definition file extension the loader reads
func DefaultIncludes() []string {
	return []string{"**/*.yaml", "**/*.yml", "**/*.toml"}
}

// mergeConfigs merges a base config with a project config.
// Project config takes precedence, but base exclusions are preserved.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		seen := make(map[string]bool, len(base.Exclude)+len(project.Exclude))
		merged.Exclude = make([]string, 0, len(base.Exclude)+len(project.Exclude))
		for _, list := range [][]string{base.Exclude, project.Exclude} {
			for _, pattern := range list {
				if !seen[pattern] {
					seen[pattern] = true
					merged.Exclude = append(merged.Exclude, pattern)
				}
			}
		}
	}

	// project includes replace the base list when given
	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}

	return &merged
}

func absOrSelf(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
