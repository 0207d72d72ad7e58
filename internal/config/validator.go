package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

const maxWatchDebounceMs = 60_000

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateLoaderConfig(&cfg.Loader); err != nil {
		return objerrors.NewConfigError("loader", "", err)
	}

	if err := v.validateWatchConfig(&cfg.Watch); err != nil {
		return objerrors.NewConfigError("watch", "", err)
	}

	if err := v.validatePatterns(cfg.Include); err != nil {
		return objerrors.NewConfigError("include", "", err)
	}
	if err := v.validatePatterns(cfg.Exclude); err != nil {
		return objerrors.NewConfigError("exclude", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateLoaderConfig(loader *Loader) error {
	if loader.Root == "" {
		return errors.New("loader root cannot be empty")
	}

	// Workers: 0 means auto-detect (will be set by smart defaults)
	if loader.Workers < 0 {
		return fmt.Errorf("Workers cannot be negative, got %d", loader.Workers)
	}
	return nil
}

func (v *Validator) validateWatchConfig(watch *Watch) error {
	if watch.DebounceMs < 0 {
		return fmt.Errorf("DebounceMs cannot be negative, got %d", watch.DebounceMs)
	}
	if watch.DebounceMs > maxWatchDebounceMs {
		return fmt.Errorf("DebounceMs should not exceed %d, got %d", maxWatchDebounceMs, watch.DebounceMs)
	}
	return nil
}

func (v *Validator) validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// setSmartDefaults applies defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	// cores-1 leaves one core for the rest of the system
	if cfg.Loader.Workers == 0 {
		cfg.Loader.Workers = max(1, runtime.NumCPU()-1)
	}

	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = DefaultWatchDebounceMs
	}

	if len(cfg.Include) == 0 {
		cfg.Include = DefaultIncludes()
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
