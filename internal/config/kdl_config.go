package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// LoadKDL loads dir/.objstore.kdl. It returns nil, nil when the file does
// not exist.
func LoadKDL(dir string) (*Config, error) {
	kdlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}
	return loadFile(kdlPath)
}

// LoadFile parses the KDL configuration at path. A relative loader root is
// resolved against the directory holding the file.
func LoadFile(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	resolveCacheFile(cfg)
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, objerrors.NewFileError("read", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, objerrors.NewConfigError(path, "", err)
	}

	dir := filepath.Dir(path)
	switch {
	case cfg.Loader.Root == "":
		cfg.Loader.Root = absOrSelf(dir)
	case !filepath.IsAbs(cfg.Loader.Root):
		cfg.Loader.Root = filepath.Clean(filepath.Join(absOrSelf(dir), cfg.Loader.Root))
	}
	return cfg, nil
}

// resolveCacheFile anchors a relative cache path at the loader root
func resolveCacheFile(cfg *Config) {
	if cf := cfg.Objects.CacheFile; cf != "" && cf != os.DevNull && !filepath.IsAbs(cf) {
		cfg.Objects.CacheFile = filepath.Join(cfg.Loader.Root, cf)
	}
}

// parseKDL reads a configuration document on top of the defaults. The
// include list starts empty so that a merge can tell whether the file set
// one.
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	cfg.Loader.Root = ""
	cfg.Include = []string{}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "objects":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "cache_file":
					if s, ok := firstStringArg(cn); ok {
						cfg.Objects.CacheFile = s
					}
				case "large_installation_tweaks":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Objects.LargeInstallationTweaks = b
					}
				}
			}
		case "loader":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Loader.Root = v })
				if nodeName(cn) == "workers" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Loader.Workers = v
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			// an exclude block replaces the defaults
			cfg.Exclude = collectStringArgs(n)
		default:
			log.Printf("WARNING: unknown node '%s' in KDL config", nodeName(n))
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		log.Printf("WARNING: invalid integer value for '%s' in KDL config, got %T", nodeName(n), v)
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs accepts both the inline form (include "a" "b") and the
// block form (exclude { "a"; "b" }), where each child node is named by the
// string itself.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
