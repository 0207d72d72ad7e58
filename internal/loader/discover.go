package loader

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/objstore/internal/debug"
	objerrors "github.com/standardbeagle/objstore/internal/errors"
)

// Discover expands the include globs under root and drops every path that
// matches an exclude glob. Paths are returned absolute, sorted and unique.
func Discover(root string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var rel []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, objerrors.NewConfigError("include", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || Excluded(m, exclude) {
				continue
			}
			seen[m] = true
			rel = append(rel, m)
		}
	}

	sort.Strings(rel)
	paths := make([]string, len(rel))
	for i, r := range rel {
		paths[i] = filepath.Join(root, filepath.FromSlash(r))
	}
	debug.LogLoad("discovered %d definition files under %s\n", len(paths), root)
	return paths, nil
}

// Matches reports whether a slash-separated path relative to the root is a
// definition file under the given globs
func Matches(rel string, include, exclude []string) bool {
	if Excluded(rel, exclude) {
		return false
	}
	for _, pattern := range include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Excluded reports whether a slash-separated path relative to the root
// matches any exclude glob
func Excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			// a bad pattern shouldn't break discovery
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
