package extension

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tabhost/tabhost/engine/core"
)

// DefaultExcludes filters out common editor droppings from manifest
// discovery.
var DefaultExcludes = []string{
	"**/.#*",
	"**/*~",
	"**/*.bak",
	"**/*.swp",
	"**/*.tmp",
}

// FileDiscoverer finds extension manifest files under a root.
type FileDiscoverer interface {
	Discover(includes, excludes []string) ([]string, error)
}

type fsDiscoverer struct {
	root string
}

// NewFileDiscoverer creates a filesystem-backed discoverer rooted at root.
func NewFileDiscoverer(root string) FileDiscoverer {
	return &fsDiscoverer{root: root}
}

// Discover returns the files matching any include pattern and no exclude
// pattern, sorted for deterministic load order.
func (d *fsDiscoverer) Discover(includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		return []string{}, nil
	}
	discovered := make(map[string]bool)
	for _, pattern := range includes {
		if err := d.validatePattern(pattern); err != nil {
			return nil, err
		}
		matches, err := doublestar.FilepathGlob(filepath.Join(d.root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(d.root, match)
			if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
				return nil, core.NewError(nil, "PATH_ESCAPE_ATTEMPT", map[string]any{
					"file": match,
					"root": d.root,
				})
			}
			discovered[match] = true
		}
	}
	files := make([]string, 0, len(discovered))
	for file := range discovered {
		if d.excluded(file, excludes) {
			continue
		}
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

// validatePattern blocks traversal and absolute-path injections.
func (d *fsDiscoverer) validatePattern(pattern string) error {
	clean := filepath.Clean(pattern)
	if filepath.IsAbs(clean) {
		return core.NewError(nil, "INVALID_PATTERN", map[string]any{
			"pattern": pattern,
			"reason":  "absolute paths not allowed",
		})
	}
	if slices.Contains(strings.Split(clean, string(filepath.Separator)), "..") {
		return core.NewError(nil, "INVALID_PATTERN", map[string]any{
			"pattern": pattern,
			"reason":  "parent directory references not allowed",
		})
	}
	return nil
}

func (d *fsDiscoverer) excluded(file string, excludes []string) bool {
	rel, err := filepath.Rel(d.root, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(file)
	patterns := make([]string, 0, len(DefaultExcludes)+len(excludes))
	patterns = append(patterns, DefaultExcludes...)
	patterns = append(patterns, excludes...)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// Bare-name patterns like "*.bak" should match anywhere in the tree.
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
