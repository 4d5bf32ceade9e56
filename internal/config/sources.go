package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Source is one file selected by an input together with its settings.
type Source struct {
	Path           string
	Hidden         []string
	CompileOptions []string
}

// Sources expands the input globs relative to root. Files are sorted within
// each input; a file matched by several inputs keeps the first one.
func (c *Config) Sources(root string) ([]Source, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var out []Source
	for i, in := range c.Inputs {
		var matches []string
		for _, pattern := range in.Include {
			found, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("input %d: include %q: %w", i, pattern, err)
			}
			matches = append(matches, found...)
		}
		slices.Sort(matches)
		matches = slices.Compact(matches)
		hidden := c.HiddenFor(in)
		for _, m := range matches {
			if excluded(in.Exclude, m) {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, Source{
				Path:           filepath.Join(root, filepath.FromSlash(m)),
				Hidden:         hidden,
				CompileOptions: append(slices.Clone(c.Parse.CompileOptions), in.CompileOptions...),
			})
		}
	}
	return out, nil
}

func excluded(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
