// Package discovery finds the documents to scan. Patterns use doublestar
// globs, so `**/*.md` walks the whole tree under the project root.
package discovery

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zolinthecow/doctests/internal/apperror"
)

// FindDocs returns the paths (relative to root) of every file matching any of
// the patterns, deduplicated and sorted for a stable scan order.
func FindDocs(root string, patterns []string) ([]string, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, apperror.NotFound("project root", root)
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var docs []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, apperror.ValidationFailed("docs",
				fmt.Sprintf("bad glob pattern %q: %v", pattern, err))
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			docs = append(docs, m)
		}
	}

	sort.Strings(docs)
	return docs, nil
}
