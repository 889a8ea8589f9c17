// Package shared provides small helpers used across packages.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizeComponentName lowercases a component name and replaces
// underscores and spaces with hyphens.
func NormalizeComponentName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", " ", "-")
	return replacer.Replace(lower)
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// UniquePaths cleans paths and drops empty entries and duplicates while
// keeping the first occurrence's position.
func UniquePaths(paths []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		cleaned := filepath.Clean(path)
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
