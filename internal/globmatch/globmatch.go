// Package globmatch matches repo-relative paths against doublestar glob
// patterns, shared by rule file-selectors and the workspace include/exclude
// lists in ratchet.toml.
package globmatch

import "github.com/bmatcuk/doublestar/v4"

// Any reports whether path matches any of patterns. Invalid patterns never
// match (they're rejected at config/rule compile time, not here).
func Any(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate reports whether every pattern in patterns compiles.
func Validate(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := doublestar.Match(pattern, ""); err != nil {
			return err
		}
	}
	return nil
}
