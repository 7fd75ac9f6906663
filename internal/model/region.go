package model

import (
	"fmt"
	"path"
	"strings"
)

// RootRegion is the implicit repo-root region, always present with an
// implicit budget of 0 when not otherwise listed.
const RootRegion = "."

// NormalizeRegion cleans a repo-relative directory path into the canonical
// forward-slash form used throughout the counts document: no trailing
// slash, no "..", and "." denotes the repo root.
func NormalizeRegion(p string) (string, error) {
	if p == "" {
		p = RootRegion
	}
	p = strings.ReplaceAll(p, "\\", "/")
	clean := path.Clean(p)
	if clean == "." {
		return RootRegion, nil
	}
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("region path %q must be repo-relative and not escape the repo root", p)
	}
	return clean, nil
}

// RegionComponents splits a normalized region into its path components.
// The root region has zero components.
func RegionComponents(region string) []string {
	if region == RootRegion || region == "" {
		return nil
	}
	return strings.Split(region, "/")
}

// DirComponents returns the path components of the directory containing a
// repo-relative file path, suitable for longest-prefix region matching.
func DirComponents(filePath string) []string {
	filePath = strings.ReplaceAll(filePath, "\\", "/")
	dir := path.Dir(path.Clean(filePath))
	if dir == "." {
		return nil
	}
	return strings.Split(dir, "/")
}

// IsPrefixOf reports whether region's components are a component-wise
// prefix of dir's components. An empty region (the root) is a prefix of
// everything. Exact component-wise comparison only: "src/lega" is never a
// prefix of "src/legacy" even though the strings share a prefix.
func IsPrefixOf(region, dir []string) bool {
	if len(region) > len(dir) {
		return false
	}
	for i, c := range region {
		if dir[i] != c {
			return false
		}
	}
	return true
}
