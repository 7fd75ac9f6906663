package walk

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pattern is a single compiled ignore-file line.
type pattern struct {
	glob     string
	negated  bool
	dirOnly  bool
	anchored bool
}

// ignoreMatcher accumulates ignore patterns discovered while walking a tree,
// honoring hierarchical .gitignore files (a nested .gitignore's patterns are
// scoped to its own subtree) plus one global ignore file. .git itself is
// always excluded by the walker directly, not via a pattern.
type ignoreMatcher struct {
	patterns []pattern
}

func newIgnoreMatcher() *ignoreMatcher { return &ignoreMatcher{} }

// loadGlobal loads the user's global gitignore, if configured the usual way
// ($XDG_CONFIG_HOME/git/ignore, falling back to ~/.config/git/ignore).
func (m *ignoreMatcher) loadGlobal() {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "git", "ignore"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "git", "ignore"))
	}
	for _, p := range candidates {
		m.loadFile(p, "")
	}
}

// loadFile loads one ignore file's patterns, scoped to scopeDir (a
// repo-relative directory; "" is the repo root). addLine rewrites a bare
// basename pattern to "**/name" and then prefixes every pattern with
// scopeDir (so "name" in sub/.gitignore becomes "sub/**/name"), which keeps
// it matching only within that subtree.
func (m *ignoreMatcher) loadFile(path, scopeDir string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.addLine(sc.Text(), scopeDir)
	}
}

func (m *ignoreMatcher) addLine(line, scopeDir string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	p := pattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	}
	if !p.anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}
	if scopeDir != "" {
		line = scopeDir + "/" + line
	}
	p.glob = line
	m.patterns = append(m.patterns, p)
}

// match reports whether relPath (forward-slash, repo-relative) should be
// ignored. Later patterns override earlier ones, matching gitignore's
// last-match-wins semantics, including negation.
func (m *ignoreMatcher) match(relPath string, isDir bool) bool {
	ignored := false
	for _, p := range m.patterns {
		if p.dirOnly && !isDir && !m.matchesAncestorDir(p.glob, relPath) {
			continue
		}
		if ok, _ := doublestar.Match(p.glob, relPath); ok {
			ignored = !p.negated
			continue
		}
		if !strings.HasSuffix(p.glob, "/**") {
			if ok, _ := doublestar.Match(p.glob+"/**", relPath); ok {
				ignored = !p.negated
			}
		}
	}
	return ignored
}

func (m *ignoreMatcher) matchesAncestorDir(glob, relPath string) bool {
	parts := strings.Split(relPath, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if ok, _ := doublestar.Match(glob, prefix); ok {
			return true
		}
	}
	return false
}
