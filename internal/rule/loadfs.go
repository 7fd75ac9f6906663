package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// loadFS loads every *.toml rule under regexDir and astDir of fsys,
// sorted by filename for deterministic registry construction. fsys may be
// an embed.FS (embedded rules) or an os.DirFS (filesystem builtin mirror /
// user rules).
func loadFS(fsys fs.FS, regexDir, astDir string) ([]*Rule, error) {
	var rules []*Rule

	regexRules, err := loadDirFS(fsys, regexDir, parseRegexBytes)
	if err != nil {
		return nil, err
	}
	rules = append(rules, regexRules...)

	astRules, err := loadDirFS(fsys, astDir, parseAstBytes)
	if err != nil {
		return nil, err
	}
	rules = append(rules, astRules...)

	return rules, nil
}

func loadDirFS(fsys fs.FS, dir string, parse func([]byte, string) (*Rule, error)) ([]*Rule, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rule dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	rules := make([]*Rule, 0, len(names))
	for _, name := range names {
		p := dir + "/" + name
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		r, err := parse(raw, p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// LoadDir loads regex and AST rules from <dir>/regex and <dir>/ast on disk
// (the filesystem builtin mirror, or a user's ratchets/ directory).
func LoadDir(dir string) ([]*Rule, error) {
	return loadFS(os.DirFS(dir), "regex", "ast")
}
