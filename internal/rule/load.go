package rule

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/philjestin/ratchet/internal/model"
)

// regexFile is the on-disk schema for a rule under ratchets/regex/*.toml.
type regexFile struct {
	ID          string                 `toml:"id"`
	Description string                 `toml:"description"`
	Pattern     string                 `toml:"pattern"`
	Languages   []string               `toml:"languages"`
	Include     []string               `toml:"include-globs"`
	Exclude     []string               `toml:"exclude-globs"`
	Severity    string                 `toml:"severity"`
	Options     map[string]interface{} `toml:"options"`
}

// astFile is the on-disk schema for a rule under ratchets/ast/*.toml.
type astFile struct {
	ID          string                 `toml:"id"`
	Description string                 `toml:"description"`
	Query       string                 `toml:"query"`
	Language    string                 `toml:"language"`
	Include     []string               `toml:"include-globs"`
	Exclude     []string               `toml:"exclude-globs"`
	Severity    string                 `toml:"severity"`
	Options     map[string]interface{} `toml:"options"`
}

func parseRegexBytes(raw []byte, path string) (*Rule, error) {
	var f regexFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, &model.RuleMalformed{ID: model.RuleId(f.ID), Why: fmt.Sprintf("%s: %v", path, err)}
	}
	langs := make([]model.Language, 0, len(f.Languages))
	for _, l := range f.Languages {
		langs = append(langs, model.Language(l))
	}
	return &Rule{
		ID:           model.RuleId(f.ID),
		Description:  f.Description,
		Kind:         KindRegex,
		PatternSrc:   f.Pattern,
		Languages:    langs,
		IncludeGlobs: f.Include,
		ExcludeGlobs: f.Exclude,
		Severity:     f.Severity,
		Options:      f.Options,
	}, nil
}

func parseAstBytes(raw []byte, path string) (*Rule, error) {
	var f astFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, &model.RuleMalformed{ID: model.RuleId(f.ID), Why: fmt.Sprintf("%s: %v", path, err)}
	}
	return &Rule{
		ID:           model.RuleId(f.ID),
		Description:  f.Description,
		Kind:         KindAst,
		QuerySrc:     f.Query,
		Language:     model.Language(f.Language),
		IncludeGlobs: f.Include,
		ExcludeGlobs: f.Exclude,
		Severity:     f.Severity,
		Options:      f.Options,
	}, nil
}

// LoadRegexFile parses one regex rule TOML file from disk.
func LoadRegexFile(path string) (*Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseRegexBytes(raw, path)
}

// LoadAstFile parses one AST rule TOML file from disk.
func LoadAstFile(path string) (*Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseAstBytes(raw, path)
}
