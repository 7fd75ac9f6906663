// Package rule defines the polymorphic rule variant (regex vs. AST) and its
// single evaluation capability. Dispatch between the two bodies is static —
// there is no runtime plugin model.
package rule

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/philjestin/ratchet/internal/eval"
	"github.com/philjestin/ratchet/internal/globmatch"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/source"
)

// Kind tags which evaluation body a Rule carries.
type Kind int

const (
	KindRegex Kind = iota
	KindAst
)

// Rule is a tagged variant over a regex rule and an AST rule. Source fields
// (PatternSrc/QuerySrc) hold the uncompiled text; Compile fills the
// compiled* fields or returns a RuleMalformed error.
type Rule struct {
	ID          model.RuleId
	Description string
	Kind        Kind
	Severity    string
	Options     map[string]interface{}

	// RegexRule fields.
	PatternSrc string
	Languages  []model.Language // optional: empty means language-agnostic

	// AstRule fields.
	QuerySrc string
	Language model.Language // required

	IncludeGlobs []string
	ExcludeGlobs []string

	compiledPattern *regexp.Regexp
	compiledQuery   *sitter.Query
}

// Compile pre-compiles the rule's pattern or query. A compile failure
// returns RuleMalformed{id, why}.
func (r *Rule) Compile(cache *parse.Cache) error {
	if err := globmatch.Validate(r.IncludeGlobs); err != nil {
		return &model.RuleMalformed{ID: r.ID, Why: "bad include glob: " + err.Error()}
	}
	if err := globmatch.Validate(r.ExcludeGlobs); err != nil {
		return &model.RuleMalformed{ID: r.ID, Why: "bad exclude glob: " + err.Error()}
	}

	switch r.Kind {
	case KindRegex:
		pattern, err := regexp.Compile(r.PatternSrc)
		if err != nil {
			return &model.RuleMalformed{ID: r.ID, Why: err.Error()}
		}
		r.compiledPattern = pattern
	case KindAst:
		if r.Language == "" {
			return &model.RuleMalformed{ID: r.ID, Why: "ast rule requires a language"}
		}
		if !r.Language.Valid() {
			return &model.RuleMalformed{ID: r.ID, Why: "unknown language " + string(r.Language)}
		}
		query, err := eval.CompileQuery(cache, r.Language, r.QuerySrc)
		if err != nil {
			return &model.RuleMalformed{ID: r.ID, Why: err.Error()}
		}
		r.compiledQuery = query
	}
	return nil
}

// AppliesTo reports whether this rule's file-selectors admit fe: language
// scope (if any) and include/exclude globs.
func (r *Rule) AppliesTo(fe *source.FileEntry) bool {
	switch r.Kind {
	case KindAst:
		if !fe.HasLanguage || fe.Language != r.Language {
			return false
		}
	case KindRegex:
		if len(r.Languages) > 0 {
			if !fe.HasLanguage {
				return false
			}
			ok := false
			for _, l := range r.Languages {
				if l == fe.Language {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
	}
	if len(r.IncludeGlobs) > 0 && !globmatch.Any(r.IncludeGlobs, fe.Path) {
		return false
	}
	if len(r.ExcludeGlobs) > 0 && globmatch.Any(r.ExcludeGlobs, fe.Path) {
		return false
	}
	return true
}

// Evaluate runs the rule's compiled body against fe, dispatching statically
// on Kind.
func (r *Rule) Evaluate(fe *source.FileEntry, cache *parse.Cache) ([]eval.Match, error) {
	switch r.Kind {
	case KindRegex:
		return eval.Regex(r.compiledPattern, fe), nil
	case KindAst:
		return eval.AST(r.compiledQuery, r.Language, fe, cache)
	default:
		return nil, nil
	}
}
