package rule

import "github.com/philjestin/ratchet/internal/model"

// Validate checks that the id is well-formed and at least one file-selector
// constrains scope (language or include glob). Pattern/query compilation is
// checked separately by Compile.
func (r *Rule) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return &model.RuleMalformed{ID: r.ID, Why: err.Error()}
	}
	switch r.Kind {
	case KindAst:
		if r.Language == "" {
			return &model.RuleMalformed{ID: r.ID, Why: "ast rule requires a language"}
		}
	case KindRegex:
		if len(r.Languages) == 0 && len(r.IncludeGlobs) == 0 {
			return &model.RuleMalformed{ID: r.ID, Why: "regex rule needs at least one file-selector (languages or include globs)"}
		}
	}
	return nil
}
