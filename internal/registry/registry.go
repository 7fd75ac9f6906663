// Package registry builds the active rule set: embedded rules overridden by
// a filesystem builtin mirror, overridden by user rules, then filtered by
// config (explicit disable / option overrides) and by configured language.
package registry

import (
	"sort"

	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/ratchetcfg"
	"github.com/philjestin/ratchet/internal/rule"
)

// Options controls where the builtin mirror and user rules are looked up.
type Options struct {
	// BuiltinDir, if non-empty, is an on-disk mirror of the embedded rule
	// tree (<dir>/regex, <dir>/ast) that lets a developer override a
	// built-in rule without rebuilding the binary.
	BuiltinDir string
	// UserDir is the repo's ratchets/ directory (<dir>/regex, <dir>/ast).
	UserDir string
}

// Build loads rules in the strict order embedded < builtin-on-disk < user
// (later entries override earlier ones by id), then applies the config
// filter and the language filter, and returns the deduplicated active set.
func Build(cfg ratchetcfg.Config, opts Options, cache *parse.Cache) ([]*rule.Rule, error) {
	byID := map[model.RuleId]*rule.Rule{}
	order := []model.RuleId{}

	apply := func(rules []*rule.Rule) {
		for _, r := range rules {
			if _, exists := byID[r.ID]; !exists {
				order = append(order, r.ID)
			}
			byID[r.ID] = r
		}
	}

	embedded, err := rule.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	apply(embedded)

	if opts.BuiltinDir != "" {
		builtin, err := rule.LoadDir(opts.BuiltinDir)
		if err != nil {
			return nil, err
		}
		apply(builtin)
	}

	if opts.UserDir != "" {
		user, err := rule.LoadDir(opts.UserDir)
		if err != nil {
			return nil, err
		}
		apply(user)
	}

	configured := make(map[model.Language]struct{}, len(cfg.Ratchet.Languages))
	for _, l := range cfg.Languages() {
		configured[l] = struct{}{}
	}

	active := make([]*rule.Rule, 0, len(order))
	for _, id := range order {
		r := byID[id]

		setting := cfg.SettingFor(id)
		if setting.Disabled {
			continue
		}
		if setting.Options != nil {
			applyOptions(r, setting.Options)
		}

		if len(configured) > 0 && !languageFilterPasses(r, configured) {
			continue
		}

		if err := r.Validate(); err != nil {
			return nil, err
		}
		if err := r.Compile(cache); err != nil {
			return nil, err
		}
		active = append(active, r)
	}

	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

// languageFilterPasses reports whether r's required languages intersect the
// configured language set. A regex rule with no declared languages is
// language-agnostic and always passes; an AST rule's single required
// language must be configured.
func languageFilterPasses(r *rule.Rule, configured map[model.Language]struct{}) bool {
	switch r.Kind {
	case rule.KindAst:
		_, ok := configured[r.Language]
		return ok
	case rule.KindRegex:
		if len(r.Languages) == 0 {
			return true
		}
		for _, l := range r.Languages {
			if _, ok := configured[l]; ok {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func applyOptions(r *rule.Rule, options map[string]interface{}) {
	if r.Options == nil {
		r.Options = map[string]interface{}{}
	}
	for k, v := range options {
		r.Options[k] = v
	}
	if sev, ok := options["severity"].(string); ok {
		r.Severity = sev
	}
}

// ByID indexes rules by id for lookup.
func ByID(rules []*rule.Rule) map[model.RuleId]*rule.Rule {
	out := make(map[model.RuleId]*rule.Rule, len(rules))
	for _, r := range rules {
		out[r.ID] = r
	}
	return out
}
