// Package ratchetcfg models ratchet.toml: the workspace-wide configuration
// viper loads and merges with flags and RATCHET_*-prefixed environment
// overrides.
package ratchetcfg

import "github.com/philjestin/ratchet/internal/model"

// Config mirrors what viper unmarshals from ratchet.toml.
type Config struct {
	Ratchet RatchetSection         `mapstructure:"ratchet"`
	Rules   map[string]interface{} `mapstructure:"rules"`
	Output  OutputSection          `mapstructure:"output"`
}

// RatchetSection is the [ratchet] table: workspace version, configured
// languages, and global include/exclude globs applied on top of each rule's
// own selectors.
type RatchetSection struct {
	Version   string   `mapstructure:"version"`
	Languages []string `mapstructure:"languages"`
	Include   []string `mapstructure:"include"`
	Exclude   []string `mapstructure:"exclude"`
}

// OutputSection is the [output] table.
type OutputSection struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// Languages converts the configured language strings into model.Language,
// ignoring ones that aren't part of the known enumeration (registry
// building is where an explicitly-referenced unknown language should fail
// loudly; this helper is used for the permissive "what's configured" view).
func (c Config) Languages() []model.Language {
	out := make([]model.Language, 0, len(c.Ratchet.Languages))
	for _, l := range c.Ratchet.Languages {
		lang := model.Language(l)
		if !lang.Valid() {
			continue
		}
		out = append(out, lang)
	}
	return out
}

// RuleSetting is what a single `[rules]` map entry resolves to: the rule is
// either entirely disabled, entirely enabled with no overrides, or enabled
// with an options table overriding rule defaults.
type RuleSetting struct {
	Disabled bool
	Options  map[string]interface{}
}

// SettingFor resolves the config-filter verdict for a rule id. Absence from
// the map means "enabled, no overrides".
func (c Config) SettingFor(id model.RuleId) RuleSetting {
	raw, ok := c.Rules[string(id)]
	if !ok {
		return RuleSetting{}
	}
	switch v := raw.(type) {
	case bool:
		return RuleSetting{Disabled: !v}
	case map[string]interface{}:
		return RuleSetting{Options: v}
	default:
		return RuleSetting{}
	}
}
