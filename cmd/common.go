package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/philjestin/ratchet/internal/aggregate"
	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/engine"
	"github.com/philjestin/ratchet/internal/globmatch"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/ratchetcfg"
	"github.com/philjestin/ratchet/internal/registry"
	"github.com/philjestin/ratchet/internal/rule"
	"github.com/philjestin/ratchet/internal/walk"
)

const (
	countsFileName   = "ratchet-counts.toml"
	userRulesDirName = "ratchets"
	builtinMirrorDir = ".ratchet/builtin"
)

// workspace bundles everything a subcommand needs, loaded once from the
// resolved repo root.
type workspace struct {
	root   string
	cache  *parse.Cache
	cfg    ratchetcfg.Config
	rules  []*rule.Rule
	doc    counts.Document
	docErr error
}

func countsPath(root string) string {
	return filepath.Join(root, countsFileName)
}

// loadWorkspace resolves --root, unmarshals ratchet.toml via viper, builds
// the active rule set, and loads the counts document.
func loadWorkspace() (*workspace, error) {
	root := viper.GetString("root")
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &model.UsageError{Why: err.Error()}
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, &model.UsageError{Why: "repo root does not exist: " + abs}
	}
	root = abs

	var cfg ratchetcfg.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, &model.ConfigError{Why: err.Error()}
	}
	if err := globmatch.Validate(cfg.Ratchet.Include); err != nil {
		return nil, &model.ConfigError{Why: "bad [ratchet] include glob: " + err.Error()}
	}
	if err := globmatch.Validate(cfg.Ratchet.Exclude); err != nil {
		return nil, &model.ConfigError{Why: "bad [ratchet] exclude glob: " + err.Error()}
	}

	cache := parse.NewCache()

	opts := registry.Options{UserDir: filepath.Join(root, userRulesDirName)}
	if info, err := os.Stat(filepath.Join(root, builtinMirrorDir)); err == nil && info.IsDir() {
		opts.BuiltinDir = filepath.Join(root, builtinMirrorDir)
	}

	rules, err := registry.Build(cfg, opts, cache)
	if err != nil {
		return nil, err
	}

	doc, docErr := counts.Load(countsPath(root))
	if docErr != nil {
		return nil, docErr
	}

	return &workspace{root: root, cache: cache, cfg: cfg, rules: rules, doc: doc}, nil
}

// check walks the workspace, evaluates the active rule set, and aggregates
// the result against the counts document. Diagnostics (per-file parse
// failures) are returned alongside and do not stop evaluation of the other
// files; check turns them into a ParseFailures error when no budget is
// exceeded.
func (w *workspace) check(ctx context.Context) ([]model.AggregateEntry, []engine.Diagnostic, error) {
	files, err := walk.Walk(ctx, w.root, nil, walk.Options{
		Include: w.cfg.Ratchet.Include,
		Exclude: w.cfg.Ratchet.Exclude,
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.Run(ctx, w.cache, w.rules, w.doc, files)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]model.RuleId, 0, len(w.rules))
	for _, r := range w.rules {
		ids = append(ids, r.ID)
	}

	entries := aggregate.Build(ids, w.doc, result.Violations)
	return entries, result.Diagnostics, nil
}
