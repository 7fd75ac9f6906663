package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/ratchetcfg"
	"github.com/philjestin/ratchet/internal/rule"
)

func writeRule(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuild_EmbeddedRulesLoad(t *testing.T) {
	rules, err := Build(ratchetcfg.Config{}, Options{}, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) == 0 {
		t.Fatal("expected at least the embedded built-in rules")
	}
}

func TestBuild_UserRuleOverridesEmbeddedByID(t *testing.T) {
	userDir := t.TempDir()
	writeRule(t, filepath.Join(userDir, "regex"), "no-unwrap.toml", `
id = "no-unwrap"
description = "overridden"
pattern = 'unwrap'
languages = ["rust"]
severity = "error"
`)

	rules, err := Build(ratchetcfg.Config{}, Options{UserDir: userDir}, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rules {
		if r.ID == "no-unwrap" {
			if r.Description != "overridden" || r.Severity != "error" {
				t.Fatalf("user rule did not override embedded rule: %+v", r)
			}
			return
		}
	}
	t.Fatal("no-unwrap rule not found in active set")
}

func TestBuild_ConfigDisablesRule(t *testing.T) {
	cfg := ratchetcfg.Config{Rules: map[string]interface{}{"no-unwrap": false}}
	rules, err := Build(cfg, Options{}, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rules {
		if r.ID == "no-unwrap" {
			t.Fatal("no-unwrap should have been disabled by config")
		}
	}
}

func TestBuild_LanguageFilterExcludesNonMatchingAstRules(t *testing.T) {
	cfg := ratchetcfg.Config{Ratchet: ratchetcfg.RatchetSection{Languages: []string{"python"}}}
	rules, err := Build(cfg, Options{}, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rules {
		if r.Kind == rule.KindAst && r.Language != model.LangPython {
			t.Fatalf("ast rule for unconfigured language survived filter: %+v", r)
		}
	}
}

func TestBuild_ActiveSetSortedByID(t *testing.T) {
	rules, err := Build(ratchetcfg.Config{}, Options{}, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(rules); i++ {
		if rules[i-1].ID > rules[i].ID {
			t.Fatalf("active set not sorted by id: %s before %s", rules[i-1].ID, rules[i].ID)
		}
	}
}
