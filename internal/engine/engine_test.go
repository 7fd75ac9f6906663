package engine

import (
	"context"
	"testing"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/rule"
	"github.com/philjestin/ratchet/internal/source"
)

func mustCompile(t *testing.T, r *rule.Rule) *rule.Rule {
	t.Helper()
	if err := r.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := r.Compile(parse.NewCache()); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return r
}

func TestRun_RegexRuleAttributesToRegion(t *testing.T) {
	r := mustCompile(t, &rule.Rule{
		ID:           "no-todo",
		PatternSrc:   `TODO`,
		IncludeGlobs: []string{"**/*"},
	})

	files := []*source.FileEntry{
		source.New("src/legacy/old.go", "/abs/src/legacy/old.go", []byte("// TODO fix this\npackage old\n")),
		source.New("main.go", "/abs/main.go", []byte("package main\n")),
	}

	doc := counts.Document{"no-todo": {".": 0, "src/legacy": 5}}

	result, err := Run(context.Background(), parse.NewCache(), []*rule.Rule{r}, doc, files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result.Violations))
	}
	if result.Violations[0].Region != "src/legacy" {
		t.Fatalf("violation attributed to region %q, want src/legacy", result.Violations[0].Region)
	}
}

func TestRun_NoMatchingFilesYieldsNoViolations(t *testing.T) {
	r := mustCompile(t, &rule.Rule{
		ID:           "no-todo",
		PatternSrc:   `TODO`,
		IncludeGlobs: []string{"**/*"},
	})

	files := []*source.FileEntry{
		source.New("main.go", "/abs/main.go", []byte("package main\n")),
	}

	result, err := Run(context.Background(), parse.NewCache(), []*rule.Rule{r}, counts.Document{}, files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Violations) != 0 {
		t.Fatalf("expected no violations, got %d", len(result.Violations))
	}
}
