package rule

import (
	"testing"

	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/source"
)

func TestValidate_RegexRuleRequiresFileSelector(t *testing.T) {
	r := &Rule{ID: "no-todo", Kind: KindRegex, PatternSrc: "TODO"}
	if err := r.Validate(); err == nil {
		t.Fatal("expected a regex rule with no language or include glob to fail validation")
	}
	r.IncludeGlobs = []string{"**/*.go"}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error once an include glob is set: %v", err)
	}
}

func TestValidate_AstRuleRequiresLanguage(t *testing.T) {
	r := &Rule{ID: "no-unwrap", Kind: KindAst, QuerySrc: "(call_expression) @violation"}
	if err := r.Validate(); err == nil {
		t.Fatal("expected an ast rule with no language to fail validation")
	}
}

func TestCompile_RejectsMalformedRegex(t *testing.T) {
	r := &Rule{ID: "bad", Kind: KindRegex, PatternSrc: "(unterminated", IncludeGlobs: []string{"*"}}
	if err := r.Compile(parse.NewCache()); err == nil {
		t.Fatal("expected an unparseable regex pattern to fail Compile")
	}
}

func TestCompile_RejectsMalformedIncludeGlob(t *testing.T) {
	r := &Rule{ID: "bad", Kind: KindRegex, PatternSrc: "TODO", IncludeGlobs: []string{"["}}
	if err := r.Compile(parse.NewCache()); err == nil {
		t.Fatal("expected a malformed include glob to fail Compile")
	}
}

func TestAppliesTo_RegexRuleHonorsLanguageAndGlobs(t *testing.T) {
	r := &Rule{
		ID:           "no-todo",
		Kind:         KindRegex,
		PatternSrc:   "TODO",
		Languages:    []model.Language{model.LangGo},
		IncludeGlobs: []string{"src/**"},
		ExcludeGlobs: []string{"src/vendor/**"},
	}
	if err := r.Compile(parse.NewCache()); err != nil {
		t.Fatalf("compile: %v", err)
	}

	inScope := source.New("src/main.go", "/abs/src/main.go", []byte("package main\n"))
	if !r.AppliesTo(inScope) {
		t.Fatal("expected src/main.go to be in scope")
	}

	wrongLang := source.New("src/main.py", "/abs/src/main.py", []byte("pass\n"))
	if r.AppliesTo(wrongLang) {
		t.Fatal("expected a non-Go file to be out of scope for a Go-only rule")
	}

	excluded := source.New("src/vendor/lib.go", "/abs/src/vendor/lib.go", []byte("package lib\n"))
	if r.AppliesTo(excluded) {
		t.Fatal("expected an excluded path to be out of scope")
	}

	outsideInclude := source.New("cmd/main.go", "/abs/cmd/main.go", []byte("package main\n"))
	if r.AppliesTo(outsideInclude) {
		t.Fatal("expected a path outside the include glob to be out of scope")
	}
}

func TestEvaluate_RegexRuleFindsMatches(t *testing.T) {
	r := &Rule{ID: "no-todo", Kind: KindRegex, PatternSrc: "TODO", IncludeGlobs: []string{"**/*"}}
	if err := r.Compile(parse.NewCache()); err != nil {
		t.Fatalf("compile: %v", err)
	}
	fe := source.New("a.go", "/abs/a.go", []byte("// TODO fix\npackage a\n"))
	matches, err := r.Evaluate(fe, parse.NewCache())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}
