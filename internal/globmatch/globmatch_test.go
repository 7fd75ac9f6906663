package globmatch

import "testing"

func TestAny_MatchesDoublestarAcrossDirectories(t *testing.T) {
	patterns := []string{"src/**/*.go"}
	if !Any(patterns, "src/legacy/old.go") {
		t.Fatal("expected src/legacy/old.go to match src/**/*.go")
	}
	if Any(patterns, "cmd/main.go") {
		t.Fatal("did not expect cmd/main.go to match src/**/*.go")
	}
}

func TestAny_EmptyPatternListMatchesNothing(t *testing.T) {
	if Any(nil, "anything.go") {
		t.Fatal("expected no match against an empty pattern list")
	}
}

func TestAny_MatchesWhenALaterPatternMatches(t *testing.T) {
	patterns := []string{"*.md", "*.go"}
	if !Any(patterns, "main.go") {
		t.Fatal("expected main.go to match one of the patterns")
	}
}

func TestValidate_RejectsMalformedPattern(t *testing.T) {
	if err := Validate([]string{"["}); err == nil {
		t.Fatal("expected an unterminated character class to fail validation")
	}
}

func TestValidate_AcceptsWellFormedPatterns(t *testing.T) {
	if err := Validate([]string{"**/*.go", "cmd/*"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
