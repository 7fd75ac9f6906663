package aggregate

import (
	"testing"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
)

func TestBuild_GroupsAndCompares(t *testing.T) {
	doc := counts.Document{"no-unwrap": {".": 1, "src/legacy": 5}}
	violations := []model.Violation{
		{Rule: "no-unwrap", File: "a.rs", Region: ".", StartLine: 1},
		{Rule: "no-unwrap", File: "src/legacy/b.rs", Region: "src/legacy", StartLine: 1},
		{Rule: "no-unwrap", File: "src/legacy/c.rs", Region: "src/legacy", StartLine: 2},
	}

	entries := Build([]model.RuleId{"no-unwrap"}, doc, violations)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (root, src/legacy), got %d", len(entries))
	}

	root := entries[0]
	if root.Region != "." || root.Count != 1 || root.Verdict != model.ExactlyMet {
		t.Errorf("root entry = %+v", root)
	}

	legacy := entries[1]
	if legacy.Region != "src/legacy" || legacy.Count != 2 || legacy.Verdict != model.WithinBudget {
		t.Errorf("legacy entry = %+v", legacy)
	}
}

func TestBuild_RootRegionSortsFirst(t *testing.T) {
	doc := counts.Document{"no-todo": {".": 0, "a": 0, "zzz": 0}}
	entries := Build([]model.RuleId{"no-todo"}, doc, nil)
	if entries[0].Region != "." {
		t.Fatalf("expected root region first, got %q", entries[0].Region)
	}
}

func TestBuild_EmptyBucketsStillReported(t *testing.T) {
	doc := counts.Document{"no-todo": {".": 5}}
	entries := Build([]model.RuleId{"no-todo"}, doc, nil)
	if len(entries) != 1 || entries[0].Count != 0 {
		t.Fatalf("expected one zero-count entry, got %+v", entries)
	}
	if entries[0].Verdict != model.WithinBudget {
		t.Fatalf("0 count against budget 5 should be within budget, got %v", entries[0].Verdict)
	}
}

func TestPassed_FalseWhenAnyExceeded(t *testing.T) {
	entries := []model.AggregateEntry{
		{Rule: "a", Region: ".", Verdict: model.WithinBudget},
		{Rule: "b", Region: ".", Verdict: model.Exceeded},
	}
	if Passed(entries) {
		t.Fatal("expected Passed to be false")
	}
	if CountExceeded(entries) != 1 {
		t.Fatalf("CountExceeded = %d, want 1", CountExceeded(entries))
	}
}
