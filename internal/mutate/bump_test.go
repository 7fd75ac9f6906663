package mutate

import (
	"errors"
	"testing"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
)

func TestBump_DefaultsToObservedCount(t *testing.T) {
	doc := counts.Document{"no-unwrap": {".": 2}}
	got, err := Bump(doc, "no-unwrap", ".", 9, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
	if doc.Budget("no-unwrap", ".") != 9 {
		t.Fatalf("budget not persisted")
	}
}

func TestBump_RefusesBelowObservedCount(t *testing.T) {
	doc := counts.Document{"no-unwrap": {".": 2}}
	n := 1
	_, err := Bump(doc, "no-unwrap", ".", 9, &n)
	if err == nil {
		t.Fatal("expected BumpBelowCount error")
	}
	var belowCount *model.BumpBelowCount
	if !errors.As(err, &belowCount) {
		t.Fatalf("expected *model.BumpBelowCount, got %T", err)
	}
}

func TestBump_RefusesUnknownRegion(t *testing.T) {
	doc := counts.Document{"no-unwrap": {".": 0}}
	_, err := Bump(doc, "no-unwrap", "src/new", 1, nil)
	if err == nil {
		t.Fatal("expected UnknownRegion error")
	}
	var unknown *model.UnknownRegion
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *model.UnknownRegion, got %T", err)
	}
}
