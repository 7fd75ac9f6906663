package counts

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/philjestin/ratchet/internal/model"
)

func TestLoad_MissingFileIsEmptyDocument(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "ratchet-counts.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratchet-counts.toml")
	doc := Document{
		"no-unwrap": {".": 0, "src/legacy": 12},
		"no-todo":   {".": 3},
	}
	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Budget("no-unwrap", "src/legacy") != 12 {
		t.Fatalf("round-tripped budget = %d, want 12", got.Budget("no-unwrap", "src/legacy"))
	}
	if got.Budget("no-todo", ".") != 3 {
		t.Fatalf("round-tripped root budget = %d, want 3", got.Budget("no-todo", "."))
	}
}

func TestSetBudget_UnknownRegionRejected(t *testing.T) {
	doc := Document{"no-unwrap": {".": 0}}
	err := doc.SetBudget("no-unwrap", "src/new", 5)
	if err == nil {
		t.Fatal("expected an error setting a budget for an unconfigured region")
	}
	var unknown *model.UnknownRegion
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *model.UnknownRegion, got %T: %v", err, err)
	}
}

func TestSetBudget_RootNeverRejected(t *testing.T) {
	doc := Document{}
	if err := doc.SetBudget("no-unwrap", model.RootRegion, 7); err != nil {
		t.Fatalf("unexpected error setting root budget: %v", err)
	}
	if doc.Budget("no-unwrap", model.RootRegion) != 7 {
		t.Fatalf("budget not set")
	}
}

func TestRegionsFor_AlwaysIncludesRoot(t *testing.T) {
	doc := Document{"no-todo": {"src": 1}}
	regions := doc.RegionsFor("no-todo")
	found := false
	for _, r := range regions {
		if r == model.RootRegion {
			found = true
		}
	}
	if !found {
		t.Fatalf("RegionsFor did not include implicit root region: %v", regions)
	}
}
