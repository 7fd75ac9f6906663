package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/philjestin/ratchet/internal/model"
)

func TestWriteJSONL_ViolationsThenSummariesThenStatus(t *testing.T) {
	entries := []model.AggregateEntry{
		{
			Rule:   "no-todo",
			Region: ".",
			Count:  1,
			Budget: 0,
			Violations: []model.Violation{
				{Rule: "no-todo", File: "a.go", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5, Snippet: "TODO", Region: "."},
			},
			Verdict: model.Exceeded,
		},
	}

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (1 violation, 1 summary, 1 status), got %d:\n%s", len(lines), buf.String())
	}

	var v map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &v); err != nil {
		t.Fatalf("line 0 not JSON: %v", err)
	}
	if v["type"] != "violation" {
		t.Errorf("line 0 type = %v, want violation", v["type"])
	}

	var s map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &s); err != nil {
		t.Fatalf("line 1 not JSON: %v", err)
	}
	if s["type"] != "summary" {
		t.Errorf("line 1 type = %v, want summary", s["type"])
	}

	var st map[string]interface{}
	if err := json.Unmarshal([]byte(lines[2]), &st); err != nil {
		t.Fatalf("line 2 not JSON: %v", err)
	}
	if st["type"] != "status" || st["passed"] != false {
		t.Errorf("status line = %v", st)
	}
}

func TestWriteJSONL_PassedTrueWhenNothingExceeded(t *testing.T) {
	entries := []model.AggregateEntry{
		{Rule: "no-todo", Region: ".", Count: 0, Budget: 5, Verdict: model.WithinBudget},
	}
	var buf bytes.Buffer
	if err := WriteJSONL(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var st map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &st); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if st["passed"] != true {
		t.Errorf("expected passed=true, got %v", st["passed"])
	}
}
