// Package output renders an aggregate as the CLI's two supported formats:
// JSONL records and colorized human-readable text.
package output

import (
	"encoding/json"
	"io"

	"github.com/philjestin/ratchet/internal/model"
)

type violationRecord struct {
	Type      string `json:"type"`
	Rule      string `json:"rule"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Snippet   string `json:"snippet"`
	Region    string `json:"region"`
	Message   string `json:"message"`
}

type summaryRecord struct {
	Type       string `json:"type"`
	Rule       string `json:"rule"`
	Region     string `json:"region"`
	Violations int    `json:"violations"`
	Budget     int    `json:"budget"`
	Status     string `json:"status"`
}

type statusRecord struct {
	Type            string `json:"type"`
	Passed          bool   `json:"passed"`
	RulesChecked    int    `json:"rules_checked"`
	RulesExceeded   int    `json:"rules_exceeded"`
	TotalViolations int    `json:"total_violations"`
}

// WriteJSONL emits one JSON object per line: all violations (already sorted
// by the aggregator), then all summaries, then one trailing status record.
func WriteJSONL(w io.Writer, entries []model.AggregateEntry) error {
	enc := json.NewEncoder(w)

	rulesSeen := map[model.RuleId]struct{}{}
	rulesExceeded := map[model.RuleId]struct{}{}
	total := 0

	for _, e := range entries {
		rulesSeen[e.Rule] = struct{}{}
		for _, v := range e.Violations {
			total++
			if err := enc.Encode(violationRecord{
				Type:      "violation",
				Rule:      string(v.Rule),
				File:      v.File,
				Line:      v.StartLine,
				Column:    v.StartCol,
				EndLine:   v.EndLine,
				EndColumn: v.EndCol,
				Snippet:   v.Snippet,
				Region:    v.Region,
				Message:   v.Message,
			}); err != nil {
				return err
			}
		}
		if e.Verdict == model.Exceeded {
			rulesExceeded[e.Rule] = struct{}{}
		}
	}

	for _, e := range entries {
		if err := enc.Encode(summaryRecord{
			Type:       "summary",
			Rule:       string(e.Rule),
			Region:     e.Region,
			Violations: e.Count,
			Budget:     e.Budget,
			Status:     string(e.Verdict),
		}); err != nil {
			return err
		}
	}

	status := statusRecord{
		Passed:          len(rulesExceeded) == 0,
		RulesChecked:    len(rulesSeen),
		RulesExceeded:   len(rulesExceeded),
		TotalViolations: total,
	}
	status.Type = "status"
	if err := enc.Encode(status); err != nil {
		return err
	}
	return nil
}
