// Package mutate implements the two operations that rewrite the counts
// document: tighten (lower a budget to match an observed count) and bump
// (raise a budget to accommodate new violations).
package mutate

import (
	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
)

// Tighten lowers the budget of every selected (rule, region) entry whose
// count is strictly below its current budget, down to that count. Selection
// is narrowed by rule and region when non-nil; both nil tightens everything
// in the aggregate. If any selected entry is exceeded, Tighten makes no
// changes at all and returns a *model.TightenBlocked — the same abort
// condition that makes the whole run check-and-apply rather than
// best-effort.
func Tighten(entries []model.AggregateEntry, doc counts.Document, rule *model.RuleId, region *string) (bool, error) {
	var selected []model.AggregateEntry
	for _, e := range entries {
		if rule != nil && e.Rule != *rule {
			continue
		}
		if region != nil && e.Region != *region {
			continue
		}
		selected = append(selected, e)
	}

	for _, e := range selected {
		if e.Verdict == model.Exceeded {
			return false, &model.TightenBlocked{Rule: e.Rule, Region: e.Region, Count: e.Count, Budget: e.Budget}
		}
	}

	changed := false
	for _, e := range selected {
		if e.Count < e.Budget {
			if err := doc.SetBudget(e.Rule, e.Region, uint(e.Count)); err != nil {
				return false, err
			}
			changed = true
		}
	}
	return changed, nil
}
