// Package aggregate groups violations by (rule, region), compares observed
// counts to stored budgets, and re-establishes the deterministic total
// order the engine's parallel evaluation doesn't guarantee.
package aggregate

import (
	"sort"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
)

// Build partitions violations by (rule, region) and compares each count to
// its budget. Every region configured for every rule in rules — including
// the implicit root region — gets an entry even when its count is zero.
// Entries are returned in a fixed deterministic order: rules by id, regions
// within a rule by region path (root first), violations within a bucket by
// (file, start line, start col, end line, end col).
func Build(rules []model.RuleId, doc counts.Document, violations []model.Violation) []model.AggregateEntry {
	byRuleRegion := map[model.RuleId]map[string][]model.Violation{}
	for _, v := range violations {
		regions, ok := byRuleRegion[v.Rule]
		if !ok {
			regions = map[string][]model.Violation{}
			byRuleRegion[v.Rule] = regions
		}
		regions[v.Region] = append(regions[v.Region], v)
	}

	sortedRules := append([]model.RuleId(nil), rules...)
	sort.Slice(sortedRules, func(i, j int) bool { return sortedRules[i] < sortedRules[j] })

	var out []model.AggregateEntry
	for _, ruleID := range sortedRules {
		regions := doc.RegionsFor(ruleID)
		sort.Slice(regions, func(i, j int) bool {
			if regions[i] == model.RootRegion {
				return regions[j] != model.RootRegion
			}
			if regions[j] == model.RootRegion {
				return false
			}
			return regions[i] < regions[j]
		})

		for _, reg := range regions {
			vs := append([]model.Violation(nil), byRuleRegion[ruleID][reg]...)
			sort.Slice(vs, func(i, j int) bool { return violationLess(vs[i], vs[j]) })

			budget := int(doc.Budget(ruleID, reg))
			entry := model.AggregateEntry{
				Rule:       ruleID,
				Region:     reg,
				Violations: vs,
				Count:      len(vs),
				Budget:     budget,
				Verdict:    model.CompareVerdict(len(vs), budget),
			}
			out = append(out, entry)
		}
	}
	return out
}

func violationLess(a, b model.Violation) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.StartLine != b.StartLine {
		return a.StartLine < b.StartLine
	}
	if a.StartCol != b.StartCol {
		return a.StartCol < b.StartCol
	}
	if a.EndLine != b.EndLine {
		return a.EndLine < b.EndLine
	}
	return a.EndCol < b.EndCol
}

// Passed reports whether no entry in the aggregate is exceeded.
func Passed(entries []model.AggregateEntry) bool {
	for _, e := range entries {
		if e.Verdict == model.Exceeded {
			return false
		}
	}
	return true
}

// CountExceeded reports how many (rule, region) entries exceeded budget.
func CountExceeded(entries []model.AggregateEntry) int {
	n := 0
	for _, e := range entries {
		if e.Verdict == model.Exceeded {
			n++
		}
	}
	return n
}
