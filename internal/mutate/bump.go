package mutate

import (
	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
)

// Bump raises (rule, region)'s budget to n, or to count when n is nil. It
// refuses to set a budget below the observed count — that would silently
// hide violations rather than make room for them — and refuses to touch a
// region the document doesn't already know about, since bump isn't how
// regions get created.
func Bump(doc counts.Document, rule model.RuleId, region string, count int, n *int) (int, error) {
	proposed := count
	if n != nil {
		proposed = *n
	}
	if proposed < count {
		return 0, &model.BumpBelowCount{Rule: rule, Region: region, Count: count, Proposed: proposed}
	}
	if !doc.HasRegion(rule, region) {
		return 0, &model.UnknownRegion{Rule: rule, Region: region}
	}
	if err := doc.SetBudget(rule, region, uint(proposed)); err != nil {
		return 0, err
	}
	return proposed, nil
}
