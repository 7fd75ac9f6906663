package model

import "testing"

func TestRuleId_Validate(t *testing.T) {
	valid := []RuleId{"no-unwrap", "a", "rule0", "x-y-z"}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("expected %q to be valid, got %v", id, err)
		}
	}

	invalid := []RuleId{"", "Rule", "-bad", "has space", "bad_underscore"}
	for _, id := range invalid {
		if err := id.Validate(); err == nil {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
