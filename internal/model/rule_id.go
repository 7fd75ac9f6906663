package model

import (
	"fmt"
	"regexp"
)

// RuleId names a rule within a run. It must match [a-z0-9][a-z0-9-]*.
type RuleId string

var ruleIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Validate reports whether id has the required shape.
func (id RuleId) Validate() error {
	if !ruleIDPattern.MatchString(string(id)) {
		return fmt.Errorf("rule id %q must match [a-z0-9][a-z0-9-]*", id)
	}
	return nil
}

func (id RuleId) String() string { return string(id) }
