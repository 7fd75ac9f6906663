package model

import "fmt"

// ExitCoder is implemented by every error kind Ratchet's CLI layer can
// surface; main() dispatches on this instead of string-matching errors.
type ExitCoder interface {
	error
	ExitCode() int
}

// Exit codes per the CLI contract: 0 pass, 1 budget exceeded, 2
// configuration/usage/IO error, 3 source parse failure.
const (
	ExitPass            = 0
	ExitBudgetExceeded  = 1
	ExitConfigOrUsageIO = 2
	ExitParseFailure    = 3
)

// UsageError covers unknown subcommands, missing/conflicting flags, and a
// nonexistent repo root.
type UsageError struct{ Why string }

func (e *UsageError) Error() string { return fmt.Sprintf("usage error: %s", e.Why) }
func (e *UsageError) ExitCode() int { return ExitConfigOrUsageIO }

// ConfigError covers a missing/malformed ratchet.toml, an unknown rule
// reference, or an unknown language.
type ConfigError struct{ Why string }

func (e *ConfigError) Error() string { return fmt.Sprintf("config error: %s", e.Why) }
func (e *ConfigError) ExitCode() int { return ExitConfigOrUsageIO }

// CountsMalformed is returned when ratchet-counts.toml does not deserialize
// to RuleId -> RegionPath -> uint.
type CountsMalformed struct{ Why string }

func (e *CountsMalformed) Error() string { return fmt.Sprintf("malformed counts document: %s", e.Why) }
func (e *CountsMalformed) ExitCode() int  { return ExitConfigOrUsageIO }

// UnknownRegion is returned by set_budget (and therefore bump/tighten) when
// the region is not already configured for the rule. This is the sole
// source of "regions are never auto-created".
type UnknownRegion struct {
	Rule   RuleId
	Region string
}

func (e *UnknownRegion) Error() string {
	return fmt.Sprintf("region %q is not configured for rule %q", e.Region, e.Rule)
}
func (e *UnknownRegion) ExitCode() int { return ExitConfigOrUsageIO }

// RuleMalformed is returned when a user or builtin rule fails to compile:
// a bad regex, a bad query, or a missing language grammar for an AST rule.
type RuleMalformed struct {
	ID  RuleId
	Why string
}

func (e *RuleMalformed) Error() string {
	return fmt.Sprintf("rule %q is malformed: %s", e.ID, e.Why)
}
func (e *RuleMalformed) ExitCode() int { return ExitConfigOrUsageIO }

// ParseFailed reports that a source file could not be parsed by its
// grammar. This is logged per file and excludes the file from that rule's
// results; it does not abort the run and does not count against budgets.
type ParseFailed struct {
	Path       string
	Language   Language
	Diagnostic string
}

func (e *ParseFailed) Error() string {
	return fmt.Sprintf("parse failed: %s (%s): %s", e.Path, e.Language, e.Diagnostic)
}
func (e *ParseFailed) ExitCode() int { return ExitParseFailure }

// IoError wraps an unreadable source file or an unwritable counts file.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("io error: %s: %v", e.Path, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }
func (e *IoError) ExitCode() int { return ExitConfigOrUsageIO }

// BudgetExceeded is returned by check when at least one (rule, region) has
// count > budget.
type BudgetExceeded struct{ Count int }

func (e *BudgetExceeded) Error() string {
	return fmt.Sprintf("%d (rule, region) pair(s) exceeded budget", e.Count)
}
func (e *BudgetExceeded) ExitCode() int { return ExitBudgetExceeded }

// ParseFailures is returned by check when one or more source files could
// not be parsed by their grammar and no budget was exceeded; a parse
// failure is its own distinct, non-zero outcome rather than a silent
// pass.
type ParseFailures struct{ Count int }

func (e *ParseFailures) Error() string {
	return fmt.Sprintf("%d source file(s) failed to parse", e.Count)
}
func (e *ParseFailures) ExitCode() int { return ExitParseFailure }

// BumpBelowCount is returned by bump when the requested budget is lower than
// the region's current violation count; bump never hides existing
// violations, only raises the ceiling to accommodate them. Lowering a
// budget is tighten's job.
type BumpBelowCount struct {
	Rule     RuleId
	Region   string
	Count    int
	Proposed int
}

func (e *BumpBelowCount) Error() string {
	return fmt.Sprintf("bump %q %s: proposed budget %d is below current count %d; use tighten to lower a budget", e.Rule, e.Region, e.Proposed, e.Count)
}
func (e *BumpBelowCount) ExitCode() int { return ExitConfigOrUsageIO }

// TightenBlocked is returned by tighten when any selected (rule, region)
// entry is already over budget; tighten only ever lowers budgets down to an
// observed count, never past it, so an exceeded entry must be fixed or
// bumped first.
type TightenBlocked struct {
	Rule   RuleId
	Region string
	Count  int
	Budget int
}

func (e *TightenBlocked) Error() string {
	return fmt.Sprintf("tighten %q %s: count %d exceeds budget %d; fix the violations or bump first", e.Rule, e.Region, e.Count, e.Budget)
}
func (e *TightenBlocked) ExitCode() int { return ExitConfigOrUsageIO }
