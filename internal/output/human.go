package output

import (
	"fmt"
	"io"
	"os"

	"github.com/philjestin/ratchet/internal/model"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
)

// ColorMode controls whether WriteHuman emits ANSI escapes.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// IsTerminal reports whether w looks like an interactive terminal, used to
// resolve ColorAuto. Only *os.File can be a terminal; anything else (a
// buffer, a pipe-wrapped writer) is treated as non-interactive.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// WriteHuman renders entries as a per-(rule, region) header with a pass/fail
// mark, indented violations, and a trailing one-line summary.
func WriteHuman(w io.Writer, entries []model.AggregateEntry, mode ColorMode) error {
	useColor := mode == ColorAlways || (mode == ColorAuto && IsTerminal(w))

	mark := func(v model.Verdict) string {
		if v == model.Exceeded {
			return paint(useColor, ansiRed, "FAIL")
		}
		return paint(useColor, ansiGreen, "ok")
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s  %s  (%d/%d)\n", mark(e.Verdict), e.Rule, regionLabel(e.Region), e.Count, e.Budget); err != nil {
			return err
		}
		for _, v := range e.Violations {
			line := fmt.Sprintf("  %s:%d:%d  %s", v.File, v.StartLine, v.StartCol, v.Snippet)
			if useColor {
				line = ansiDim + line + ansiReset
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	total, exceeded := 0, 0
	for _, e := range entries {
		total += e.Count
		if e.Verdict == model.Exceeded {
			exceeded++
		}
	}
	status := "PASS"
	if exceeded > 0 {
		status = "FAIL"
	}
	summary := fmt.Sprintf("%s  %d rule(s) checked, %d exceeded, %d violation(s) total\n", status, len(entries), exceeded, total)
	_, err := fmt.Fprint(w, summary)
	return err
}

func regionLabel(region string) string {
	if region == model.RootRegion {
		return "(root)"
	}
	return region
}

func paint(useColor bool, code, text string) string {
	if !useColor {
		return text
	}
	return code + text + ansiReset
}
