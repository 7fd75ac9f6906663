// Package workers resolves how many goroutines the file-walking and
// rule-evaluation pools should use.
package workers

import (
	"os"
	"runtime"
	"strconv"
)

// EnvVar is the one environment variable the engine consults for worker
// pool sizing.
const EnvVar = "RATCHET_WORKERS"

// Count returns the configured worker count from EnvVar, defaulting to the
// number of available cores when unset or invalid.
func Count() int {
	if raw := os.Getenv(EnvVar); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}
