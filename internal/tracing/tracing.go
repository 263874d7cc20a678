// Package tracing provides opt-in, environment-gated debug logging for
// the high-level solver's node expansion loop, in the style of
// beadwork's pkg/debug: a no-op unless MAPFCBS_DEBUG is set, so callers
// pay nothing for it by default.
package tracing

import (
	"log"
	"os"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("MAPFCBS_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[mapfcbs] ", log.Ltime|log.Lmicroseconds)
	}
}

// Logf writes a trace line when tracing is enabled; it is a no-op
// otherwise. format/args follow fmt.Printf conventions.
func Logf(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}
