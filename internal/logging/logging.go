// Package logging builds the debug logger. Logging is off unless asked for
// so the tool's report lines and diagnostics stay its only output.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvVar names the environment variable that selects the log level.
const EnvVar = "BCMP_LOG"

// FromEnv returns a logger at the level named by BCMP_LOG (trace, debug,
// info, ...). Unset or unparsable values disable logging entirely.
func FromEnv() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(os.Getenv(EnvVar))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.Nop()
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
