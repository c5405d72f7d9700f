package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a human-readable console writer on stderr,
// everything else gets JSON lines. An explicit level always wins over the environment default.
func New(appEnv, level string) zerolog.Logger {
	return newLogger(os.Stderr, appEnv, level)
}

func newLogger(w io.Writer, appEnv, level string) zerolog.Logger {
	lvl := defaultLevel(appEnv)
	if level = strings.ToLower(strings.TrimSpace(level)); level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil && parsed != zerolog.NoLevel {
			lvl = parsed
		}
	}

	out := w
	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// defaultLevel applies when log_level is unset or unparsable.
func defaultLevel(appEnv string) zerolog.Level {
	if appEnv == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
