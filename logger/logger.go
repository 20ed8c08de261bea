// Package logger configures the process-wide zerolog logger.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger with the given level ("debug", "info", "warn",
// "error") and format ("console" or "json").
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out = os.Stdout
	logger := zerolog.New(out)
	if strings.ToLower(format) != "json" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
