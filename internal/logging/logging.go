// Package logging configures the process-wide slog logger that every
// component hangs sub-loggers off via logger.With("component", ...).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds a text logger at the given level, installs it as the
// slog default, and returns it. The level string comes straight from
// CENTAVO_LOG_LEVEL; an unrecognized value falls back to info rather
// than failing startup.
func Setup(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config string to a slog level, ignoring case and
// surrounding whitespace. Unknown strings mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
