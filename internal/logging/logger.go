// Package logging configures structured logging with log/slog.
//
// Diagnostics go to stderr so that command output on stdout (tables, JSON)
// stays machine-readable.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// New builds a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "warn")
// Format values: "text", "json" (default: "text")
//
// The CLI defaults to warn so routine load/save messages stay quiet unless
// asked for.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == types.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops every record. Tests and library
// callers that do not care about diagnostics use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case types.LogLevelDebug:
		return slog.LevelDebug
	case types.LogLevelInfo:
		return slog.LevelInfo
	case types.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
