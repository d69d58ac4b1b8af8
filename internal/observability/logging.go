// Package observability provides structured logging for the application core.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewDefaultLogger creates an info-level JSON logger writing to stdout.
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stdout, slog.LevelInfo)
}

// NewNopLogger creates a logger that discards everything. Intended for tests.
func NewNopLogger() *Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", name))}
}
