package gridsig

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/gridsig/internal/kernel"
)

// Logger wraps slog.Logger with gridsig-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithShape adds width and height fields to the logger.
func (l *Logger) WithShape(s Shape) *Logger {
	return &Logger{
		Logger: l.Logger.With("width", s.Width, "height", s.Height),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogWalk logs a completed or failed walk.
func (l *Logger) LogWalk(ctx context.Context, s Shape, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "walk failed",
			"width", s.Width,
			"height", s.Height,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "walk completed",
		"width", s.Width,
		"height", s.Height,
		"workers", workers,
		"kernel", kernel.Active().String(),
		"elapsed", elapsed,
	)
}

// LogDiff logs a surface comparison.
func (l *Logger) LogDiff(ctx context.Context, s Shape, changed uint64) {
	l.DebugContext(ctx, "diff completed",
		"width", s.Width,
		"height", s.Height,
		"changed", changed,
	)
}

// LogStore logs a surface store operation.
func (l *Logger) LogStore(ctx context.Context, op, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "surface "+op+" failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "surface "+op,
		"name", name,
		"bytes", bytes,
	)
}
