package stablevec

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with stablevec-specific helpers.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithIndex adds an index field to the logger.
func (l *Logger) WithIndex(index int) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", index),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogInsertAt logs a positional insert (sequential or arbitrary).
// grown is the number of slots appended to the backing array.
func (l *Logger) LogInsertAt(ctx context.Context, index, grown int, err error) {
	if err != nil {
		l.WithIndex(index).DebugContext(ctx, "insert at index rejected",
			"error", err,
		)
		return
	}
	if grown > 0 {
		l.WithIndex(index).DebugContext(ctx, "backing array grown for insert",
			"grown", grown,
		)
	}
}

// LogRemove logs a failed removal.
func (l *Logger) LogRemove(ctx context.Context, index int, err error) {
	if err != nil {
		l.WithIndex(index).DebugContext(ctx, "remove failed",
			"error", err,
		)
	}
}

// LogRetain logs the outcome of a retain pass.
func (l *Logger) LogRetain(ctx context.Context, visited, removed int) {
	l.DebugContext(ctx, "retain completed",
		"visited", visited,
		"removed", removed,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(ctx context.Context, dropped int) {
	l.WithCount(dropped).DebugContext(ctx, "cleared")
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot "+op+" completed",
			"name", name,
			"bytes", size,
		)
	}
}
