package bitgrid

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitgrid-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBoard adds a board identifier to the logger.
func (l *Logger) WithBoard(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("board", id),
	}
}

// LogSet logs a cell write.
func (l *Logger) LogSet(ctx context.Context, row, col int, value uint8, err error) {
	if err != nil {
		l.ErrorContext(ctx, "set failed",
			"row", row,
			"col", col,
			"value", value,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "set completed",
			"row", row,
			"col", col,
			"value", value,
		)
	}
}

// LogSettle logs a gravity run.
func (l *Logger) LogSettle(ctx context.Context, passes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "settle failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "settle completed",
			"passes", passes,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"name", name,
		)
	}
}

// LogRecovery logs a journal recovery.
func (l *Logger) LogRecovery(ctx context.Context, entriesReplayed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "journal recovery failed",
			"entries_replayed", entriesReplayed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "journal recovery completed",
			"entries_replayed", entriesReplayed,
		)
	}
}
