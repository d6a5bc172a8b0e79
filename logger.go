package segcoll

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with collection-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithStructure tags the logger with the collection kind ("segarray", "window", ...).
func (l *Logger) WithStructure(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("structure", name),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogGrow logs a capacity change.
func (l *Logger) LogGrow(ctx context.Context, kind string, oldCapacity, newCapacity int) {
	l.DebugContext(ctx, "capacity grown",
		"kind", kind,
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
	)
}

// LogCoalesce logs a delta fold into a sorted base.
func (l *Logger) LogCoalesce(ctx context.Context, added, removed, size int, inPlace bool) {
	l.DebugContext(ctx, "coalesce completed",
		"added", added,
		"removed", removed,
		"size", size,
		"in_place", inPlace,
	)
}

// LogBlocked logs a removal refused by a pinned iterator.
func (l *Logger) LogBlocked(ctx context.Context, op string, count, blocker int) {
	l.WarnContext(ctx, "removal blocked by pinned iterator",
		"op", op,
		"count", count,
		"blocker", blocker,
	)
}

// LogInvariant logs a broken invariant found by the debug verification layer.
func (l *Logger) LogInvariant(ctx context.Context, err error) {
	l.ErrorContext(ctx, "invariant violated",
		"error", err,
	)
}
