package aig

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with steering-specific context.
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

// WithSession adds the generation-session ID to the logger.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("session", id),
	}
}

// WithConcept adds a concept name field to the logger.
func (l *Logger) WithConcept(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("concept", name),
	}
}

// LogAddConcept logs a catalog insertion.
func (l *Logger) LogAddConcept(ctx context.Context, name string, dim int) {
	l.DebugContext(ctx, "concept added",
		"concept", name,
		"dimension", dim,
	)
}

// LogActivate logs a concept activation.
func (l *Logger) LogActivate(ctx context.Context, name string, strength float32, known bool) {
	if !known {
		l.WarnContext(ctx, "activation ignored for unknown concept",
			"concept", name,
		)
		return
	}
	l.DebugContext(ctx, "concept activated",
		"concept", name,
		"strength", strength,
	)
}

// LogDeactivateAll logs the end-of-generation reset.
func (l *Logger) LogDeactivateAll(ctx context.Context, count int) {
	l.DebugContext(ctx, "all concepts deactivated",
		"count", count,
	)
}

// LogCatalogSave logs a catalog persistence operation.
func (l *Logger) LogCatalogSave(ctx context.Context, blobName string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog save failed",
			"blob", blobName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "catalog saved",
			"blob", blobName,
			"count", count,
		)
	}
}

// LogCatalogLoad logs a catalog load operation.
func (l *Logger) LogCatalogLoad(ctx context.Context, blobName string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog load failed",
			"blob", blobName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "catalog loaded",
			"blob", blobName,
			"count", count,
		)
	}
}
