package vectorvault

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vectorvault-specific context. It is held by
// the public Index facade, the HTTP server, and the vectorvaultd CLI; the
// hnsw graph package never logs.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger from an existing handler. If handler is nil, a
// text handler writing to stderr at Info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that emits JSON-formatted records.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// WithID returns a Logger annotated with an id field.
func (l *Logger) WithID(id int32) *Logger {
	return &Logger{Logger: l.Logger.With("id", id)}
}

// LogAdd logs the outcome of an Add call.
func (l *Logger) LogAdd(ctx context.Context, id int32, dim int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed", "id", id, "dimension", dim, "error", err)
		return
	}
	l.DebugContext(ctx, "add completed", "id", id, "dimension", dim)
}

// LogSearch logs the outcome of a Search call.
func (l *Logger) LogSearch(ctx context.Context, k, ef, found int, latencyUs int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "ef", ef, "error", err)
		return
	}
	l.DebugContext(ctx, "search completed", "k", k, "ef", ef, "found", found, "latency_us", latencyUs)
}

// LogSave logs the outcome of a Save call.
func (l *Logger) LogSave(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed", "path", path, "error", err)
		return
	}
	l.InfoContext(ctx, "snapshot saved", "path", path)
}

// LogLoad logs the outcome of a Load call.
func (l *Logger) LogLoad(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "path", path, "error", err)
		return
	}
	l.InfoContext(ctx, "snapshot loaded", "path", path)
}
