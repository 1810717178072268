package fieldline

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dataset-specific context.
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

// WithShard adds a shard filename field to the logger.
func (l *Logger) WithShard(filename string) *Logger {
	return &Logger{
		Logger: l.Logger.With("shard", filename),
	}
}

// WithSignal adds a signal key field to the logger.
func (l *Logger) WithSignal(signalKey string) *Logger {
	return &Logger{
		Logger: l.Logger.With("signal", signalKey),
	}
}

// LogShardWrite logs a data shard write.
func (l *Logger) LogShardWrite(ctx context.Context, filename string, numItems int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "shard write failed",
			"shard", filename,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "shard write completed",
			"shard", filename,
			"num_items", numItems,
		)
	}
}

// LogEmbeddingWrite logs an embedding index shard write.
func (l *Logger) LogEmbeddingWrite(ctx context.Context, filename string, numVectors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "embedding write failed",
			"shard", filename,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "embedding write completed",
			"shard", filename,
			"num_vectors", numVectors,
		)
	}
}

// LogSignal logs a signal schema attachment.
func (l *Logger) LogSignal(ctx context.Context, signalKey string, source string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "signal attach failed",
			"signal", signalKey,
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "signal attached",
			"signal", signalKey,
			"source", source,
		)
	}
}

// LogVectorLoad logs loading embedding shards into a vector store.
func (l *Logger) LogVectorLoad(ctx context.Context, numShards, numVectors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vector store load failed",
			"num_shards", numShards,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "vector store loaded",
			"num_shards", numShards,
			"num_vectors", numVectors,
		)
	}
}
