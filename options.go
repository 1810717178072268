package fieldline

import (
	"log/slog"
)

type options struct {
	logger           *Logger
	validate         bool
	shardConcurrency int
}

// Option configures Dataset behavior.
type Option func(*options)

// WithLogger configures structured logging for dataset operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fieldline.NewJSONLogger(slog.LevelInfo)
//	ds := fieldline.New(store, fieldline.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithValidation enables structural validation of every item against the
// shard schema before it is encoded. Validation failures report the
// offending item and schema verbatim, so keep it off for sensitive data.
func WithValidation(validate bool) Option {
	return func(o *options) {
		o.validate = validate
	}
}

// WithShardConcurrency caps the number of shards written in parallel by
// WriteShards. Values below 1 mean no cap.
func WithShardConcurrency(n int) Option {
	return func(o *options) {
		o.shardConcurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
