package columnar

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/parquet-go/parquet-go"

	"github.com/fieldline-ai/fieldline/blobstore"
	"github.com/fieldline-ai/fieldline/internal/shardname"
	"github.com/fieldline-ai/fieldline/nested"
	"github.com/fieldline-ai/fieldline/schema"
)

// Ext is the data shard file extension.
const Ext = "parquet"

// Filename returns the deterministic name of data shard shardIndex out of
// numShards, e.g. Filename("foo", 3, 10) == "foo-00003-of-00010.parquet".
func Filename(prefix string, shardIndex, numShards int) string {
	return shardname.Filename(prefix, shardIndex, numShards, Ext)
}

type options struct {
	validate bool
	logger   *slog.Logger
}

// Option configures the shard writer.
type Option func(*options)

// WithValidation enables per-item validation against the target schema before
// encoding. Validation is deterministic and side-effect-free; it costs one
// extra pass per item, which is why it is opt-in.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// WithLogger sets the logger used for write progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WriteShard writes items as one immutable parquet shard, assigning a fresh
// row identifier to any item lacking one (items are mutated in place to carry
// it). It returns the shard filename and the number of items written, for
// caller-side shard-count bookkeeping.
func WriteShard(ctx context.Context, store blobstore.BlobStore, items []nested.Item, sch *schema.Schema, prefix string, shardIndex, numShards int, opts ...Option) (string, int, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Assigned row identifiers must be a column of the shard.
	sch = schema.WithRowID(sch)

	pqSchema, err := ParquetSchema(sch)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[map[string]any](&buf, pqSchema)

	count := 0
	for _, item := range items {
		if _, ok := item[schema.RowIDColumn]; !ok {
			item[schema.RowIDColumn] = schema.NewRowID()
		}
		if o.validate {
			if err := Validate(item, sch); err != nil {
				return "", 0, err
			}
		}
		// Raw vectors live in the embedding index, not the columnar store.
		row := nested.ReplaceEmbeddings(item).(map[string]any)
		if _, err := w.Write([]map[string]any{row}); err != nil {
			return "", 0, fmt.Errorf("encode item %v: %w", item[schema.RowIDColumn], err)
		}
		count++
	}
	if err := w.Close(); err != nil {
		return "", 0, err
	}

	name := Filename(prefix, shardIndex, numShards)
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return "", 0, fmt.Errorf("write shard %q: %w", name, err)
	}

	if o.logger != nil {
		o.logger.Debug("shard written", "filename", name, "count", count)
	}
	return name, count, nil
}
