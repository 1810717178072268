package fieldline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fieldline-ai/fieldline/blobstore"
	"github.com/fieldline-ai/fieldline/columnar"
	"github.com/fieldline-ai/fieldline/embedindex"
	"github.com/fieldline-ai/fieldline/manifest"
	"github.com/fieldline-ai/fieldline/nested"
	"github.com/fieldline-ai/fieldline/schema"
	"github.com/fieldline-ai/fieldline/vectorstore"
)

// Dataset is the facade over one dataset: a blob store holding its
// columnar and embedding shards, plus the manifest binding them to the
// canonical schema.
type Dataset struct {
	store    blobstore.BlobStore
	manifest *manifest.Store
	opts     options
}

// New creates a Dataset on top of a blob store.
func New(store blobstore.BlobStore, optFns ...Option) *Dataset {
	return &Dataset{
		store:    store,
		manifest: manifest.NewStore(store),
		opts:     applyOptions(optFns),
	}
}

// Manifest loads the current dataset manifest.
func (d *Dataset) Manifest(ctx context.Context) (*manifest.Manifest, error) {
	return d.manifest.Load(ctx)
}

// Schema loads the current merged dataset schema.
func (d *Dataset) Schema(ctx context.Context) (*schema.Schema, error) {
	m, err := d.manifest.Load(ctx)
	if err != nil {
		return nil, err
	}
	return m.Schema, nil
}

// WriteShards writes the item batches as columnar shards, one file per
// batch, then merges sch into the dataset schema and records the shards
// in the manifest. Shards are written concurrently; items without a row
// identifier are assigned one in place.
func (d *Dataset) WriteShards(ctx context.Context, shards [][]nested.Item, sch *schema.Schema, prefix string) ([]manifest.ShardInfo, error) {
	infos := make([]manifest.ShardInfo, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	if d.opts.shardConcurrency > 0 {
		g.SetLimit(d.opts.shardConcurrency)
	}
	for i := range shards {
		g.Go(func() error {
			filename, n, err := columnar.WriteShard(
				gctx, d.store, shards[i], sch, prefix, i, len(shards),
				columnar.WithValidation(d.opts.validate),
				columnar.WithLogger(d.opts.logger.Logger),
			)
			d.opts.logger.LogShardWrite(gctx, filename, n, err)
			if err != nil {
				return err
			}
			infos[i] = manifest.ShardInfo{Filename: filename, NumItems: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m, err := d.manifest.Load(ctx)
	if err != nil {
		return nil, err
	}
	merged, err := schema.Merge([]*schema.Schema{m.Schema, schema.WithRowID(sch)})
	if err != nil {
		return nil, err
	}
	m.Schema = merged
	m.DataShards = append(m.DataShards, infos...)
	if err := d.manifest.Save(ctx, m); err != nil {
		return nil, err
	}

	return infos, nil
}

// WriteEmbeddings extracts the embedding vectors of one shard's items
// into an embedding index shard and records it in the manifest. rowIDs
// and items are parallel.
func (d *Dataset) WriteEmbeddings(ctx context.Context, rowIDs []string, items []nested.Item, prefix string, shardIndex, numShards int) (string, error) {
	filename, err := embedindex.Write(ctx, d.store, rowIDs, items, prefix, shardIndex, numShards)
	d.opts.logger.LogEmbeddingWrite(ctx, filename, len(items), err)
	if err != nil {
		return "", err
	}

	m, err := d.manifest.Load(ctx)
	if err != nil {
		return "", err
	}
	m.EmbeddingShards = append(m.EmbeddingShards, manifest.ShardInfo{Filename: filename, NumItems: len(items)})
	if err := d.manifest.Save(ctx, m); err != nil {
		return "", err
	}

	return filename, nil
}

// AttachSignal derives the schema of a signal's output over the source
// field, merges it into the dataset schema, and saves the manifest. The
// merged schema is returned.
func (d *Dataset) AttachSignal(ctx context.Context, output *schema.Field, signalKey string, source schema.Path) (*schema.Schema, error) {
	m, err := d.manifest.Load(ctx)
	if err != nil {
		return nil, err
	}

	signalSchema, err := schema.PlaceSignal(output, signalKey, source, m.Schema)
	if err != nil {
		d.opts.logger.LogSignal(ctx, signalKey, source.String(), err)
		return nil, err
	}
	merged, err := schema.Merge([]*schema.Schema{m.Schema, signalSchema})
	if err != nil {
		d.opts.logger.LogSignal(ctx, signalKey, source.String(), err)
		return nil, err
	}

	m.Schema = merged
	if err := d.manifest.Save(ctx, m); err != nil {
		return nil, err
	}

	d.opts.logger.LogSignal(ctx, signalKey, source.String(), nil)
	return merged, nil
}

// LoadVectorStore reads every embedding index shard in the manifest into
// a brute-force vector store.
func (d *Dataset) LoadVectorStore(ctx context.Context) (*vectorstore.BruteForce, error) {
	m, err := d.manifest.Load(ctx)
	if err != nil {
		return nil, err
	}

	vs := vectorstore.NewBruteForce()
	for _, info := range m.EmbeddingShards {
		idx, err := embedindex.Read(ctx, d.store, info.Filename)
		if err != nil {
			d.opts.logger.LogVectorLoad(ctx, len(m.EmbeddingShards), vs.Len(), err)
			return nil, err
		}
		if err := vs.Add(idx.Keys, idx.Embeddings); err != nil {
			d.opts.logger.LogVectorLoad(ctx, len(m.EmbeddingShards), vs.Len(), err)
			return nil, err
		}
	}

	d.opts.logger.LogVectorLoad(ctx, len(m.EmbeddingShards), vs.Len(), nil)
	return vs, nil
}
