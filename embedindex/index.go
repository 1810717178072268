package embedindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldline-ai/fieldline/blobstore"
	"github.com/fieldline-ai/fieldline/internal/shardname"
	"github.com/fieldline-ai/fieldline/nested"
)

// Ext is the embedding shard file extension.
const Ext = "vidx"

// Filename returns the deterministic name of embedding shard shardIndex out
// of numShards.
func Filename(prefix string, shardIndex, numShards int) string {
	return shardname.Filename(prefix, shardIndex, numShards, Ext)
}

// Index is one shard's (leaf key, vector) pairs. Keys and Embeddings are
// parallel: Embeddings[i] is the vector for Keys[i].
type Index struct {
	Keys       []nested.LeafKey
	Embeddings [][]float32
}

// MissingIndexError indicates an expected embedding shard does not exist on
// disk, i.e. the enrichment producing it has not been run.
type MissingIndexError struct {
	Filename string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("embedding index %q does not exist; compute the embedding signal before reading it", e.Filename)
}

// Write filters items down to the leaves classified as embeddings, pairs each
// with its leaf key, and serializes one shard. rowIDs and items are parallel.
// It returns the shard filename for caller-side bookkeeping.
func Write(ctx context.Context, store blobstore.BlobStore, rowIDs []string, items []nested.Item, prefix string, shardIndex, numShards int) (string, error) {
	keys := nested.FlattenKeys(rowIDs, items, nested.IsEmbedding)

	var vectors [][]float32
	for _, item := range items {
		for _, v := range nested.Flatten(item, nested.IsEmbedding) {
			vectors = append(vectors, v.([]float32))
		}
	}

	dim := 0
	for i, vec := range vectors {
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return "", fmt.Errorf("embedding at %s has dimension %d, want %d", keys[i], len(vec), dim)
		}
	}

	data, err := encode(keys, vectors, dim)
	if err != nil {
		return "", err
	}

	name := Filename(prefix, shardIndex, numShards)
	if err := store.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("write embedding index %q: %w", name, err)
	}
	return name, nil
}

// Read loads a whole embedding shard. A missing shard fails with
// *MissingIndexError.
func Read(ctx context.Context, store blobstore.BlobStore, filename string) (*Index, error) {
	blob, err := store.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, &MissingIndexError{Filename: filename}
		}
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}
	return decode(data)
}
