// Package vectorstore provides queryable indexes over per-leaf embeddings.
//
// The Store contract is a capability set, not a single implementation: exact
// brute-force scanning is sufficient at the data scales this module targets,
// but an approximate index can satisfy the same interface. Only ordering and
// determinism are fixed, not the algorithm.
package vectorstore

import "github.com/fieldline-ai/fieldline/nested"

// SearchResult is one scored match.
type SearchResult struct {
	Key   nested.LeafKey
	Score float32
}

// Store stores and retrieves keyed embedding vectors.
type Store interface {
	// Add upserts the given keyed embeddings: a key already present has its
	// vector overwritten. keys and vectors are parallel; a length or
	// dimension disagreement fails with *DimensionMismatchError.
	Add(keys []nested.LeafKey, vectors [][]float32) error

	// Get returns the vectors for exactly the requested keys, in the same
	// order. Any absent key fails with *KeyNotFoundError.
	Get(keys []nested.LeafKey) ([][]float32, error)

	// TopK returns up to k (key, score) pairs ordered by descending
	// similarity. If keys is non-nil the candidate set is restricted to that
	// subset. k larger than the candidate set returns all candidates.
	TopK(query []float32, k int, keys []nested.LeafKey) ([]SearchResult, error)
}
