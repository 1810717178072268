package vectorstore

import (
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/fieldline-ai/fieldline/metric"
	"github.com/fieldline-ai/fieldline/nested"
)

// BruteForce is an exact, in-memory Store using a full cosine-similarity scan.
//
// Vectors keep the ordinal of their first insertion across upserts, which is
// what makes TopK tie-breaking deterministic: equal scores order by
// first-inserted key.
//
// BruteForce is not safe for concurrent use; callers needing concurrency must
// add their own synchronization.
type BruteForce struct {
	dim      int
	keys     []nested.LeafKey
	vectors  [][]float32
	ordinals map[string]uint32
}

// NewBruteForce creates an empty brute-force store. The vector dimension is
// fixed by the first Add.
func NewBruteForce() *BruteForce {
	return &BruteForce{ordinals: make(map[string]uint32)}
}

// Len returns the number of stored vectors.
func (b *BruteForce) Len() int {
	return len(b.keys)
}

// Add upserts keyed embeddings.
func (b *BruteForce) Add(keys []nested.LeafKey, vectors [][]float32) error {
	if len(keys) != len(vectors) {
		return &DimensionMismatchError{Expected: len(keys), Actual: len(vectors)}
	}
	for i, vec := range vectors {
		if b.dim == 0 {
			b.dim = len(vec)
		}
		if len(vec) != b.dim {
			return &DimensionMismatchError{Expected: b.dim, Actual: len(vec)}
		}
		encoded := keys[i].String()
		if ord, ok := b.ordinals[encoded]; ok {
			b.vectors[ord] = slices.Clone(vec)
			continue
		}
		b.ordinals[encoded] = uint32(len(b.keys))
		b.keys = append(b.keys, keys[i])
		b.vectors = append(b.vectors, slices.Clone(vec))
	}
	return nil
}

// Get returns the vectors for the requested keys, in request order.
func (b *BruteForce) Get(keys []nested.LeafKey) ([][]float32, error) {
	out := make([][]float32, len(keys))
	for i, key := range keys {
		ord, ok := b.ordinals[key.String()]
		if !ok {
			return nil, &KeyNotFoundError{Key: key}
		}
		out[i] = b.vectors[ord]
	}
	return out, nil
}

// TopK scans all candidates and returns the k best by cosine similarity.
// Keys absent from the store simply do not become candidates.
func (b *BruteForce) TopK(query []float32, k int, keys []nested.LeafKey) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(b.vectors) == 0 {
		return nil, nil
	}
	if len(query) != b.dim {
		return nil, &DimensionMismatchError{Expected: b.dim, Actual: len(query)}
	}

	var allow *roaring.Bitmap
	if keys != nil {
		allow = roaring.New()
		for _, key := range keys {
			if ord, ok := b.ordinals[key.String()]; ok {
				allow.Add(ord)
			}
		}
	}

	type candidate struct {
		ord   uint32
		score float32
	}
	candidates := make([]candidate, 0, len(b.vectors))
	for ord := range b.vectors {
		if allow != nil && !allow.Contains(uint32(ord)) {
			continue
		}
		// Dimensions were checked on Add and above.
		score, _ := metric.CosineSimilarity(query, b.vectors[ord])
		candidates = append(candidates, candidate{ord: uint32(ord), score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].ord < candidates[j].ord
	})

	if k < len(candidates) {
		candidates = candidates[:k]
	}
	results := make([]SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = SearchResult{Key: b.keys[c.ord], Score: c.score}
	}
	return results, nil
}
