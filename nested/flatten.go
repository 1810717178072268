package nested

import (
	"errors"
	"fmt"
	"sort"
)

// Item is one nested document instance.
type Item = map[string]any

// LeafFunc decides whether a value is a leaf. The predicate is authoritative:
// a value it accepts is never recursed into, whatever its type.
type LeafFunc func(v any) bool

// ErrExhausted is returned by Unflatten when the flat input runs out before
// the original structure's leaves do.
var ErrExhausted = errors.New("flat values exhausted before original structure")

// IsPrimitive is the default leaf predicate: objects and lists are structure,
// everything else (strings, numbers, byte slices, raw vectors, nil) is a leaf.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

// IsEmbedding reports whether v is a raw embedding vector.
func IsEmbedding(v any) bool {
	_, ok := v.([]float32)
	return ok
}

// Flatten produces the finite sequence of leaf values of v under isLeaf, in
// the deterministic traversal order shared by FlattenKeys and Unflatten. A
// primitive that the predicate rejects is dropped. A nil isLeaf means
// IsPrimitive.
func Flatten(v any, isLeaf LeafFunc) []any {
	if isLeaf == nil {
		isLeaf = IsPrimitive
	}
	var out []any
	flattenInto(v, isLeaf, &out)
	return out
}

func flattenInto(v any, isLeaf LeafFunc, out *[]any) {
	if isLeaf(v) {
		*out = append(*out, v)
		return
	}
	switch t := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(t) {
			flattenInto(t[k], isLeaf, out)
		}
	case []any:
		for _, e := range t {
			flattenInto(e, isLeaf, out)
		}
	}
	// Neither a leaf nor structure: dropped.
}

// Unflatten is the exact structural inverse of Flatten: it walks original's
// shape, consuming one flat value per leaf the predicate accepts, and rebuilds
// the same nesting depth, object keys and list lengths. Primitives the
// predicate rejects are kept from original unchanged, so the result is always
// shape-identical to original even when the flat values differ in type from
// the original leaves.
func Unflatten(flat []any, original any, isLeaf LeafFunc) (any, error) {
	if isLeaf == nil {
		isLeaf = IsPrimitive
	}
	it := &valueIter{values: flat}
	return unflatten(it, original, isLeaf)
}

type valueIter struct {
	values []any
	pos    int
}

func (it *valueIter) next() (any, error) {
	if it.pos >= len(it.values) {
		return nil, ErrExhausted
	}
	v := it.values[it.pos]
	it.pos++
	return v, nil
}

func unflatten(it *valueIter, original any, isLeaf LeafFunc) (any, error) {
	if isLeaf(original) {
		return it.next()
	}
	switch t := original.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for _, k := range sortedKeys(t) {
			v, err := unflatten(it, t[k], isLeaf)
			if err != nil {
				return nil, fmt.Errorf("at key %q: %w", k, err)
			}
			out[k] = v
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			v, err := unflatten(it, e, isLeaf)
			if err != nil {
				return nil, fmt.Errorf("at index %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	default:
		// A primitive the predicate rejected: Flatten dropped it, keep the
		// original value in place.
		return original, nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
