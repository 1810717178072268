package nested

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkedItem() Item {
	return Item{
		"title": "doc one",
		"chunks": []any{
			map[string]any{"text": "alpha", "emb": []float32{1, 0}},
			map[string]any{"text": "beta", "emb": []float32{0, 1}},
		},
	}
}

func TestFlatten(t *testing.T) {
	t.Run("DefaultPredicate", func(t *testing.T) {
		got := Flatten(chunkedItem(), nil)
		// Object values in key order: chunks (emb, text per element), title.
		assert.Equal(t, []any{[]float32{1, 0}, "alpha", []float32{0, 1}, "beta", "doc one"}, got)
	})

	t.Run("EmbeddingPredicate", func(t *testing.T) {
		got := Flatten(chunkedItem(), IsEmbedding)
		assert.Equal(t, []any{[]float32{1, 0}, []float32{0, 1}}, got)
	})

	t.Run("VectorIsNotRecursedInto", func(t *testing.T) {
		// The predicate is authoritative: a raw vector is one leaf, not two.
		got := Flatten([]any{[]float32{1, 2}}, nil)
		assert.Equal(t, []any{[]float32{1, 2}}, got)
	})

	t.Run("ScalarIsItsOwnLeaf", func(t *testing.T) {
		assert.Equal(t, []any{42}, Flatten(42, nil))
	})
}

func TestUnflatten(t *testing.T) {
	t.Run("RoundTripShape", func(t *testing.T) {
		item := chunkedItem()
		flat := Flatten(item, nil)

		back, err := Unflatten(flat, item, nil)
		require.NoError(t, err)
		assert.Equal(t, item, back)
	})

	t.Run("ReplacesLeafValues", func(t *testing.T) {
		orig := []any{
			map[string]any{"text": "alpha"},
			map[string]any{"text": "beta"},
		}
		// Computed flat output differs in type from the original leaves.
		back, err := Unflatten([]any{float32(0.1), float32(0.9)}, orig, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{
			map[string]any{"text": float32(0.1)},
			map[string]any{"text": float32(0.9)},
		}, back)
	})

	t.Run("KeepsRejectedPrimitives", func(t *testing.T) {
		item := chunkedItem()
		flat := Flatten(item, IsEmbedding)
		require.Len(t, flat, 2)

		back, err := Unflatten([]any{[]float32{9, 9}, []float32{8, 8}}, item, IsEmbedding)
		require.NoError(t, err)
		want := Item{
			"title": "doc one",
			"chunks": []any{
				map[string]any{"text": "alpha", "emb": []float32{9, 9}},
				map[string]any{"text": "beta", "emb": []float32{8, 8}},
			},
		}
		assert.Equal(t, want, back)
	})

	t.Run("Exhausted", func(t *testing.T) {
		_, err := Unflatten([]any{"only one"}, chunkedItem(), nil)
		require.ErrorIs(t, err, ErrExhausted)
	})
}

func TestFlattenKeys(t *testing.T) {
	t.Run("PositionalCorrespondence", func(t *testing.T) {
		item := chunkedItem()
		flat := Flatten(item, nil)
		keys := FlattenKeys([]string{"row1"}, []Item{item}, nil)

		require.Len(t, keys, len(flat))
		assert.Equal(t, "row1.0", keys[0].String()) // chunks[0].emb
		assert.Equal(t, "row1.0", keys[1].String()) // chunks[0].text
		assert.Equal(t, "row1.1", keys[2].String())
		assert.Equal(t, "row1.1", keys[3].String())
		assert.Equal(t, "row1", keys[4].String()) // title
	})

	t.Run("EmbeddingPredicate", func(t *testing.T) {
		items := []Item{chunkedItem(), chunkedItem()}
		keys := FlattenKeys([]string{"a", "b"}, items, IsEmbedding)

		want := []LeafKey{
			{RowID: "a", Indices: []int{0}},
			{RowID: "a", Indices: []int{1}},
			{RowID: "b", Indices: []int{0}},
			{RowID: "b", Indices: []int{1}},
		}
		require.Len(t, keys, len(want))
		for i := range want {
			assert.True(t, keys[i].Equal(want[i]), "key %d: %v", i, keys[i])
		}
	})
}

func TestWrapInDicts(t *testing.T) {
	t.Run("SingleLevel", func(t *testing.T) {
		got := WrapInDicts([]any{int64(1), int64(2)}, [][]string{{"signal", "len"}})
		assert.Equal(t, []any{
			map[string]any{"signal": map[string]any{"len": int64(1)}},
			map[string]any{"signal": map[string]any{"len": int64(2)}},
		}, got)
	})

	t.Run("RepeatedLevel", func(t *testing.T) {
		got := WrapInDicts(
			[]any{[]any{float64(0.5)}},
			[][]string{{"chunks"}, {"score"}},
		)
		assert.Equal(t, []any{
			map[string]any{"chunks": []any{map[string]any{"score": 0.5}}},
		}, got)
	})

	t.Run("NaNBecomesNil", func(t *testing.T) {
		got := WrapInDicts([]any{math.NaN()}, [][]string{{"score"}})
		assert.Equal(t, []any{map[string]any{"score": nil}}, got)
	})

	t.Run("NilBecomesEmptyObject", func(t *testing.T) {
		got := WrapInDicts([]any{nil}, [][]string{{"chunks"}, {"score"}})
		assert.Equal(t, []any{map[string]any{}}, got)
	})
}

func TestReplaceEmbeddings(t *testing.T) {
	got := ReplaceEmbeddings(chunkedItem())
	want := map[string]any{
		"title": "doc one",
		"chunks": []any{
			map[string]any{"text": "alpha", "emb": nil},
			map[string]any{"text": "beta", "emb": nil},
		},
	}
	assert.Equal(t, want, got)
}
