package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-ai/fieldline/nested"
)

func key(rowID string, indices ...int) nested.LeafKey {
	return nested.LeafKey{RowID: rowID, Indices: indices}
}

func seedStore(t *testing.T) *BruteForce {
	t.Helper()
	b := NewBruteForce()
	require.NoError(t, b.Add(
		[]nested.LeafKey{key("A"), key("B"), key("C")},
		[][]float32{{1, 0}, {0, 1}, {1, 1}},
	))
	return b
}

func TestBruteForceAdd(t *testing.T) {
	t.Run("CountMismatch", func(t *testing.T) {
		b := NewBruteForce()
		err := b.Add([]nested.LeafKey{key("A")}, [][]float32{{1, 0}, {0, 1}})

		var mismatch *DimensionMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 1, mismatch.Expected)
		assert.Equal(t, 2, mismatch.Actual)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		b := seedStore(t)
		err := b.Add([]nested.LeafKey{key("D")}, [][]float32{{1, 2, 3}})

		var mismatch *DimensionMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Expected)
	})

	t.Run("UpsertDoesNotGrow", func(t *testing.T) {
		b := seedStore(t)
		require.NoError(t, b.Add([]nested.LeafKey{key("A")}, [][]float32{{0, 1}}))
		assert.Equal(t, 3, b.Len())
	})
}

func TestBruteForceGet(t *testing.T) {
	b := seedStore(t)

	t.Run("RequestOrder", func(t *testing.T) {
		got, err := b.Get([]nested.LeafKey{key("C"), key("A")})
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1, 1}, {1, 0}}, got)
	})

	t.Run("KeyNotFound", func(t *testing.T) {
		_, err := b.Get([]nested.LeafKey{key("A"), key("Z")})

		var notFound *KeyNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Z", notFound.Key.RowID)
	})
}

func TestBruteForceTopK(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		b := seedStore(t)
		got, err := b.TopK([]float32{1, 0}, 1, nil)
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.True(t, got[0].Key.Equal(key("A")))
		assert.InDelta(t, 1.0, got[0].Score, 1e-5)
	})

	t.Run("UpsertOverwrites", func(t *testing.T) {
		b := seedStore(t)
		require.NoError(t, b.Add([]nested.LeafKey{key("A")}, [][]float32{{0, 1}}))

		got, err := b.TopK([]float32{1, 0}, 1, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.False(t, got[0].Key.Equal(key("A")))
	})

	t.Run("SubsetRestriction", func(t *testing.T) {
		b := seedStore(t)
		got, err := b.TopK([]float32{1, 0}, 3, []nested.LeafKey{key("B"), key("C")})
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.True(t, got[0].Key.Equal(key("C")))
		assert.True(t, got[1].Key.Equal(key("B")))
	})

	t.Run("UnknownSubsetKeysIgnored", func(t *testing.T) {
		b := seedStore(t)
		got, err := b.TopK([]float32{1, 0}, 3, []nested.LeafKey{key("A"), key("Z")})
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.True(t, got[0].Key.Equal(key("A")))
	})

	t.Run("KLargerThanCandidates", func(t *testing.T) {
		b := seedStore(t)
		got, err := b.TopK([]float32{1, 0}, 100, nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("TieBreakByInsertionOrder", func(t *testing.T) {
		b := NewBruteForce()
		require.NoError(t, b.Add(
			[]nested.LeafKey{key("first"), key("second")},
			[][]float32{{1, 0}, {1, 0}},
		))

		got, err := b.TopK([]float32{1, 0}, 2, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].Key.Equal(key("first")))
		assert.True(t, got[1].Key.Equal(key("second")))
	})

	t.Run("InvalidK", func(t *testing.T) {
		b := seedStore(t)
		_, err := b.TopK([]float32{1, 0}, 0, nil)
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("QueryDimensionMismatch", func(t *testing.T) {
		b := seedStore(t)
		_, err := b.TopK([]float32{1, 0, 0}, 1, nil)

		var mismatch *DimensionMismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}
