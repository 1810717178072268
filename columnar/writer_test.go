package columnar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-ai/fieldline/blobstore"
	"github.com/fieldline-ai/fieldline/nested"
	"github.com/fieldline-ai/fieldline/schema"
)

func writerSchema() *schema.Schema {
	return schema.New(map[string]*schema.Field{
		schema.RowIDColumn: schema.Scalar(schema.DataTypeString),
		"title":            schema.Scalar(schema.DataTypeString),
		"chunks": schema.List(schema.Object(map[string]*schema.Field{
			"text": schema.Scalar(schema.DataTypeString),
			"emb":  schema.Scalar(schema.DataTypeEmbedding),
		})),
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "foo-00003-of-00010.parquet", Filename("foo", 3, 10))
}

func TestWriteShard(t *testing.T) {
	ctx := context.Background()

	t.Run("AssignsRowIDs", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		items := []nested.Item{
			{"title": "one"},
			{"title": "two"},
		}

		name, count, err := WriteShard(ctx, store, items, writerSchema(), "data", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "data-00000-of-00001.parquet", name)
		assert.Equal(t, 2, count)

		a, okA := items[0][schema.RowIDColumn].(string)
		b, okB := items[1][schema.RowIDColumn].(string)
		require.True(t, okA)
		require.True(t, okB)
		assert.NotEmpty(t, a)
		assert.NotEmpty(t, b)
		assert.NotEqual(t, a, b)

		// The shard exists once Put has returned.
		blob, err := store.Open(ctx, name)
		require.NoError(t, err)
		assert.Positive(t, blob.Size())
		require.NoError(t, blob.Close())
	})

	t.Run("PreservesExistingRowID", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		items := []nested.Item{{schema.RowIDColumn: "fixed-id", "title": "one"}}

		_, _, err := WriteShard(ctx, store, items, writerSchema(), "data", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", items[0][schema.RowIDColumn])
	})

	t.Run("WritesNestedItems", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		items := []nested.Item{{
			"title": "one",
			"chunks": []any{
				map[string]any{"text": "alpha", "emb": []float32{1, 0}},
			},
		}}

		_, count, err := WriteShard(ctx, store, items, writerSchema(), "data", 0, 1, WithValidation(true))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("ValidationSurfacesItem", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		items := []nested.Item{{"bogus": "field"}}

		_, _, err := WriteShard(ctx, store, items, writerSchema(), "data", 0, 1, WithValidation(true))
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Reason, "bogus")
		assert.Equal(t, items[0], verr.Item)
	})

	t.Run("ValidationIsOptIn", func(t *testing.T) {
		// Without validation the structural check is skipped entirely; the
		// unknown field is simply not a schema column and encoding fails at
		// the parquet layer instead of producing a ValidationError.
		store := blobstore.NewMemoryStore()
		items := []nested.Item{{"title": "fine"}}

		_, _, err := WriteShard(ctx, store, items, writerSchema(), "data", 0, 1)
		require.NoError(t, err)
	})
}

func TestValidate(t *testing.T) {
	sch := writerSchema()

	tests := []struct {
		name    string
		item    nested.Item
		wantErr bool
	}{
		{"Conformant", nested.Item{"title": "ok", "chunks": []any{map[string]any{"text": "a"}}}, false},
		{"SparseIsFine", nested.Item{"title": nil}, false},
		{"UnknownField", nested.Item{"nope": 1}, true},
		{"ListWhereScalar", nested.Item{"title": []any{"x"}}, true},
		{"ScalarWhereList", nested.Item{"chunks": "not a list"}, true},
		{"WrongScalarType", nested.Item{"title": 42}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.item, sch)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
