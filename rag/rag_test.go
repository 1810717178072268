package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-ai/fieldline/schema"
)

type fakeQueryer struct {
	hasEmbedding bool
	rows         []RowMatches

	gotEmbedding string
	gotLimit     int
}

func (f *fakeQueryer) HasEmbedding(path schema.Path, embedding string) bool {
	return f.hasEmbedding
}

func (f *fakeQueryer) SemanticSearch(ctx context.Context, path schema.Path, embedding, query string, limit int) ([]RowMatches, error) {
	f.gotEmbedding = embedding
	f.gotLimit = limit
	return f.rows, nil
}

type fakeGenerator struct {
	gotPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return "generated answer", nil
}

// chunkedRow splits text into equal-length chunks and scores them.
func chunkedRow(rowID, text string, chunkLen int, scores []float32) RowMatches {
	row := RowMatches{RowID: rowID, Text: text}
	for i, score := range scores {
		row.Spans = append(row.Spans, SpanMatch{
			Span:  Span{Start: i * chunkLen, End: (i + 1) * chunkLen},
			Score: score,
		})
	}
	return row
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()
	cfg := RetrievalConfig{Embedding: "minilm", Path: schema.Path{"doc"}}

	t.Run("MissingEmbedding", func(t *testing.T) {
		q := &fakeQueryer{hasEmbedding: false}

		_, err := Retrieve(ctx, q, "query", cfg)
		var merr *MissingEmbeddingError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "minilm", merr.Embedding)
		assert.Contains(t, merr.Error(), "compute the embedding")
	})

	t.Run("WindowAroundMatch", func(t *testing.T) {
		// Five 4-byte chunks; the best match is chunk 2. With a window
		// of 1 the result covers chunks 1..3 and the match span is
		// reported relative to the window start.
		q := &fakeQueryer{
			hasEmbedding: true,
			rows: []RowMatches{
				chunkedRow("row1", "aaaabbbbccccddddeeee", 4, []float32{0.1, 0.2, 0.9, 0.3, 0.1}),
			},
		}

		results, err := Retrieve(ctx, q, "query", RetrievalConfig{
			Embedding:   "minilm",
			Path:        schema.Path{"doc"},
			ChunkWindow: 1,
			TopK:        1,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		assert.Equal(t, "row1", results[0].RowID)
		assert.Equal(t, "bbbbccccdddd", results[0].Text)
		assert.Equal(t, []Span{{Start: 4, End: 8}}, results[0].MatchSpans)
	})

	t.Run("WindowClampedAtEdges", func(t *testing.T) {
		q := &fakeQueryer{
			hasEmbedding: true,
			rows: []RowMatches{
				chunkedRow("row1", "aaaabbbbcccc", 4, []float32{0.9, 0.1, 0.8}),
			},
		}

		results, err := Retrieve(ctx, q, "query", RetrievalConfig{
			Embedding:   "minilm",
			Path:        schema.Path{"doc"},
			ChunkWindow: 1,
			TopK:        2,
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		// Match at chunk 0: window cannot extend left.
		assert.Equal(t, "aaaabbbb", results[0].Text)
		assert.Equal(t, []Span{{Start: 0, End: 4}}, results[0].MatchSpans)
		// Match at the last chunk: window cannot extend right.
		assert.Equal(t, "bbbbcccc", results[1].Text)
		assert.Equal(t, []Span{{Start: 4, End: 8}}, results[1].MatchSpans)
	})

	t.Run("RanksAcrossRows", func(t *testing.T) {
		q := &fakeQueryer{
			hasEmbedding: true,
			rows: []RowMatches{
				chunkedRow("row1", "aaaabbbb", 4, []float32{0.2, 0.5}),
				chunkedRow("row2", "ccccdddd", 4, []float32{0.9, 0.1}),
			},
		}

		results, err := Retrieve(ctx, q, "query", RetrievalConfig{
			Embedding:   "minilm",
			Path:        schema.Path{"doc"},
			ChunkWindow: 0,
			TopK:        2,
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "row2", results[0].RowID)
		assert.Equal(t, "row1", results[1].RowID)
	})

	t.Run("SimilarityThreshold", func(t *testing.T) {
		q := &fakeQueryer{
			hasEmbedding: true,
			rows: []RowMatches{
				chunkedRow("row1", "aaaabbbb", 4, []float32{0.9, 0.2}),
			},
		}

		results, err := Retrieve(ctx, q, "query", RetrievalConfig{
			Embedding:           "minilm",
			Path:                schema.Path{"doc"},
			SimilarityThreshold: 0.5,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []Span{{Start: 0, End: 4}}, results[0].MatchSpans)
	})

	t.Run("Defaults", func(t *testing.T) {
		q := &fakeQueryer{hasEmbedding: true}

		_, err := Retrieve(ctx, q, "query", cfg)
		require.NoError(t, err)
		assert.Equal(t, DefaultTopK, q.gotLimit)
	})
}

func TestBuildPrompt(t *testing.T) {
	results := []RetrievalResult{
		{RowID: "row1", Text: "first chunk"},
		{RowID: "row2", Text: "second chunk"},
	}

	t.Run("DefaultTemplate", func(t *testing.T) {
		prompt := BuildPrompt("what is it?", results, "")
		assert.Contains(t, prompt, "first chunk\nsecond chunk")
		assert.Contains(t, prompt, "Query: what is it?")
		assert.NotContains(t, prompt, QueryTemplateVar)
		assert.NotContains(t, prompt, ContextTemplateVar)
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		prompt := BuildPrompt("q", results, "Q={query_str} C={context_str}")
		assert.Equal(t, "Q=q C=first chunk\nsecond chunk", prompt)
	})
}

func TestAnswer(t *testing.T) {
	q := &fakeQueryer{
		hasEmbedding: true,
		rows: []RowMatches{
			chunkedRow("row1", "relevant context", 16, []float32{0.9}),
		},
	}
	g := &fakeGenerator{}

	answer, err := Answer(context.Background(), q, g, "what is it?", RetrievalConfig{
		Embedding: "minilm",
		Path:      schema.Path{"doc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated answer", answer)
	assert.Contains(t, g.gotPrompt, "relevant context")
	assert.Contains(t, g.gotPrompt, "what is it?")
}
