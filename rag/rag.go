// Package rag turns semantic-search hits into retrieval windows and
// prompts for a text generator.
//
// The row-selection engine is a collaborator: anything that can report
// which rows match a query, chunk by chunk, satisfies Queryer. This
// package only owns the windowing around matched chunks and the prompt
// assembly.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fieldline-ai/fieldline/schema"
)

const (
	QueryTemplateVar   = "{query_str}"
	ContextTemplateVar = "{context_str}"

	DefaultChunkWindow = 1
	DefaultTopK        = 10
)

// DefaultPromptTemplate instructs the generator to answer from the
// retrieved context only.
const DefaultPromptTemplate = `Context information is below.
---------------------
` + ContextTemplateVar + `
---------------------
Given the context information and not prior knowledge, answer the query.
Query: ` + QueryTemplateVar + `
Answer: `

// Span is a half-open byte range inside a text value.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SpanMatch is one chunk of a row with its similarity to the query.
type SpanMatch struct {
	Span  Span
	Score float32
}

// RowMatches holds the full text of one row at the retrieval path and
// the scored chunk spans covering it, in chunk order.
type RowMatches struct {
	RowID string
	Text  string
	Spans []SpanMatch
}

// Queryer is the row-selection collaborator.
type Queryer interface {
	// HasEmbedding reports whether an embedding index named embedding
	// exists for the field at path.
	HasEmbedding(path schema.Path, embedding string) bool
	// SemanticSearch returns the rows whose chunks best match query,
	// each with all of its chunk spans scored against the query.
	SemanticSearch(ctx context.Context, path schema.Path, embedding, query string, limit int) ([]RowMatches, error)
}

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetrievalConfig holds the retrieval hyper-parameters.
type RetrievalConfig struct {
	// Embedding names the embedding index to search with.
	Embedding string
	// Path is the text field being retrieved from. It must already
	// have the embedding computed.
	Path schema.Path

	// ChunkWindow is the number of neighboring chunks included on each
	// side of a matched chunk. Defaults to DefaultChunkWindow.
	ChunkWindow int
	// TopK caps the number of retrieved chunks. Defaults to DefaultTopK.
	TopK int
	// SimilarityThreshold drops matches scoring below it.
	SimilarityThreshold float32
}

// RetrievalResult is one retrieved window of text.
type RetrievalResult struct {
	RowID string
	// Text is the matched chunk plus its window of neighbors.
	Text string
	// MatchSpans locate the matched chunk inside Text.
	MatchSpans []Span
}

// MissingEmbeddingError is returned when the retrieval path has no
// embedding index to search with.
type MissingEmbeddingError struct {
	Embedding string
	Path      schema.Path
}

func (e *MissingEmbeddingError) Error() string {
	return fmt.Sprintf(
		"embedding %q not found at path %q: compute the embedding for the field before running retrieval",
		e.Embedding, e.Path,
	)
}

type scoredSpan struct {
	row    int
	spanID int
	score  float32
}

// Retrieve runs a semantic search and returns the best-matching chunks,
// each widened to a window of neighboring chunks.
func Retrieve(ctx context.Context, q Queryer, query string, cfg RetrievalConfig) ([]RetrievalResult, error) {
	window := cfg.ChunkWindow
	if window <= 0 {
		window = DefaultChunkWindow
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	if !q.HasEmbedding(cfg.Path, cfg.Embedding) {
		return nil, &MissingEmbeddingError{Embedding: cfg.Embedding, Path: cfg.Path}
	}

	rows, err := q.SemanticSearch(ctx, cfg.Path, cfg.Embedding, query, topK)
	if err != nil {
		return nil, err
	}

	// Pool every chunk of every returned row and rank them globally.
	var scored []scoredSpan
	for ri, row := range rows {
		for si, m := range row.Spans {
			if m.Score < cfg.SimilarityThreshold {
				continue
			}
			scored = append(scored, scoredSpan{row: ri, spanID: si, score: m.Score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]RetrievalResult, 0, len(scored))
	for _, s := range scored {
		row := rows[s.row]

		startID := s.spanID - window
		if startID < 0 {
			startID = 0
		}
		endID := s.spanID + window + 1
		if endID > len(row.Spans) {
			endID = len(row.Spans)
		}

		windowStart := row.Spans[startID].Span.Start
		windowEnd := row.Spans[endID-1].Span.End

		match := row.Spans[s.spanID].Span
		results = append(results, RetrievalResult{
			RowID: row.RowID,
			Text:  row.Text[windowStart:windowEnd],
			MatchSpans: []Span{{
				Start: match.Start - windowStart,
				End:   match.End - windowStart,
			}},
		})
	}

	return results, nil
}

// BuildPrompt fills a prompt template with the query and the retrieved
// context. An empty template uses DefaultPromptTemplate.
func BuildPrompt(query string, results []RetrievalResult, template string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	context := strings.Join(texts, "\n")

	prompt := strings.ReplaceAll(template, QueryTemplateVar, query)
	return strings.ReplaceAll(prompt, ContextTemplateVar, context)
}

// Answer retrieves context for the query and asks the generator for a
// completion built from DefaultPromptTemplate.
func Answer(ctx context.Context, q Queryer, g Generator, query string, cfg RetrievalConfig) (string, error) {
	results, err := Retrieve(ctx, q, query, cfg)
	if err != nil {
		return "", err
	}

	return g.Generate(ctx, BuildPrompt(query, results, ""))
}
