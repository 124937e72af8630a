// Package vectorstore implements an in-memory vector index over embedded
// text fragments: append-only adds, exact nearest-neighbor search by
// Euclidean distance, and metadata post-filtering. The index lives and dies
// with the process; there is no persistence.
package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Embedder is the embedding capability the store needs. Satisfied by
// embedding.GeminiEmbedder; tests supply deterministic fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Result is one search hit. Similarity is 1/(1+distance), a monotonically
// decreasing transform of distance, not a probability.
type Result struct {
	Text       string
	Metadata   map[string]any
	Distance   float64
	Similarity float64
}

// Stats describes the index contents.
type Stats struct {
	TotalDocuments int
	Dimension      int
	IsIndexed      bool
}

// Store is an in-memory flat L2 index. Not internally synchronized; callers
// sharing a store across goroutines must serialize access externally.
type Store struct {
	embedder  Embedder
	dimension int
	vectors   [][]float32
	texts     []string
	metadatas []map[string]any
}

// New creates an empty store bound to an embedder. The vector dimension is
// fixed for the store's lifetime by the embedder's model.
func New(embedder Embedder) (*Store, error) {
	if embedder == nil {
		return nil, &ValidationError{Message: "embedder is required"}
	}
	return &Store{
		embedder:  embedder,
		dimension: embedder.Dimension(),
	}, nil
}

// AddDocuments embeds texts and appends them to the index alongside their
// metadata. texts and metadatas must be the same length. Additive: calling
// twice appends rather than replaces.
func (s *Store) AddDocuments(ctx context.Context, texts []string, metadatas []map[string]any) error {
	if len(texts) != len(metadatas) {
		return &ValidationError{Message: fmt.Sprintf(
			"texts and metadatas must have same length, got %d and %d", len(texts), len(metadatas))}
	}
	if len(texts) == 0 {
		return nil
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return &EmbedError{Message: "failed to embed documents", Cause: err}
	}

	for i, vec := range vectors {
		if len(vec) != s.dimension {
			return &EmbedError{Message: fmt.Sprintf(
				"embedding %d has dimension %d, index expects %d", i, len(vec), s.dimension)}
		}
	}

	s.vectors = append(s.vectors, vectors...)
	s.texts = append(s.texts, texts...)
	s.metadatas = append(s.metadatas, metadatas...)

	return nil
}

// Search returns up to k nearest documents to the query by Euclidean
// distance, ordered ascending by distance. An empty index yields an empty
// result, not an error. filter is applied as a post-filter over the raw
// nearest neighbors: 2k candidates are retrieved first, then filtered,
// short-circuiting once k pass.
func (s *Store) Search(ctx context.Context, query string, k int, filter map[string]any) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Message: "query text is empty"}
	}
	if k <= 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("k must be positive, got %d", k)}
	}
	if len(s.vectors) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &EmbedError{Message: "failed to embed query", Cause: err}
	}
	if len(queryVec) != s.dimension {
		return nil, &EmbedError{Message: fmt.Sprintf(
			"query embedding has dimension %d, index expects %d", len(queryVec), s.dimension)}
	}

	// Rank everything, then walk the top candidates
	type candidate struct {
		index    int
		distance float64
	}
	candidates := make([]candidate, len(s.vectors))
	for i, vec := range s.vectors {
		candidates[i] = candidate{index: i, distance: euclideanDistance(queryVec, vec)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	prefetch := 2 * k
	if prefetch > len(candidates) {
		prefetch = len(candidates)
	}

	results := make([]Result, 0, k)
	for _, c := range candidates[:prefetch] {
		if filter != nil && !matchesFilter(s.metadatas[c.index], filter) {
			continue
		}
		results = append(results, Result{
			Text:       s.texts[c.index],
			Metadata:   s.metadatas[c.index],
			Distance:   c.distance,
			Similarity: 1 / (1 + c.distance),
		})
		if len(results) >= k {
			break
		}
	}

	return results, nil
}

// Clear resets the store to empty. Used for full rebuilds; there is no
// removal by id.
func (s *Store) Clear() {
	s.vectors = nil
	s.texts = nil
	s.metadatas = nil
}

// Stats returns index statistics.
func (s *Store) Stats() Stats {
	return Stats{
		TotalDocuments: len(s.texts),
		Dimension:      s.dimension,
		IsIndexed:      len(s.texts) > 0,
	}
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
