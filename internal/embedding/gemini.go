// Package embedding provides the embedder client for turning text into
// dense vectors. One concrete implementation exists, backed by the Gemini
// embedding model; consumers depend on their own small interface rather
// than this package's types.
package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// Gemini embedding model constants.
const (
	// DefaultModel is the embedding model used when none is specified
	DefaultModel = "text-embedding-004"
	// ModelDimension is the vector dimension of text-embedding-004
	ModelDimension = 768

	// batchSize caps texts per upstream batch request
	batchSize = 100
	// maxConcurrentBatches bounds parallel batch requests during indexing
	maxConcurrentBatches = 4
)

// GeminiEmbedder embeds text via the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder using the default model.
func NewGeminiEmbedder(ctx context.Context, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: DefaultModel}, nil
}

// Dimension returns the fixed vector dimension of the model.
func (e *GeminiEmbedder) Dimension() int {
	return ModelDimension
}

// Embed embeds a single text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := e.client.EmbeddingModel(e.model)

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	return resp.Embedding.Values, nil
}

// EmbedBatch embeds many texts, splitting them into upstream batch requests
// that run with bounded concurrency. Used for one-shot index construction;
// results are returned in input order.
func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		start, end := start, end
		g.Go(func() error {
			em := e.client.EmbeddingModel(e.model)
			batch := em.NewBatch()
			for _, text := range texts[start:end] {
				batch.AddContent(genai.Text(text))
			}

			resp, err := em.BatchEmbedContents(gctx, batch)
			if err != nil {
				return fmt.Errorf("failed to embed batch [%d:%d]: %w", start, end, err)
			}
			if len(resp.Embeddings) != end-start {
				return fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), end-start)
			}

			for i, emb := range resp.Embeddings {
				if emb == nil || len(emb.Values) == 0 {
					return fmt.Errorf("empty embedding at index %d", start+i)
				}
				vectors[start+i] = emb.Values
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// Close releases resources held by the client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
