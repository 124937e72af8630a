package extraction

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/skill-profiler/internal/taxonomy"
	"github.com/jonathan/skill-profiler/internal/types"
)

const (
	// semanticThreshold is the minimum cosine similarity between a text
	// chunk and a skill embedding for a detection to be emitted.
	semanticThreshold = 0.5

	// semanticChunkSize is the target chunk length in characters. Chunks
	// break on sentence boundaries where possible.
	semanticChunkSize = 200

	// semanticEvidenceLen caps the chunk prefix quoted as evidence.
	semanticEvidenceLen = 100
)

// Embedder is the embedding capability the semantic pass needs. Satisfied by
// embedding.GeminiEmbedder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// SemanticExtractor infers skills from meaning rather than wording by
// comparing text chunks against precomputed skill embeddings. It is the only
// pass that needs network access, so it is constructed separately from
// Extractor and callers may skip it entirely.
type SemanticExtractor struct {
	tax      *taxonomy.Taxonomy
	embedder Embedder

	skills     []string
	embeddings [][]float32
}

// NewSemanticExtractor embeds every taxonomy skill once up front. The
// per-skill vectors are reused across all Extract calls.
func NewSemanticExtractor(ctx context.Context, tax *taxonomy.Taxonomy, embedder Embedder) (*SemanticExtractor, error) {
	if tax == nil {
		return nil, fmt.Errorf("semantic extractor requires a taxonomy")
	}
	if embedder == nil {
		return nil, fmt.Errorf("semantic extractor requires an embedder")
	}

	skills := tax.Skills()
	embeddings, err := embedder.EmbedBatch(ctx, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to embed taxonomy skills: %w", err)
	}
	if len(embeddings) != len(skills) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d skills", len(embeddings), len(skills))
	}

	return &SemanticExtractor{
		tax:        tax,
		embedder:   embedder,
		skills:     skills,
		embeddings: embeddings,
	}, nil
}

// Extract chunks the text, embeds each chunk, and emits a detection for
// every skill whose best chunk similarity clears the threshold. Confidence
// is the similarity itself, so semantic detections are inherently softer
// than explicit ones even before method weighting.
func (se *SemanticExtractor) Extract(ctx context.Context, text, source string) ([]types.Detection, error) {
	chunks := chunkSentences(text, semanticChunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	chunkEmbeddings, err := se.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text chunks: %w", err)
	}

	var detections []types.Detection
	for i, skill := range se.skills {
		best := -1.0
		bestChunk := ""
		for j, chunkVec := range chunkEmbeddings {
			sim := cosineSimilarity(se.embeddings[i], chunkVec)
			if sim > best {
				best = sim
				bestChunk = chunks[j]
			}
		}
		if best < semanticThreshold {
			continue
		}

		category, _ := se.tax.CategoryOf(skill)
		detections = append(detections, types.Detection{
			SkillName:  skill,
			Category:   category,
			Method:     types.MethodSemantic,
			Confidence: best,
			Evidence:   []string{fmt.Sprintf("Inferred from: %s...", truncate(bestChunk, semanticEvidenceLen))},
			Source:     source,
		})
	}

	return detections, nil
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// chunkSentences splits text on sentence boundaries and packs sentences into
// chunks of roughly size characters. A single sentence longer than size
// becomes its own chunk rather than being split mid-sentence.
func chunkSentences(text string, size int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, strings.TrimSpace(text[last:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[last:]))
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
