package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/prompts"
	"github.com/jonathan/skill-profiler/internal/types"
	"github.com/jonathan/skill-profiler/internal/vectorstore"
)

const (
	// defaultTopK is the number of fragments retrieved per question when the
	// caller does not ask for a specific count.
	defaultTopK = 5

	// answerTemperature keeps generation close to the retrieved context.
	answerTemperature = 0.3

	// historyTurns is how many previous question/answer exchanges are
	// replayed into the prompt.
	historyTurns = 3

	// historyTruncate caps each replayed message, in characters.
	historyTruncate = 150

	// citationSnippetLen caps the quoted fragment text in a citation.
	citationSnippetLen = 200
)

// noContextAnswer is returned without calling the LLM when retrieval finds
// nothing relevant.
const noContextAnswer = "No relevant information found in candidate profile."

// Citation points an answer back at an indexed fragment. Type-specific
// fields are zero unless Type matches.
type Citation struct {
	Type       string  `json:"type"`
	Snippet    string  `json:"snippet"`
	Similarity float64 `json:"similarity"`
	SkillName  string  `json:"skill_name,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	RepoName   string  `json:"repo_name,omitempty"`
	ChunkID    int     `json:"chunk_id,omitempty"`
}

// Answer is the result of one question: generated text plus the fragments
// that grounded it.
type Answer struct {
	Text      string     `json:"answer"`
	Citations []Citation `json:"citations,omitempty"`
}

// Stats describes a QA session.
type Stats struct {
	SessionID         string
	IndexedDocuments  int
	ConversationTurns int
}

// System is one question-answering session over a single profile. The index
// is built once at construction; conversation state accumulates across
// Query calls until ResetConversation. Not safe for concurrent use.
type System struct {
	store     *vectorstore.Store
	generator llm.Generator
	sessionID string
	history   []types.ConversationTurn
}

// New indexes the profile and returns a ready session. A profile that
// produces no fragments is a setup error: there would be nothing to ground
// answers in.
func New(ctx context.Context, profile *types.SkillProfile, embedder vectorstore.Embedder, generator llm.Generator) (*System, error) {
	if generator == nil {
		return nil, &SetupError{Message: "generator is required"}
	}

	fragments := BuildFragments(profile)
	if len(fragments) == 0 {
		return nil, &SetupError{Message: "profile contains no indexable content"}
	}

	store, err := vectorstore.New(embedder)
	if err != nil {
		return nil, &SetupError{Message: "failed to create vector store", Cause: err}
	}

	texts := make([]string, len(fragments))
	metadatas := make([]map[string]any, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
		metadatas[i] = f.Metadata
	}
	if err := store.AddDocuments(ctx, texts, metadatas); err != nil {
		return nil, &SetupError{Message: "failed to index profile", Cause: err}
	}

	return &System{
		store:     store,
		generator: generator,
		sessionID: uuid.NewString(),
	}, nil
}

// Query answers a question from the indexed profile. k <= 0 selects the
// default retrieval count. Retrieval failures are errors; generation
// failures degrade into the answer text so an interactive session survives
// a flaky upstream.
func (s *System) Query(ctx context.Context, question string, k int) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &QueryError{Message: "question is empty"}
	}
	if k <= 0 {
		k = defaultTopK
	}

	results, err := s.store.Search(ctx, question, k, nil)
	if err != nil {
		return nil, &QueryError{Message: "retrieval failed", Cause: err}
	}
	if len(results) == 0 {
		// Nothing to ground an answer in. The conversation is left untouched
		// so a follow-up question does not inherit a dead turn.
		return &Answer{Text: noContextAnswer}, nil
	}

	userPrompt := prompts.Format(prompts.MustGet("qa.json", "answer-question-user"), map[string]string{
		"Context":  formatContext(results),
		"History":  s.formatHistory(),
		"Question": question,
	})

	text, genErr := s.generator.Generate(ctx, prompts.MustGet("qa.json", "answer-question-system"), userPrompt, answerTemperature)
	if genErr != nil {
		text = fmt.Sprintf("Error generating response: %v\n\nPlease check your API key configuration.", genErr)
	}

	s.history = append(s.history,
		types.ConversationTurn{Role: types.RoleUser, Content: question},
		types.ConversationTurn{Role: types.RoleAssistant, Content: text},
	)

	return &Answer{Text: text, Citations: buildCitations(results)}, nil
}

// Verify checks a claim about the candidate against the indexed profile and
// returns a verdict with the fragments consulted. Verification does not
// touch the conversation.
func (s *System) Verify(ctx context.Context, claim string) (*Answer, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, &QueryError{Message: "claim is empty"}
	}

	results, err := s.store.Search(ctx, claim, defaultTopK, nil)
	if err != nil {
		return nil, &QueryError{Message: "retrieval failed", Cause: err}
	}
	if len(results) == 0 {
		return &Answer{Text: "NOT SUPPORTED\nNot found in candidate profile"}, nil
	}

	userPrompt := prompts.Format(prompts.MustGet("verification.json", "verify-claim-user"), map[string]string{
		"Context": formatContext(results),
		"Claim":   claim,
	})

	text, genErr := s.generator.Generate(ctx, prompts.MustGet("verification.json", "verify-claim-system"), userPrompt, answerTemperature)
	if genErr != nil {
		text = fmt.Sprintf("Error generating response: %v\n\nPlease check your API key configuration.", genErr)
	}

	return &Answer{Text: text, Citations: buildCitations(results)}, nil
}

// ResetConversation discards accumulated history. The index is unaffected.
func (s *System) ResetConversation() {
	s.history = nil
}

// History returns a copy of the conversation so far.
func (s *System) History() []types.ConversationTurn {
	out := make([]types.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Stats returns session statistics.
func (s *System) Stats() Stats {
	return Stats{
		SessionID:         s.sessionID,
		IndexedDocuments:  s.store.Stats().TotalDocuments,
		ConversationTurns: len(s.history) / 2,
	}
}

// QuickQuestions returns the canned starter questions in stable order.
func QuickQuestions() []string {
	keys, err := prompts.List("quick_questions.json")
	if err != nil {
		return nil
	}
	sort.Strings(keys)

	questions := make([]string, 0, len(keys))
	for _, key := range keys {
		questions = append(questions, prompts.MustGet("quick_questions.json", key))
	}
	return questions
}

// formatContext renders retrieved fragments as a numbered block.
func formatContext(results []vectorstore.Result) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, r.Text)
	}
	return b.String()
}

// formatHistory renders the most recent exchanges for the prompt. Each
// message is truncated so a long answer cannot crowd out the context block.
func (s *System) formatHistory() string {
	if len(s.history) == 0 {
		return ""
	}

	recent := s.history
	if max := historyTurns * 2; len(recent) > max {
		recent = recent[len(recent)-max:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range recent {
		content := turn.Content
		if len(content) > historyTruncate {
			content = content[:historyTruncate] + "..."
		}
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(turn.Role)), content)
	}
	b.WriteString("\n")
	return b.String()
}

func buildCitations(results []vectorstore.Result) []Citation {
	citations := make([]Citation, 0, len(results))
	for _, r := range results {
		snippet := r.Text
		if len(snippet) > citationSnippetLen {
			snippet = snippet[:citationSnippetLen] + "..."
		}

		citation := Citation{
			Snippet:    snippet,
			Similarity: r.Similarity,
		}
		fragmentType, _ := r.Metadata["type"].(string)
		citation.Type = fragmentType

		switch fragmentType {
		case FragmentSkill:
			citation.SkillName, _ = r.Metadata["skill_name"].(string)
			citation.Confidence, _ = r.Metadata["confidence"].(float64)
		case FragmentGitHubRepo:
			citation.RepoName, _ = r.Metadata["repo_name"].(string)
		case FragmentCVText:
			citation.ChunkID, _ = r.Metadata["chunk_id"].(int)
		}

		citations = append(citations, citation)
	}
	return citations
}
