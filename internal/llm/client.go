package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator is an abstraction over LLM providers for grounded text
// generation. Implementations apply their own retry and error translation.
type Generator interface {
	// Generate produces a completion for a system+user prompt pair.
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewGenerator creates a generator based on configuration. Only Gemini is
// implemented; the factory keeps provider dispatch out of callers.
func NewGenerator(ctx context.Context, config *Config, apiKey string) (Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, config, apiKey)
	// case ProviderOpenAI:
	//     return NewOpenAIGenerator(ctx, config, apiKey)
	// case ProviderAnthropic:
	//     return NewClaudeGenerator(ctx, config, apiKey)
	default:
		return NewGeminiGenerator(ctx, config, apiKey)
	}
}

// GeminiGenerator implements Generator for Google Gemini.
type GeminiGenerator struct {
	client *genai.Client
	config *Config
}

// NewGeminiGenerator creates a new Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, config *Config, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, &AuthError{Provider: ProviderGemini, Cause: fmt.Errorf("API key is required")}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		config: config,
	}, nil
}

// Generate produces a completion, retrying transient upstream failures with
// capped exponential backoff and translating the final error into a typed,
// provider-aware one.
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	return generateWithRetry(ctx, func() (string, error) {
		return g.generateOnce(ctx, systemPrompt, userPrompt, temperature)
	})
}

func (g *GeminiGenerator) generateOnce(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.config.Model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(g.config.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", mapGeminiError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", &SafetyError{
			Provider: ProviderGemini,
			Reason:   resp.PromptFeedback.BlockReason.String(),
		}
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &GenerationError{Provider: ProviderGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &GenerationError{
			Provider: ProviderGemini,
			Message:  fmt.Sprintf("no content in response (finish reason: %s)", candidate.FinishReason),
		}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &GenerationError{Provider: ProviderGemini, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
