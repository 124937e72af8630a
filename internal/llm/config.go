// Package llm provides the generator abstraction over external language
// model providers, with retry and provider-aware error translation at the
// client boundary.
package llm

import "os"

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the generator configuration.
type Config struct {
	Provider        Provider
	Model           string
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           "gemini-2.0-flash",
		MaxOutputTokens: 1024,
	}
}

// apiKeyEnvVars maps providers to the environment variable holding their key.
var apiKeyEnvVars = map[Provider]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// APIKeyFromEnv returns the API key for a provider from the environment,
// or empty string if unset.
func APIKeyFromEnv(provider Provider) string {
	envVar, ok := apiKeyEnvVars[provider]
	if !ok {
		return ""
	}
	return os.Getenv(envVar)
}
