package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/rag"
	"github.com/jonathan/skill-profiler/internal/types"
)

// loadProfile reads a profile JSON written by build-profile.
func loadProfile(path string) (*types.SkillProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile types.SkillProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// newSession builds a QA session over a profile file, with live Gemini
// clients for embedding and generation. The returned closer releases both.
func newSession(ctx context.Context, profilePath string) (*rag.System, func(), error) {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}

	apiKey := llm.APIKeyFromEnv(llm.ProviderGemini)

	embedder, err := embedding.NewGeminiEmbedder(ctx, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	generator, err := llm.NewGenerator(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		_ = embedder.Close()
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	closer := func() {
		_ = generator.Close()
		_ = embedder.Close()
	}

	session, err := rag.New(ctx, profile, embedder, generator)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to index profile: %w", err)
	}

	return session, closer, nil
}
