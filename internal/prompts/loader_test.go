package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("qa.json", "answer-question-system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "profile context")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("qa.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("qa.json", "answer-question-user")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Question: {{.Question}} (asked by {{.Role}})"
	data := map[string]string{
		"Question": "What languages?",
		"Role":     "user",
	}

	result := Format(template, data)
	assert.Equal(t, "Question: What languages? (asked by user)", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"

	result := Format(template, map[string]string{})
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("quick_questions.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "strongest-skills")
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("qa.json", "answer-question-system")
	require.NoError(t, err)

	prompt2, err := Get("qa.json", "answer-question-system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

// The Q&A system prompt must pin the exact refusal phrasing the answer
// contract promises when information is missing from the profile.
func TestQASystemPrompt_RefusalPhrase(t *testing.T) {
	ClearCache()

	system := MustGet("qa.json", "answer-question-system")
	assert.Contains(t, system, "Not found in candidate profile")
}

func TestQAUserPrompt_Placeholders(t *testing.T) {
	ClearCache()

	user := MustGet("qa.json", "answer-question-user")
	for _, placeholder := range []string{"{{.Context}}", "{{.History}}", "{{.Question}}"} {
		assert.Contains(t, user, placeholder)
	}
}

func TestVerificationPrompt_Placeholders(t *testing.T) {
	ClearCache()

	user := MustGet("verification.json", "verify-claim-user")
	assert.Contains(t, user, "{{.Context}}")
	assert.Contains(t, user, "{{.Claim}}")
}
