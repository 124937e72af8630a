package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shrinkBackoff makes retry delays negligible for the duration of a test.
func shrinkBackoff(t *testing.T) {
	t.Helper()
	origInitial, origMax := initialInterval, maxInterval
	initialInterval = time.Millisecond
	maxInterval = 5 * time.Millisecond
	t.Cleanup(func() {
		initialInterval, maxInterval = origInitial, origMax
	})
}

func TestGenerateWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	out, err := generateWithRetry(context.Background(), func() (string, error) {
		calls++
		return "answer", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 1, calls)
}

func TestGenerateWithRetry_RecoversFromTransientFailure(t *testing.T) {
	shrinkBackoff(t)

	calls := 0
	out, err := generateWithRetry(context.Background(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", &GenerationError{Provider: ProviderGemini, Message: "transient"}
		}
		return "answer", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 2, calls)
}

func TestGenerateWithRetry_ExhaustsAfterThreeAttempts(t *testing.T) {
	shrinkBackoff(t)

	calls := 0
	_, err := generateWithRetry(context.Background(), func() (string, error) {
		calls++
		return "", &QuotaError{Provider: ProviderGemini, Cause: errors.New("429")}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	// The returned error is the typed provider error, not a retry wrapper
	var quotaErr *QuotaError
	assert.ErrorAs(t, err, &quotaErr)
}

func TestGenerateWithRetry_PermanentErrorShortCircuits(t *testing.T) {
	calls := 0
	_, err := generateWithRetry(context.Background(), func() (string, error) {
		calls++
		return "", &AuthError{Provider: ProviderGemini, Cause: errors.New("bad key")}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "auth failures must not be retried")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestGenerateWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generateWithRetry(ctx, func() (string, error) {
		return "", &GenerationError{Provider: ProviderGemini, Message: "transient"}
	})

	assert.Error(t, err)
}
