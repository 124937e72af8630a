package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry policy for generator calls: 3 attempts total, exponential delay
// starting at 1s and capped at 10s. Absorbs transient upstream failures
// (rate limits, flaky network) without hiding the root cause; the error
// returned after exhaustion is the mapped provider error itself, not a
// retry wrapper.
const maxRetries = 2 // retries after the first attempt

// Intervals are variables so tests can shrink them.
var (
	initialInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
)

// generateWithRetry runs op under the retry policy. Errors the mapper marks
// permanent (bad credentials, safety blocks) short-circuit immediately.
func generateWithRetry(ctx context.Context, op func() (string, error)) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.MaxInterval = maxInterval

	var result string
	err := backoff.Retry(func() error {
		out, err := op()
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = out
		return nil
	}, backoff.WithMaxRetries(backoff.WithContext(b, ctx), maxRetries))

	if err != nil {
		return "", err
	}
	return result, nil
}
