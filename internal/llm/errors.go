package llm

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// AuthError indicates a missing or rejected API credential.
type AuthError struct {
	Provider Provider
	Cause    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf(
		"%s authentication failed: set %s (create a key at https://aistudio.google.com/app/apikey): %v",
		e.Provider, apiKeyEnvVars[e.Provider], e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// QuotaError indicates rate-limit or quota exhaustion upstream.
type QuotaError struct {
	Provider Provider
	Cause    error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf(
		"%s quota exhausted: check your plan and billing details, or retry later: %v",
		e.Provider, e.Cause)
}

func (e *QuotaError) Unwrap() error { return e.Cause }

// SafetyError indicates the provider's content filter blocked the request.
type SafetyError struct {
	Provider Provider
	Reason   string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf(
		"%s blocked the request (reason: %s): rephrase the question and try again",
		e.Provider, e.Reason)
}

// GenerationError is any other generation failure, after retries.
type GenerationError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Provider, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// mapGeminiError translates a raw client error into a typed provider error.
// Discrimination uses googleapi status codes where the client library
// surfaces them; message inspection is the fallback for transport paths
// that do not carry a structured error.
func mapGeminiError(err error) error {
	var authErr *AuthError
	var quotaErr *QuotaError
	var safetyErr *SafetyError
	if errors.As(err, &authErr) || errors.As(err, &quotaErr) || errors.As(err, &safetyErr) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return &AuthError{Provider: ProviderGemini, Cause: err}
		case 429:
			return &QuotaError{Provider: ProviderGemini, Cause: err}
		}
		return &GenerationError{Provider: ProviderGemini, Message: fmt.Sprintf("upstream status %d", apiErr.Code), Cause: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission"):
		return &AuthError{Provider: ProviderGemini, Cause: err}
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "rate limit"):
		return &QuotaError{Provider: ProviderGemini, Cause: err}
	}

	return &GenerationError{Provider: ProviderGemini, Message: "request failed", Cause: err}
}

// retryable reports whether a mapped error is worth retrying. Credential
// and safety failures are permanent; quota and transient transport errors
// are not.
func retryable(err error) bool {
	var authErr *AuthError
	var safetyErr *SafetyError
	if errors.As(err, &authErr) || errors.As(err, &safetyErr) {
		return false
	}
	return true
}
