package rag

import "fmt"

// SetupError indicates the QA session could not be constructed, usually
// because the profile produced nothing to index.
type SetupError struct {
	Message string
	Cause   error
}

func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rag setup: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rag setup: %s", e.Message)
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}

// QueryError indicates retrieval failed before an answer could be attempted.
// Generation failures are not errors; they degrade into the answer text.
type QueryError struct {
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rag query: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rag query: %s", e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
