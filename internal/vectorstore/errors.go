package vectorstore

import "fmt"

// ValidationError represents invalid caller input to the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vector store: %s", e.Message)
}

// EmbedError wraps a failure from the underlying embedder.
type EmbedError struct {
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vector store: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("vector store: %s", e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}
