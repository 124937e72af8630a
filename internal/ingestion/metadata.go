package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// SourceMetadata describes one ingested document. The hash is computed over
// the cleaned text, so re-ingesting an unchanged file yields the same hash.
type SourceMetadata struct {
	SourceID  string `json:"source_id"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex digest
	WordCount int    `json:"word_count"`
}

// NewSourceMetadata creates metadata for a cleaned document.
func NewSourceMetadata(sourceID, path, cleanedText string) *SourceMetadata {
	return &SourceMetadata{
		SourceID:  sourceID,
		Path:      path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(cleanedText),
		WordCount: WordCount(cleanedText),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals the metadata to pretty-printed JSON.
func (m *SourceMetadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
