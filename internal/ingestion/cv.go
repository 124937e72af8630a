package ingestion

import (
	"fmt"
	"os"
	"strings"
)

// CVSource is one CV document under a caller-supplied stable ID. IDs flow
// through detections into the profile, so they must be unique and must not
// change between runs over the same inputs.
type CVSource struct {
	ID   string
	Text string
}

// CombineCVSources joins multiple CV documents into one text for indexing,
// separated by blank lines and in the given order. Duplicate or blank IDs
// are rejected because downstream source attribution keys on them.
func CombineCVSources(sources []CVSource) (string, error) {
	seen := make(map[string]bool, len(sources))
	parts := make([]string, 0, len(sources))

	for _, source := range sources {
		id := strings.TrimSpace(source.ID)
		if id == "" {
			return "", fmt.Errorf("cv source has empty id")
		}
		if seen[id] {
			return "", fmt.Errorf("duplicate cv source id %q", id)
		}
		seen[id] = true

		if text := strings.TrimSpace(source.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// LoadCVFile reads and cleans one CV document from disk.
func LoadCVFile(path, sourceID string) (CVSource, *SourceMetadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return CVSource{}, nil, fmt.Errorf("cv file not found: %w", err)
		}
		return CVSource{}, nil, fmt.Errorf("failed to read cv file: %w", err)
	}

	cleaned := CleanText(string(content))
	return CVSource{ID: sourceID, Text: cleaned}, NewSourceMetadata(sourceID, path, cleaned), nil
}

// LoadCVFiles reads multiple CV documents, assigning positional IDs
// cv_1..cv_n in argument order.
func LoadCVFiles(paths []string) ([]CVSource, []*SourceMetadata, error) {
	sources := make([]CVSource, 0, len(paths))
	metadatas := make([]*SourceMetadata, 0, len(paths))

	for i, path := range paths {
		source, metadata, err := LoadCVFile(path, fmt.Sprintf("cv_%d", i+1))
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, source)
		metadatas = append(metadatas, metadata)
	}

	return sources, metadatas, nil
}

// LoadStatementFile reads and cleans a personal statement or reference
// letter from disk.
func LoadStatementFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read statement file: %w", err)
	}
	return CleanText(string(content)), nil
}
