package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skill-profiler/internal/schemas"
	"github.com/jonathan/skill-profiler/internal/types"
)

// githubSchemaFile is the schema the GitHub metadata document is validated
// against before unmarshalling.
const githubSchemaFile = "schemas/github_data.schema.json"

// LoadGitHubData reads a GitHub metadata document produced by an external
// collector. The document is schema-validated when the schema file is
// resolvable from the working directory; a malformed document is always
// rejected by unmarshalling either way.
func LoadGitHubData(path string) (*types.GitHubData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read github data file: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(githubSchemaFile); schemaPath != "" {
		if err := schemas.ValidateJSONFile(schemaPath, path); err != nil {
			return nil, fmt.Errorf("github data failed schema validation: %w", err)
		}
	}

	var data types.GitHubData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse github data: %w", err)
	}

	return &data, nil
}
