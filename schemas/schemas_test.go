package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceWeightsSchema_AcceptsEmbeddedDefaults(t *testing.T) {
	schemaData, err := os.ReadFile("source_weights.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), string(config.DefaultSourceWeightsJSON()))
	assert.NoError(t, err, "embedded default weights must conform to the published schema")
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"source_weights.schema.json",
		"github_data.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSourceWeightsSchema_AcceptsValidDocument(t *testing.T) {
	schemaData, err := os.ReadFile("source_weights.schema.json")
	require.NoError(t, err)

	doc := `{
		"source_reliability_weights": {
			"github": {"technical_skills": 1.0, "soft_skills": 0.3, "domain_knowledge": 0.6}
		},
		"skill_detection_methods": {
			"explicit": {"weight": 1.0}
		},
		"confidence_thresholds": {"high": 0.8, "medium": 0.5, "low": 0.3}
	}`

	err = schemas.ValidateJSONString(string(schemaData), doc)
	assert.NoError(t, err)
}

func TestSourceWeightsSchema_RejectsMissingSection(t *testing.T) {
	schemaData, err := os.ReadFile("source_weights.schema.json")
	require.NoError(t, err)

	doc := `{
		"source_reliability_weights": {
			"github": {"technical_skills": 1.0, "soft_skills": 0.3, "domain_knowledge": 0.6}
		},
		"skill_detection_methods": {
			"explicit": {"weight": 1.0}
		}
	}`

	err = schemas.ValidateJSONString(string(schemaData), doc)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSourceWeightsSchema_RejectsOutOfRangeWeight(t *testing.T) {
	schemaData, err := os.ReadFile("source_weights.schema.json")
	require.NoError(t, err)

	doc := `{
		"source_reliability_weights": {
			"github": {"technical_skills": 1.5, "soft_skills": 0.3, "domain_knowledge": 0.6}
		},
		"skill_detection_methods": {
			"explicit": {"weight": 1.0}
		},
		"confidence_thresholds": {"high": 0.8, "medium": 0.5, "low": 0.3}
	}`

	err = schemas.ValidateJSONString(string(schemaData), doc)
	assert.Error(t, err)
}

func TestGitHubDataSchema_AcceptsMinimalDocument(t *testing.T) {
	schemaData, err := os.ReadFile("github_data.schema.json")
	require.NoError(t, err)

	doc := `{"repositories": [{"name": "skill-profiler"}]}`

	err = schemas.ValidateJSONString(string(schemaData), doc)
	assert.NoError(t, err)
}
