// Package config provides loading and validation for the static configuration
// documents consumed by the skill profiler: the source-weights table and the
// skill taxonomy. Configuration is loaded once and passed by reference into
// the components that need it; there is no ambient global state.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-profiler/internal/schemas"
)

//go:embed source_weights.json
var defaultSourceWeightsJSON []byte

// weightsSchemaPath locates the JSON Schema for the weights document,
// relative to the repository root.
const weightsSchemaPath = "schemas/source_weights.schema.json"

// SourceWeights is the immutable weights document driving confidence
// aggregation: per-source reliability weights, per-method weights, and the
// confidence-band thresholds. Read-only after construction.
type SourceWeights struct {
	Sources    map[string]CategoryWeights `json:"source_reliability_weights" validate:"required,min=1,dive"`
	Methods    map[string]MethodWeight    `json:"skill_detection_methods" validate:"required,min=1,dive"`
	Thresholds Thresholds                 `json:"confidence_thresholds"`
}

// CategoryWeights holds one source's reliability per category class.
// A GitHub language list says a lot about technical skills and almost
// nothing about soft skills; the weights encode that asymmetry.
type CategoryWeights struct {
	Technical float64 `json:"technical_skills" validate:"gte=0,lte=1"`
	Soft      float64 `json:"soft_skills" validate:"gte=0,lte=1"`
	Domain    float64 `json:"domain_knowledge" validate:"gte=0,lte=1"`
}

// MethodWeight holds one detection method's weight.
type MethodWeight struct {
	Weight      float64 `json:"weight" validate:"gte=0,lte=1"`
	Description string  `json:"description,omitempty"`
}

// Thresholds are the cutoffs partitioning [0,1] into named confidence bands.
// Must satisfy high > medium > low.
type Thresholds struct {
	High   float64 `json:"high" validate:"gte=0,lte=1"`
	Medium float64 `json:"medium" validate:"gte=0,lte=1"`
	Low    float64 `json:"low" validate:"gte=0,lte=1"`
}

// DefaultSourceWeights returns the embedded default weights document.
func DefaultSourceWeights() (*SourceWeights, error) {
	return parseSourceWeights(defaultSourceWeightsJSON)
}

// DefaultSourceWeightsJSON returns the raw embedded default document,
// exposed so tests can check it against the published schema.
func DefaultSourceWeightsJSON() []byte {
	return defaultSourceWeightsJSON
}

// LoadSourceWeights reads and validates a weights document from disk.
// A missing file or malformed structure is fatal; callers should surface
// the error and abort construction of the aggregator.
func LoadSourceWeights(path string) (*SourceWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read source weights %s", path), Cause: err}
	}

	// Structural validation against the published schema, when it can be
	// located. Semantic validation below is authoritative either way.
	if schemaPath := schemas.ResolveSchemaPath(weightsSchemaPath); schemaPath != "" {
		if err := schemas.ValidateJSONFile(schemaPath, path); err != nil {
			return nil, &Error{Message: fmt.Sprintf("source weights %s failed schema validation", path), Cause: err}
		}
	}

	return parseSourceWeights(data)
}

func parseSourceWeights(data []byte) (*SourceWeights, error) {
	var w SourceWeights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &Error{Message: "failed to parse source weights JSON", Cause: err}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return &w, nil
}

// Validate checks the weights document for semantic validity.
func (w *SourceWeights) Validate() error {
	v := validator.New()
	if err := v.Struct(w); err != nil {
		return &Error{Message: "invalid source weights document", Cause: err}
	}

	t := w.Thresholds
	if !(t.High > t.Medium && t.Medium > t.Low) {
		return &Error{Message: fmt.Sprintf(
			"confidence thresholds must satisfy high > medium > low, got high=%.3f medium=%.3f low=%.3f",
			t.High, t.Medium, t.Low)}
	}

	return nil
}
