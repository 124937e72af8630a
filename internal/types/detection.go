// Package types provides type definitions for structured data used throughout the skill-profiler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DetectionMethod identifies how a skill mention was detected in source text.
type DetectionMethod string

// Detection method constants. Each method carries its own reliability weight
// in the source-weights configuration.
const (
	// MethodExplicit is a direct keyword match against the taxonomy
	MethodExplicit DetectionMethod = "explicit"
	// MethodContextual is a match inside a skill-indicating phrase ("proficient in ...")
	MethodContextual DetectionMethod = "contextual"
	// MethodSemantic is an embedding-similarity match with no literal mention
	MethodSemantic DetectionMethod = "semantic"
)

// Detection represents a single skill observation: skill X observed via
// method M from source S with confidence C and supporting evidence.
// Detections are created once by an extraction pass and never mutated.
type Detection struct {
	SkillName  string          `json:"skill_name"`
	Category   string          `json:"category"`
	Method     DetectionMethod `json:"detection_method"`
	Confidence float64         `json:"confidence"`          // base confidence in [0,1], before source/method weighting
	Evidence   []string        `json:"evidence,omitempty"`  // text snippets showing the mention
	Source     string          `json:"source"`              // where the skill was found (cv, github, ...)
}
