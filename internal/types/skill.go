package types

// Breakdown keys recorded by the confidence aggregator alongside the
// per-(source,method) contribution entries.
const (
	BreakdownAverage          = "average"
	BreakdownMultiSourceBonus = "multi_source_bonus"
	BreakdownFinal            = "final"
)

// Confidence level band names. The numeric cutoffs between bands come from
// the source-weights configuration; "very_low" is everything below the
// lowest configured cutoff.
const (
	LevelHigh    = "high"
	LevelMedium  = "medium"
	LevelLow     = "low"
	LevelVeryLow = "very_low"
)

// ScoredSkill is the aggregation result for one distinct skill name:
// all detections of the skill collapsed into a single calibrated confidence.
// Immutable once created.
type ScoredSkill struct {
	SkillName       string             `json:"skill_name"`
	Category        string             `json:"category"`
	FinalConfidence float64            `json:"final_confidence"` // in [0,1], rounded to 3 decimals
	Sources         []string           `json:"sources"`          // unique source identifiers, encounter order
	Evidence        []string           `json:"evidence"`         // at most 5 snippets, original detection order
	Breakdown       map[string]float64 `json:"confidence_breakdown"`
	Level           string             `json:"level"` // thresholded band name
}
