// Package scoring implements the confidence aggregation model: independent,
// noisy skill detections from different sources and methods are combined
// into one calibrated confidence score per skill, deterministically.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/taxonomy"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Weight defaults applied when a detection names a source or method the
// weights table does not know. Per-detection gaps are absorbed, never fatal.
const (
	defaultSourceWeight = 0.5
	defaultMethodWeight = 0.7
)

// Multi-source bonus parameters: +0.1 per corroborating source beyond the
// first, capped at +0.2. Repeated detections from one source never raise it.
const (
	perSourceBonus      = 0.1
	multiSourceBonusCap = 0.2
)

// maxEvidence bounds the evidence kept on a scored skill.
const maxEvidence = 5

// Scorer aggregates detection records into scored skills using a
// source/method-weighted confidence model. The weights table is read-only
// for the scorer's lifetime.
type Scorer struct {
	weights *config.SourceWeights
}

// NewScorer creates a scorer from a validated weights document.
func NewScorer(weights *config.SourceWeights) (*Scorer, error) {
	if weights == nil {
		return nil, &config.Error{Message: "scorer requires a source weights table"}
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

// ScoreSkill collapses all detections of one skill into a single scored
// skill. Zero detections is the explicit zero-evidence case, not an error:
// the result has confidence 0.0 and empty sources and evidence.
//
// Each detection contributes base_confidence x source_weight x method_weight;
// the multiplicative model damps low-trust observations and never amplifies.
// The average contribution plus the multi-source bonus, capped at 1.0 and
// rounded to 3 decimals, is the final confidence.
func (s *Scorer) ScoreSkill(skillName, category string, detections []types.Detection) types.ScoredSkill {
	if len(detections) == 0 {
		return types.ScoredSkill{
			SkillName:       skillName,
			Category:        category,
			FinalConfidence: 0.0,
			Sources:         []string{},
			Evidence:        []string{},
			Breakdown:       map[string]float64{},
			Level:           types.LevelVeryLow,
		}
	}

	total := 0.0
	seen := make(map[string]bool)
	sources := make([]string, 0, len(detections))
	evidence := make([]string, 0, maxEvidence)
	breakdown := make(map[string]float64, len(detections)+3)

	for _, d := range detections {
		sourceWeight := s.sourceWeight(d.Source, taxonomy.ClassOf(category))
		methodWeight := s.methodWeight(d.Method)

		contribution := d.Confidence * sourceWeight * methodWeight
		total += contribution

		if !seen[d.Source] {
			seen[d.Source] = true
			sources = append(sources, d.Source)
		}
		for _, e := range d.Evidence {
			if len(evidence) < maxEvidence {
				evidence = append(evidence, e)
			}
		}

		breakdown[fmt.Sprintf("%s_%s", d.Source, d.Method)] = contribution
	}

	average := total / float64(len(detections))
	bonus := math.Min(multiSourceBonusCap, float64(len(sources)-1)*perSourceBonus)
	final := round3(math.Min(1.0, average+bonus))

	breakdown[types.BreakdownAverage] = average
	breakdown[types.BreakdownMultiSourceBonus] = bonus
	breakdown[types.BreakdownFinal] = final

	return types.ScoredSkill{
		SkillName:       skillName,
		Category:        category,
		FinalConfidence: final,
		Sources:         sources,
		Evidence:        evidence,
		Breakdown:       breakdown,
		Level:           s.Level(final),
	}
}

// ScoreProfile groups detections by exact skill name, scores each group, and
// returns the results sorted by final confidence descending. The sort is
// stable, so ties keep the order skills were first encountered in the input.
//
// Grouping is case-sensitive exact match; alias canonicalization happens
// upstream in extraction, so only genuinely unknown spellings fragment.
func (s *Scorer) ScoreProfile(detections []types.Detection) []types.ScoredSkill {
	groups := make(map[string][]types.Detection)
	order := make([]string, 0)

	for _, d := range detections {
		if _, ok := groups[d.SkillName]; !ok {
			order = append(order, d.SkillName)
		}
		groups[d.SkillName] = append(groups[d.SkillName], d)
	}

	scored := make([]types.ScoredSkill, 0, len(order))
	for _, name := range order {
		group := groups[name]
		scored = append(scored, s.ScoreSkill(name, group[0].Category, group))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalConfidence > scored[j].FinalConfidence
	})

	return scored
}

// FilterByConfidence returns the subsequence of skills at or above the
// threshold, preserving order. No side effects on the input.
func (s *Scorer) FilterByConfidence(scored []types.ScoredSkill, minConfidence float64) []types.ScoredSkill {
	filtered := make([]types.ScoredSkill, 0, len(scored))
	for _, skill := range scored {
		if skill.FinalConfidence >= minConfidence {
			filtered = append(filtered, skill)
		}
	}
	return filtered
}

// TopSkills returns the first topN skills, or all of them if fewer.
func (s *Scorer) TopSkills(scored []types.ScoredSkill, topN int) []types.ScoredSkill {
	if topN < 0 {
		topN = 0
	}
	if topN > len(scored) {
		topN = len(scored)
	}
	return scored[:topN]
}

// Level maps a confidence value to its named band using the configured
// thresholds; values below the lowest cutoff are "very_low".
func (s *Scorer) Level(confidence float64) string {
	t := s.weights.Thresholds
	switch {
	case confidence >= t.High:
		return types.LevelHigh
	case confidence >= t.Medium:
		return types.LevelMedium
	case confidence >= t.Low:
		return types.LevelLow
	default:
		return types.LevelVeryLow
	}
}

func (s *Scorer) sourceWeight(source string, class taxonomy.CategoryClass) float64 {
	cw, ok := s.weights.Sources[strings.ToLower(source)]
	if !ok {
		return defaultSourceWeight
	}
	switch class {
	case taxonomy.ClassSoft:
		return cw.Soft
	case taxonomy.ClassDomain:
		return cw.Domain
	default:
		return cw.Technical
	}
}

func (s *Scorer) methodWeight(method types.DetectionMethod) float64 {
	mw, ok := s.weights.Methods[string(method)]
	if !ok {
		return defaultMethodWeight
	}
	return mw.Weight
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
