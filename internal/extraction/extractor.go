// Package extraction detects skill mentions in free text and emits
// detection records for the confidence aggregator. Three passes exist:
// explicit taxonomy matching, contextual phrase matching, and an
// embedding-based semantic pass. The extractor makes no scoring decisions;
// base confidences here are inputs to the aggregator, not final values.
package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/skill-profiler/internal/taxonomy"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Base confidences for the non-semantic passes. Explicit mentions are fully
// trusted before weighting; synonym hits slightly less, since alias
// resolution can misfire on short aliases.
const (
	explicitConfidence = 1.0
	synonymConfidence  = 0.95

	// evidenceContext is the number of characters kept around a match
	evidenceContext = 50
	// maxEvidencePerSkill bounds evidence snippets per explicit detection
	maxEvidencePerSkill = 3
)

// Extractor runs the explicit and contextual detection passes against a
// shared taxonomy. Immutable after construction.
type Extractor struct {
	tax      *taxonomy.Taxonomy
	patterns []contextualPattern

	// compiled word-boundary patterns, one per canonical skill and alias
	skillPatterns map[string]*regexp.Regexp
	aliasPatterns map[string]*regexp.Regexp
}

// NewExtractor creates an extractor over a taxonomy.
func NewExtractor(tax *taxonomy.Taxonomy) (*Extractor, error) {
	if tax == nil {
		return nil, fmt.Errorf("extractor requires a taxonomy")
	}

	e := &Extractor{
		tax:           tax,
		patterns:      contextualPatterns(),
		skillPatterns: make(map[string]*regexp.Regexp, tax.Len()),
		aliasPatterns: make(map[string]*regexp.Regexp),
	}

	for _, skill := range tax.Skills() {
		pattern, err := wordPattern(skill)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for skill %q: %w", skill, err)
		}
		e.skillPatterns[skill] = pattern

		for _, alias := range tax.SynonymsOf(skill) {
			aliasPattern, err := wordPattern(alias)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern for alias %q: %w", alias, err)
			}
			e.aliasPatterns[alias] = aliasPattern
		}
	}

	return e, nil
}

// ExtractExplicit finds direct taxonomy mentions via word-boundary matching,
// with up to three context snippets per skill as evidence.
func (e *Extractor) ExtractExplicit(text, source string) []types.Detection {
	var detections []types.Detection

	for _, skill := range e.tax.Skills() {
		matches := e.skillPatterns[skill].FindAllStringIndex(text, maxEvidencePerSkill)
		if len(matches) == 0 {
			continue
		}

		evidence := make([]string, 0, len(matches))
		for _, m := range matches {
			evidence = append(evidence, contextSnippet(text, m[0], m[1], evidenceContext))
		}

		category, _ := e.tax.CategoryOf(skill)
		detections = append(detections, types.Detection{
			SkillName:  skill,
			Category:   category,
			Method:     types.MethodExplicit,
			Confidence: explicitConfidence,
			Evidence:   evidence,
			Source:     source,
		})
	}

	// Synonym hits resolve to the canonical skill name so grouping in the
	// aggregator does not fragment evidence across aliases
	for _, skill := range e.tax.Skills() {
		for _, alias := range e.tax.SynonymsOf(skill) {
			if !e.aliasPatterns[alias].MatchString(text) {
				continue
			}
			category, _ := e.tax.CategoryOf(skill)
			detections = append(detections, types.Detection{
				SkillName:  skill,
				Category:   category,
				Method:     types.MethodExplicit,
				Confidence: synonymConfidence,
				Evidence:   []string{fmt.Sprintf("Found synonym: %s", alias)},
				Source:     source,
			})
		}
	}

	return detections
}

// ExtractAll runs the explicit and contextual passes and deduplicates by
// (skill, source), keeping the highest-confidence detection. Output order
// is deterministic: first-encounter order of each (skill, source) pair.
func (e *Extractor) ExtractAll(text, source string) []types.Detection {
	combined := append(e.ExtractExplicit(text, source), e.ExtractContextual(text, source)...)

	type key struct {
		skill  string
		source string
	}
	index := make(map[key]int, len(combined))
	deduped := make([]types.Detection, 0, len(combined))

	for _, d := range combined {
		k := key{d.SkillName, d.Source}
		if i, ok := index[k]; ok {
			if d.Confidence > deduped[i].Confidence {
				deduped[i] = d
			}
			continue
		}
		index[k] = len(deduped)
		deduped = append(deduped, d)
	}

	return deduped
}

// wordPattern compiles a case-insensitive word-boundary pattern for a term.
func wordPattern(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// contextSnippet extracts the text around a match, trimmed and ellipsized.
func contextSnippet(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	return "..." + strings.TrimSpace(text[from:to]) + "..."
}
