package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

// contextualContext is the number of characters kept around a phrase match.
const contextualContext = 30

// contextualPattern pairs an experience phrase with the base confidence its
// phrasing implies. Stronger claims ("proficient", "expertise") carry more
// confidence than weaker ones ("familiar with").
type contextualPattern struct {
	re         *regexp.Regexp
	confidence float64
}

func contextualPatterns() []contextualPattern {
	return []contextualPattern{
		{regexp.MustCompile(`(?i)experience (?:with|in) ([\w\s,+#./-]+)`), 0.8},
		{regexp.MustCompile(`(?i)proficient (?:with|in) ([\w\s,+#./-]+)`), 0.9},
		{regexp.MustCompile(`(?i)skilled (?:with|in|at) ([\w\s,+#./-]+)`), 0.85},
		{regexp.MustCompile(`(?i)expertise (?:with|in) ([\w\s,+#./-]+)`), 0.9},
		{regexp.MustCompile(`(?i)knowledge of ([\w\s,+#./-]+)`), 0.75},
		{regexp.MustCompile(`(?i)familiar with ([\w\s,+#./-]+)`), 0.7},
		{regexp.MustCompile(`(?i)worked with ([\w\s,+#./-]+)`), 0.75},
		{regexp.MustCompile(`(?i)using ([A-Z][\w+#.]*)`), 0.7},
	}
}

// ExtractContextual finds skills implied by experience phrasing rather than
// bare mentions. The captured phrase after each pattern is matched against
// the taxonomy by substring in either direction, so "experience with React
// and Redux" yields React even though the capture is the whole phrase.
func (e *Extractor) ExtractContextual(text, source string) []types.Detection {
	var detections []types.Detection

	for _, pattern := range e.patterns {
		matches := pattern.re.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			captured := text[m[2]:m[3]]
			capturedLower := strings.ToLower(captured)

			for _, skill := range e.tax.Skills() {
				skillLower := strings.ToLower(skill)
				if !strings.Contains(capturedLower, skillLower) &&
					!strings.Contains(skillLower, capturedLower) {
					continue
				}

				category, _ := e.tax.CategoryOf(skill)
				detections = append(detections, types.Detection{
					SkillName:  skill,
					Category:   category,
					Method:     types.MethodContextual,
					Confidence: pattern.confidence,
					Evidence:   []string{contextSnippet(text, m[0], m[1], contextualContext)},
					Source:     source,
				})
			}
		}
	}

	return detections
}
