package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/taxonomy"
	"github.com/jonathan/skill-profiler/internal/types"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	extractor, err := NewExtractor(tax)
	require.NoError(t, err)
	return extractor
}

func findDetection(detections []types.Detection, skill string) (types.Detection, bool) {
	for _, d := range detections {
		if d.SkillName == skill {
			return d, true
		}
	}
	return types.Detection{}, false
}

func TestNewExtractor_NilTaxonomy(t *testing.T) {
	_, err := NewExtractor(nil)
	assert.Error(t, err)
}

func TestExtractExplicit_DirectMention(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractExplicit(
		"Built data pipelines in Python and deployed them with Docker.", "cv_1")

	python, ok := findDetection(detections, "Python")
	require.True(t, ok)
	assert.Equal(t, types.MethodExplicit, python.Method)
	assert.Equal(t, 1.0, python.Confidence)
	assert.Equal(t, "cv_1", python.Source)
	assert.Equal(t, "technical_programming_languages", python.Category)
	require.Len(t, python.Evidence, 1)
	assert.Contains(t, python.Evidence[0], "Python")

	_, ok = findDetection(detections, "Docker")
	assert.True(t, ok)
}

func TestExtractExplicit_WordBoundary(t *testing.T) {
	extractor := newTestExtractor(t)

	// "Gone" must not trigger Go; "Reactive" must not trigger React
	detections := extractor.ExtractExplicit("Gone fishing with Reactive streams.", "cv_1")

	_, foundGo := findDetection(detections, "Go")
	_, foundReact := findDetection(detections, "React")
	assert.False(t, foundGo)
	assert.False(t, foundReact)
}

func TestExtractExplicit_CaseInsensitive(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractExplicit("Experienced with PYTHON and docker.", "cv_1")

	_, foundPython := findDetection(detections, "Python")
	_, foundDocker := findDetection(detections, "Docker")
	assert.True(t, foundPython)
	assert.True(t, foundDocker)
}

func TestExtractExplicit_SynonymResolvesToCanonical(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractExplicit("Five years writing Golang services.", "github")

	goDetection, ok := findDetection(detections, "Go")
	require.True(t, ok)
	assert.Equal(t, 0.95, goDetection.Confidence)
	require.Len(t, goDetection.Evidence, 1)
	assert.Equal(t, "Found synonym: Golang", goDetection.Evidence[0])

	_, foundGolang := findDetection(detections, "Golang")
	assert.False(t, foundGolang, "alias must not appear as its own skill")
}

func TestExtractExplicit_EvidenceCappedAtThree(t *testing.T) {
	extractor := newTestExtractor(t)

	text := "Python here. Python there. Python again. Python once more."
	detections := extractor.ExtractExplicit(text, "cv_1")

	python, ok := findDetection(detections, "Python")
	require.True(t, ok)
	assert.Len(t, python.Evidence, 3)
}

func TestExtractExplicit_NoMatches(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractExplicit("Enjoys hiking and photography.", "cv_1")
	assert.Empty(t, detections)
}

func TestExtractContextual_ExperiencePhrase(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractContextual(
		"Three years of experience with Kubernetes in production.", "cv_1")

	k8s, ok := findDetection(detections, "Kubernetes")
	require.True(t, ok)
	assert.Equal(t, types.MethodContextual, k8s.Method)
	assert.Equal(t, 0.8, k8s.Confidence)
	require.Len(t, k8s.Evidence, 1)
	assert.Contains(t, k8s.Evidence[0], "experience with Kubernetes")
}

func TestExtractContextual_PhraseStrengthSetsConfidence(t *testing.T) {
	extractor := newTestExtractor(t)

	proficient := extractor.ExtractContextual("Proficient in TypeScript.", "cv_1")
	familiar := extractor.ExtractContextual("Familiar with TypeScript.", "cv_1")

	p, ok := findDetection(proficient, "TypeScript")
	require.True(t, ok)
	f, ok := findDetection(familiar, "TypeScript")
	require.True(t, ok)

	assert.Equal(t, 0.9, p.Confidence)
	assert.Equal(t, 0.7, f.Confidence)
	assert.Greater(t, p.Confidence, f.Confidence)
}

func TestExtractContextual_MultipleSkillsInOnePhrase(t *testing.T) {
	extractor := newTestExtractor(t)

	detections := extractor.ExtractContextual(
		"Skilled in Django, Flask and FastAPI development.", "cv_1")

	for _, skill := range []string{"Django", "Flask", "FastAPI"} {
		d, ok := findDetection(detections, skill)
		require.True(t, ok, "expected %s in contextual detections", skill)
		assert.Equal(t, 0.85, d.Confidence)
	}
}

func TestExtractContextual_NoPhraseNoDetection(t *testing.T) {
	extractor := newTestExtractor(t)

	// A bare mention without an experience phrase is the explicit pass's job
	detections := extractor.ExtractContextual("Python.", "cv_1")

	_, found := findDetection(detections, "Python")
	assert.False(t, found)
}

func TestExtractAll_DedupesKeepingHighestConfidence(t *testing.T) {
	extractor := newTestExtractor(t)

	// Explicit mention (1.0) and contextual phrase (0.8) for the same skill
	detections := extractor.ExtractAll(
		"Docker. Extensive experience with Docker in production.", "cv_1")

	var dockerCount int
	for _, d := range detections {
		if d.SkillName == "Docker" {
			dockerCount++
			assert.Equal(t, 1.0, d.Confidence)
		}
	}
	assert.Equal(t, 1, dockerCount)
}

func TestExtractAll_KeepsDistinctSources(t *testing.T) {
	extractor := newTestExtractor(t)

	fromCV := extractor.ExtractAll("Python developer.", "cv_1")
	fromGitHub := extractor.ExtractAll("Python developer.", "github")

	cv, ok := findDetection(fromCV, "Python")
	require.True(t, ok)
	gh, ok := findDetection(fromGitHub, "Python")
	require.True(t, ok)
	assert.NotEqual(t, cv.Source, gh.Source)
}

func TestExtractAll_Deterministic(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "Python and Docker. Experience with Kubernetes and proficient in Go."

	first := extractor.ExtractAll(text, "cv_1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, extractor.ExtractAll(text, "cv_1"))
	}
}
