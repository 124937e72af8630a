// Package profile assembles a complete skill profile from the candidate's
// source documents: CV text, GitHub metadata, and statement documents. Each
// source is extracted independently and tagged with its source ID so the
// aggregator can weight and corroborate across sources.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/skill-profiler/internal/extraction"
	"github.com/jonathan/skill-profiler/internal/ingestion"
	"github.com/jonathan/skill-profiler/internal/scoring"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Source IDs for the non-CV sources. CV sources carry their own IDs.
const (
	SourceGitHub            = "github"
	SourcePersonalStatement = "personal_statement"
	SourceReferenceLetter   = "reference_letter"
)

const (
	// minProfileConfidence drops skills the aggregator could not establish.
	minProfileConfidence = 0.3

	// topSkillCount is how many skills the profile highlights.
	topSkillCount = 10

	// maxGitHubRepoText bounds repository descriptions fed to extraction.
	maxGitHubRepoText = 10
)

// Input is everything the builder needs. All fields except Name are
// optional, but at least one source must be present.
type Input struct {
	Name              string
	CVSources         []ingestion.CVSource
	GitHub            *types.GitHubData
	PersonalStatement string
	ReferenceLetter   string
}

// Builder turns source documents into a scored profile. The semantic
// extractor is optional; when absent the builder is fully offline.
type Builder struct {
	extractor *extraction.Extractor
	scorer    *scoring.Scorer
	semantic  *extraction.SemanticExtractor
}

// NewBuilder creates a builder from its two required collaborators.
func NewBuilder(extractor *extraction.Extractor, scorer *scoring.Scorer) (*Builder, error) {
	if extractor == nil {
		return nil, fmt.Errorf("builder requires an extractor")
	}
	if scorer == nil {
		return nil, fmt.Errorf("builder requires a scorer")
	}
	return &Builder{extractor: extractor, scorer: scorer}, nil
}

// WithSemantic enables the embedding-based detection pass. Semantic
// failures degrade to the offline passes rather than failing the build.
func (b *Builder) WithSemantic(semantic *extraction.SemanticExtractor) *Builder {
	b.semantic = semantic
	return b
}

// Build extracts detections from every provided source, scores them, and
// assembles the profile. An input with no usable source is an error; a
// single failing source is skipped and recorded in the returned warnings.
func (b *Builder) Build(ctx context.Context, input Input) (*types.SkillProfile, []string, error) {
	var (
		detections  []types.Detection
		dataSources []string
		warnings    []string
	)

	raw := types.RawData{}

	combined, err := ingestion.CombineCVSources(input.CVSources)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid cv sources: %w", err)
	}
	if combined != "" {
		sourceIDs := make([]string, 0, len(input.CVSources))
		for _, source := range input.CVSources {
			sourceIDs = append(sourceIDs, source.ID)
			detections = append(detections, b.extractor.ExtractAll(source.Text, source.ID)...)
		}
		raw.CV = &types.CVData{
			SourceIDs: sourceIDs,
			RawText:   combined,
			Count:     len(input.CVSources),
		}
		dataSources = append(dataSources, "cv")

		if b.semantic != nil {
			semanticDetections, err := b.semantic.Extract(ctx, combined, "cv")
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("semantic pass skipped: %v", err))
			} else {
				detections = append(detections, semanticDetections...)
			}
		}
	}

	if input.GitHub != nil {
		detections = append(detections, b.extractor.ExtractAll(githubText(input.GitHub), SourceGitHub)...)
		raw.GitHub = input.GitHub
		dataSources = append(dataSources, SourceGitHub)
	}

	if text := strings.TrimSpace(input.PersonalStatement); text != "" {
		detections = append(detections, b.extractor.ExtractAll(text, SourcePersonalStatement)...)
		raw.PersonalStatement = &types.StatementDoc{Content: text, WordCount: ingestion.WordCount(text)}
		dataSources = append(dataSources, SourcePersonalStatement)
	}

	if text := strings.TrimSpace(input.ReferenceLetter); text != "" {
		detections = append(detections, b.extractor.ExtractAll(text, SourceReferenceLetter)...)
		raw.ReferenceLetter = &types.StatementDoc{Content: text, WordCount: ingestion.WordCount(text)}
		dataSources = append(dataSources, SourceReferenceLetter)
	}

	if len(dataSources) == 0 {
		return nil, nil, fmt.Errorf("no data sources provided")
	}

	scored := b.scorer.ScoreProfile(detections)
	skills := b.scorer.FilterByConfidence(scored, minProfileConfidence)
	topSkills := b.scorer.TopSkills(skills, topSkillCount)

	profile := &types.SkillProfile{
		Name:            input.Name,
		Summary:         buildSummary(dataSources, skills, topSkills),
		Skills:          skills,
		TopSkills:       topSkills,
		SkillCategories: groupByCategory(skills),
		DataSources:     dataSources,
		Metadata: types.ProfileMetadata{
			CreatedAt:    time.Now().UTC(),
			TotalSkills:  len(skills),
			SourcesCount: len(dataSources),
		},
		RawData: raw,
	}

	return profile, warnings, nil
}

// githubText flattens GitHub metadata into extractable prose: bio, primary
// languages, topics, and the first ten repository descriptions.
func githubText(gh *types.GitHubData) string {
	var b strings.Builder

	if gh.Bio != "" {
		b.WriteString(gh.Bio)
		b.WriteString("\n")
	}
	if len(gh.PrimaryLanguages) > 0 {
		fmt.Fprintf(&b, "Primary languages: %s\n", strings.Join(gh.PrimaryLanguages, ", "))
	}
	if len(gh.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(gh.Topics, ", "))
	}

	repos := gh.Repositories
	if len(repos) > maxGitHubRepoText {
		repos = repos[:maxGitHubRepoText]
	}
	for _, repo := range repos {
		b.WriteString(repo.Name)
		if repo.Description != "" {
			fmt.Fprintf(&b, ": %s", repo.Description)
		}
		if len(repo.Languages) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(repo.Languages, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// buildSummary writes the one-line profile summary.
func buildSummary(dataSources []string, skills, topSkills []types.ScoredSkill) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d data source(s) and identified %d distinct skills.",
		len(dataSources), len(skills))

	if areas := topCategories(topSkills, 3); len(areas) > 0 {
		fmt.Fprintf(&b, " Top skill areas: %s.", strings.Join(areas, ", "))
	}
	if strengths := skillNames(topSkills, 3); len(strengths) > 0 {
		fmt.Fprintf(&b, " Primary strengths: %s.", strings.Join(strengths, ", "))
	}

	return b.String()
}

// topCategories returns up to n distinct categories in top-skill order.
func topCategories(skills []types.ScoredSkill, n int) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, skill := range skills {
		if seen[skill.Category] {
			continue
		}
		seen[skill.Category] = true
		categories = append(categories, skill.Category)
		if len(categories) == n {
			break
		}
	}
	return categories
}

func skillNames(skills []types.ScoredSkill, n int) []string {
	if n > len(skills) {
		n = len(skills)
	}
	names := make([]string, 0, n)
	for _, skill := range skills[:n] {
		names = append(names, skill.SkillName)
	}
	return names
}

// groupByCategory buckets skills by category, preserving confidence order
// within each bucket.
func groupByCategory(skills []types.ScoredSkill) map[string][]types.ScoredSkill {
	categories := make(map[string][]types.ScoredSkill)
	for _, skill := range skills {
		categories[skill.Category] = append(categories[skill.Category], skill)
	}
	return categories
}
