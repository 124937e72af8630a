// Package rag answers free-form questions about a skill profile. The profile
// is flattened into text fragments, indexed in an in-memory vector store,
// and retrieved fragments are handed to the LLM as the only permitted
// context. Each QA session owns its own index and conversation state.
package rag

import (
	"fmt"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Fragment metadata types. Search filters and citations dispatch on these.
const (
	FragmentSkill             = "skill"
	FragmentCVText            = "cv_text"
	FragmentGitHubRepo        = "github_repo"
	FragmentPersonalStatement = "personal_statement"
	FragmentReferenceLetter   = "reference_letter"
	FragmentProfileSummary    = "profile_summary"
)

const (
	// cvChunkWords is the CV chunk size in words. CV prose is long and
	// unstructured, so it is split before indexing to keep retrieval focused.
	cvChunkWords = 400

	// maxIndexedRepos bounds GitHub repositories in the index. Repos beyond
	// the first ten are usually forks and noise.
	maxIndexedRepos = 10

	// maxEvidenceInFragment bounds evidence snippets per skill fragment.
	maxEvidenceInFragment = 3
)

// Fragment is one indexable unit of profile text with its search metadata.
type Fragment struct {
	Text     string
	Metadata map[string]any
}

// BuildFragments flattens a profile into the fragments the QA index is
// built from: one per scored skill, one per CV chunk, one per GitHub
// repository, and one per statement document.
func BuildFragments(profile *types.SkillProfile) []Fragment {
	if profile == nil {
		return nil
	}

	var fragments []Fragment

	if strings.TrimSpace(profile.Summary) != "" {
		fragments = append(fragments, Fragment{
			Text:     fmt.Sprintf("Profile summary for %s: %s", profile.Name, profile.Summary),
			Metadata: map[string]any{"type": FragmentProfileSummary},
		})
	}

	for _, skill := range profile.Skills {
		fragments = append(fragments, skillFragment(skill))
	}

	if cv := profile.RawData.CV; cv != nil && strings.TrimSpace(cv.RawText) != "" {
		for i, chunk := range chunkWords(cv.RawText, cvChunkWords) {
			fragments = append(fragments, Fragment{
				Text: chunk,
				Metadata: map[string]any{
					"type":     FragmentCVText,
					"chunk_id": i,
				},
			})
		}
	}

	if gh := profile.RawData.GitHub; gh != nil {
		repos := gh.Repositories
		if len(repos) > maxIndexedRepos {
			repos = repos[:maxIndexedRepos]
		}
		for _, repo := range repos {
			fragments = append(fragments, repoFragment(repo))
		}
	}

	if doc := profile.RawData.PersonalStatement; doc != nil && strings.TrimSpace(doc.Content) != "" {
		fragments = append(fragments, Fragment{
			Text:     doc.Content,
			Metadata: map[string]any{"type": FragmentPersonalStatement},
		})
	}
	if doc := profile.RawData.ReferenceLetter; doc != nil && strings.TrimSpace(doc.Content) != "" {
		fragments = append(fragments, Fragment{
			Text:     doc.Content,
			Metadata: map[string]any{"type": FragmentReferenceLetter},
		})
	}

	return fragments
}

// skillFragment renders a scored skill as retrievable prose. Confidence and
// sources are spelled out in the text so the LLM can cite them.
func skillFragment(skill types.ScoredSkill) Fragment {
	var b strings.Builder
	fmt.Fprintf(&b, "Skill: %s. Category: %s. Confidence: %.2f. Sources: %s.",
		skill.SkillName, skill.Category, skill.FinalConfidence, strings.Join(skill.Sources, ", "))

	evidence := skill.Evidence
	if len(evidence) > maxEvidenceInFragment {
		evidence = evidence[:maxEvidenceInFragment]
	}
	if len(evidence) > 0 {
		fmt.Fprintf(&b, " Evidence: %s", strings.Join(evidence, "; "))
	}

	return Fragment{
		Text: b.String(),
		Metadata: map[string]any{
			"type":       FragmentSkill,
			"skill_name": skill.SkillName,
			"category":   skill.Category,
			"confidence": skill.FinalConfidence,
			"level":      skill.Level,
		},
	}
}

func repoFragment(repo types.Repository) Fragment {
	var b strings.Builder
	b.WriteString(repo.Name)
	if strings.TrimSpace(repo.Description) != "" {
		fmt.Fprintf(&b, ": %s", repo.Description)
	}
	if len(repo.Languages) > 0 {
		fmt.Fprintf(&b, ". Languages: %s", strings.Join(repo.Languages, ", "))
	}
	if len(repo.Topics) > 0 {
		fmt.Fprintf(&b, ". Topics: %s", strings.Join(repo.Topics, ", "))
	}

	return Fragment{
		Text: b.String(),
		Metadata: map[string]any{
			"type":      FragmentGitHubRepo,
			"repo_name": repo.Name,
		},
	}
}

// chunkWords splits text into chunks of at most size words, preserving
// word order and dropping only whitespace.
func chunkWords(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
