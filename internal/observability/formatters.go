// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-profiler/internal/rag"
	"github.com/jonathan/skill-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of a built skill profile.
func (p *Printer) PrintProfile(profile *types.SkillProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	}
	sb.WriteString(fmt.Sprintf("Sources:  %s\n", strings.Join(profile.DataSources, ", ")))
	sb.WriteString(fmt.Sprintf("Skills:   %d\n", profile.Metadata.TotalSkills))
	sb.WriteString("\n")

	if len(profile.TopSkills) > 0 {
		sb.WriteString("Top Skills:\n")
		count := min(len(profile.TopSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := profile.TopSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s  %.3f (%s)\n",
				skill.SkillName, skill.FinalConfidence, skill.Level))
		}
		if len(profile.TopSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.TopSkills)-maxItemsToShow))
		}
	}

	p.printBox("SKILL PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillDetail outputs one skill's sources and confidence breakdown.
func (p *Printer) PrintSkillDetail(skill *types.ScoredSkill) {
	if skill == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence: %.3f (%s)\n", skill.FinalConfidence, skill.Level))
	sb.WriteString(fmt.Sprintf("Sources:    %s\n", strings.Join(skill.Sources, ", ")))

	if len(skill.Evidence) > 0 {
		sb.WriteString("\nEvidence:\n")
		count := min(len(skill.Evidence), 3)
		for i := 0; i < count; i++ {
			evidence := skill.Evidence[i]
			if len(evidence) > 50 {
				evidence = evidence[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", evidence))
		}
		if len(skill.Evidence) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skill.Evidence)-3))
		}
	}

	p.printBox(strings.ToUpper(skill.SkillName), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnswer outputs a generated answer with its citations.
func (p *Printer) PrintAnswer(answer *rag.Answer) {
	if answer == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(answer.Text)

	if len(answer.Citations) > 0 {
		sb.WriteString("\n\nSources:\n")
		count := min(len(answer.Citations), maxItemsToShow)
		for i := 0; i < count; i++ {
			citation := answer.Citations[i]
			label := citation.Type
			switch citation.Type {
			case rag.FragmentSkill:
				label = fmt.Sprintf("skill:%s", citation.SkillName)
			case rag.FragmentGitHubRepo:
				label = fmt.Sprintf("repo:%s", citation.RepoName)
			case rag.FragmentCVText:
				label = fmt.Sprintf("cv chunk %d", citation.ChunkID)
			}
			sb.WriteString(fmt.Sprintf("  [%d] %s (%.2f)\n", i+1, label, citation.Similarity))
		}
		if len(answer.Citations) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(answer.Citations)-maxItemsToShow))
		}
	}

	p.printBox("ANSWER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSessionStats outputs QA session statistics.
func (p *Printer) PrintSessionStats(stats rag.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:   %s\n", stats.SessionID))
	sb.WriteString(fmt.Sprintf("Documents: %d\n", stats.IndexedDocuments))
	sb.WriteString(fmt.Sprintf("Turns:     %d", stats.ConversationTurns))

	p.printBox("SESSION", sb.String())
}

// PrintWarnings outputs non-fatal build warnings.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for i, warning := range warnings {
		if len(warning) > 50 {
			warning = warning[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s", warning))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WARNINGS", sb.String())
}
