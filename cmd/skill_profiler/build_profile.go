package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/extraction"
	"github.com/jonathan/skill-profiler/internal/ingestion"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/profile"
	"github.com/jonathan/skill-profiler/internal/scoring"
	"github.com/jonathan/skill-profiler/internal/taxonomy"
	"github.com/jonathan/skill-profiler/internal/types"
)

var buildProfileCmd = &cobra.Command{
	Use:   "build-profile",
	Short: "Build a skill profile from candidate documents",
	Long:  "Build a skill profile from CV text files, a GitHub metadata document, and optional statement documents, and write it as JSON.",
	RunE:  runBuildProfile,
}

var (
	cvFiles       []string
	githubFile    string
	statementFile string
	referenceFile string
	candidateName string
	weightsFile   string
	profileOut    string
	useSemantic   bool
	buildVerbose  bool
)

func init() {
	buildProfileCmd.Flags().StringArrayVar(&cvFiles, "cv", nil, "Path to a CV text file (repeatable)")
	buildProfileCmd.Flags().StringVar(&githubFile, "github", "", "Path to a GitHub metadata JSON document")
	buildProfileCmd.Flags().StringVar(&statementFile, "statement", "", "Path to a personal statement text file")
	buildProfileCmd.Flags().StringVar(&referenceFile, "reference", "", "Path to a reference letter text file")
	buildProfileCmd.Flags().StringVar(&candidateName, "name", "", "Candidate name")
	buildProfileCmd.Flags().StringVar(&weightsFile, "weights", "", "Path to a source weights JSON document (default: embedded)")
	buildProfileCmd.Flags().StringVarP(&profileOut, "out", "o", "", "Output path for the profile JSON (required)")
	buildProfileCmd.Flags().BoolVar(&useSemantic, "semantic", false, "Enable the embedding-based detection pass (requires GEMINI_API_KEY)")
	buildProfileCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print the built profile")

	if err := buildProfileCmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(buildProfileCmd)
}

func runBuildProfile(cmd *cobra.Command, args []string) error {
	if len(cvFiles) == 0 && githubFile == "" && statementFile == "" && referenceFile == "" {
		return fmt.Errorf("at least one of --cv, --github, --statement, --reference must be provided")
	}

	input := profile.Input{Name: candidateName}

	if len(cvFiles) > 0 {
		sources, _, err := ingestion.LoadCVFiles(cvFiles)
		if err != nil {
			return fmt.Errorf("failed to load cv files: %w", err)
		}
		input.CVSources = sources
	}

	if githubFile != "" {
		data, err := ingestion.LoadGitHubData(githubFile)
		if err != nil {
			return fmt.Errorf("failed to load github data: %w", err)
		}
		input.GitHub = data
	}

	if statementFile != "" {
		text, err := ingestion.LoadStatementFile(statementFile)
		if err != nil {
			return fmt.Errorf("failed to load personal statement: %w", err)
		}
		input.PersonalStatement = text
	}

	if referenceFile != "" {
		text, err := ingestion.LoadStatementFile(referenceFile)
		if err != nil {
			return fmt.Errorf("failed to load reference letter: %w", err)
		}
		input.ReferenceLetter = text
	}

	builder, err := newBuilder()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if useSemantic {
		apiKey := llm.APIKeyFromEnv(llm.ProviderGemini)
		embedder, err := embedding.NewGeminiEmbedder(ctx, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		defer func() { _ = embedder.Close() }()

		tax, err := taxonomy.Default()
		if err != nil {
			return err
		}
		semantic, err := extraction.NewSemanticExtractor(ctx, tax, embedder)
		if err != nil {
			return fmt.Errorf("failed to prepare semantic pass: %w", err)
		}
		builder.WithSemantic(semantic)
	}

	built, warnings, err := builder.Build(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to build profile: %w", err)
	}

	if err := writeProfile(profileOut, built); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Profile written to %s (%d skills from %d source(s))\n",
		profileOut, built.Metadata.TotalSkills, built.Metadata.SourcesCount)

	if buildVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintProfile(built)
		printer.PrintWarnings(warnings)
	} else {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return nil
}

func newBuilder() (*profile.Builder, error) {
	tax, err := taxonomy.Default()
	if err != nil {
		return nil, err
	}
	extractor, err := extraction.NewExtractor(tax)
	if err != nil {
		return nil, err
	}

	var weights *config.SourceWeights
	if weightsFile != "" {
		weights, err = config.LoadSourceWeights(weightsFile)
	} else {
		weights, err = config.DefaultSourceWeights()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load source weights: %w", err)
	}

	scorer, err := scoring.NewScorer(weights)
	if err != nil {
		return nil, err
	}

	return profile.NewBuilder(extractor, scorer)
}

func writeProfile(path string, built *types.SkillProfile) error {
	data, err := json.MarshalIndent(built, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
