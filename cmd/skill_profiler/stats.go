package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/rag"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what a built profile would index",
	Long:  "Report the fragments a Q&A session would index for a built profile, grouped by fragment type. Runs offline; nothing is embedded.",
	RunE:  runStats,
}

var statsProfileFile string

func init() {
	statsCmd.Flags().StringVarP(&statsProfileFile, "profile", "p", "", "Path to a profile JSON written by build-profile (required)")

	if err := statsCmd.MarkFlagRequired("profile"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(statsProfileFile)
	if err != nil {
		return err
	}

	fragments := rag.BuildFragments(profile)

	counts := make(map[string]int)
	for _, fragment := range fragments {
		if fragmentType, ok := fragment.Metadata["type"].(string); ok {
			counts[fragmentType]++
		}
	}

	fragmentTypes := make([]string, 0, len(counts))
	for fragmentType := range counts {
		fragmentTypes = append(fragmentTypes, fragmentType)
	}
	sort.Strings(fragmentTypes)

	fmt.Fprintf(os.Stdout, "Profile: %s\n", statsProfileFile)
	fmt.Fprintf(os.Stdout, "Skills: %d (top %d highlighted)\n", len(profile.Skills), len(profile.TopSkills))
	fmt.Fprintf(os.Stdout, "Indexable fragments: %d\n", len(fragments))
	for _, fragmentType := range fragmentTypes {
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", fragmentType, counts[fragmentType])
	}

	return nil
}
