// Package main provides the skill profiler CLI: building skill profiles
// from candidate documents and answering questions about them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_profiler",
	Short: "Skill profiling and profile Q&A",
	Long:  "Skill Profiler builds a per-individual skill profile from CVs, GitHub metadata, and statement documents, and answers grounded questions about the profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
