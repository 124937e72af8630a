package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/rag"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask one question about a built profile",
	Long:  "Index a built profile and answer a single question (or verify a single claim) grounded in the profile's content.",
	RunE:  runAsk,
}

var (
	askProfileFile string
	askQuestion    string
	askTopK        int
	askVerify      bool
	askVerbose     bool
)

func init() {
	askCmd.Flags().StringVarP(&askProfileFile, "profile", "p", "", "Path to a profile JSON written by build-profile (required)")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question to ask, or claim to verify with --verify (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of fragments to retrieve (default 5)")
	askCmd.Flags().BoolVar(&askVerify, "verify", false, "Treat the question as a claim and verify it against the profile")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Print the answer with citations in a box")

	if err := askCmd.MarkFlagRequired("profile"); err != nil {
		panic(err)
	}
	if err := askCmd.MarkFlagRequired("question"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, closeSession, err := newSession(ctx, askProfileFile)
	if err != nil {
		return err
	}
	defer closeSession()

	var answer *rag.Answer
	if askVerify {
		answer, err = session.Verify(ctx, askQuestion)
	} else {
		answer, err = session.Query(ctx, askQuestion, askTopK)
	}
	if err != nil {
		return err
	}

	if askVerbose {
		observability.NewPrinter(os.Stdout).PrintAnswer(answer)
		return nil
	}

	fmt.Fprintln(os.Stdout, answer.Text)
	return nil
}
