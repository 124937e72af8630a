package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/rag"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive Q&A session over a built profile",
	Long:  "Index a built profile and answer questions interactively. Commands: /reset clears the conversation, /stats prints session statistics, /quit exits.",
	RunE:  runChat,
}

var (
	chatProfileFile string
	chatTopK        int
)

func init() {
	chatCmd.Flags().StringVarP(&chatProfileFile, "profile", "p", "", "Path to a profile JSON written by build-profile (required)")
	chatCmd.Flags().IntVarP(&chatTopK, "top-k", "k", 0, "Number of fragments to retrieve per question (default 5)")

	if err := chatCmd.MarkFlagRequired("profile"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, closeSession, err := newSession(ctx, chatProfileFile)
	if err != nil {
		return err
	}
	defer closeSession()

	printer := observability.NewPrinter(os.Stdout)

	fmt.Fprintln(os.Stdout, "Profile indexed. Ask a question, or try one of:")
	for _, question := range rag.QuickQuestions() {
		fmt.Fprintf(os.Stdout, "  - %s\n", question)
	}
	fmt.Fprintln(os.Stdout, "Commands: /reset, /stats, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "\n> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			session.ResetConversation()
			fmt.Fprintln(os.Stdout, "Conversation cleared.")
			continue
		case line == "/stats":
			printer.PrintSessionStats(session.Stats())
			continue
		}

		answer, err := session.Query(ctx, line, chatTopK)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printer.PrintAnswer(answer)
	}

	return scanner.Err()
}
