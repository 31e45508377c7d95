package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Start or continue the guided interview",
	Long: `Asks the assistant to run the guided interview that collects family
details not found in the documents. Answers are recorded per topic and
become the highest-priority source of truth.`,
	RunE: runInterview,
}

var interviewShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recorded interview answers",
	RunE:  runInterviewShow,
}

func init() {
	interviewCmd.AddCommand(interviewShowCmd)
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	return sendTurn(context.Background(), cmd, chatService.InterviewPrompt())
}

func runInterviewShow(cmd *cobra.Command, _ []string) error {
	if sessionReader == nil {
		return errors.New("session not configured")
	}

	entries := sessionReader.Interview()
	if len(entries) == 0 {
		cmd.Println("No interview answers recorded yet. Run 'eredita interview'.")
		return nil
	}

	// Grouped by topic in interview order, indices kept absolute so they
	// match what the assistant sees.
	known := make(map[domain.Topic]bool)
	for _, topic := range domain.Topics() {
		known[topic] = true
		printTopic(cmd, entries, topic)
	}
	for i := range entries {
		if !known[entries[i].Topic] {
			printTopic(cmd, entries, entries[i].Topic)
			known[entries[i].Topic] = true
		}
	}
	return nil
}

func printTopic(cmd *cobra.Command, entries []domain.InterviewEntry, topic domain.Topic) {
	printed := false
	for i := range entries {
		if entries[i].Topic != topic {
			continue
		}
		if !printed {
			cmd.Printf("%s\n", topic.Label())
			printed = true
		}
		cmd.Printf("  [%d] %s\n      %s\n", i, entries[i].Question, entries[i].Answer)
	}
}
