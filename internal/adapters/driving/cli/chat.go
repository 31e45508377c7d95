package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the estate assistant",
	Long: `Sends a message to the estate assistant. With a message argument a
single turn is run and the reply printed. Without arguments an
interactive prompt is opened; type 'exit' or press Ctrl-D to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the chat history",
	RunE:  runChatClear,
}

func init() {
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		return sendTurn(ctx, cmd, args[0])
	}

	cmd.Println("Eredità assistant. Type 'exit' to leave.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := sendTurn(ctx, cmd, line); err != nil {
			return err
		}
	}
}

func sendTurn(ctx context.Context, cmd *cobra.Command, message string) error {
	reply, err := chatService.Send(ctx, message)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return errors.New("no model configured - run 'eredita setup llm' or set ANTHROPIC_API_KEY")
		}
		return fmt.Errorf("chat failed: %w", err)
	}
	cmd.Println(reply)
	return nil
}

func runChatClear(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := chatService.ClearHistory(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("Chat history cleared.")
	return nil
}
