package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface: a chat panel for
talking to the assistant next to a live view of the estate report.
Document changes in the store are picked up in the background.

Controls:
  Enter     - Send message
  Tab       - Switch between chat and report panels
  Ctrl+N    - Start / continue the guided interview
  ↑/k, ↓/j  - Scroll the focused panel
  Ctrl+C    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so terminal state is restorable with a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Chat:      chatService,
		Snapshots: snapshotSource,
		Session:   sessionReader,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// The TUI is long-running; the poller keeps the snapshot fresh and
	// the refresh channel drives re-renders.
	if poller != nil {
		pollCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go poller.Start(pollCtx) //nolint:errcheck
		defer poller.Stop()
		app.WithRefresh(poller.Refresh())
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
