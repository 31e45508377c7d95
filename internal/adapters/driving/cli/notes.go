package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List saved notes",
	Long: `Lists the corrections and facts the assistant has saved from the
conversation. Indices are positional; removing a note renumbers the
ones after it.`,
	RunE: runNotes,
}

func init() {
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, _ []string) error {
	if sessionReader == nil {
		return errors.New("session not configured")
	}

	notes := sessionReader.Notes()
	if len(notes) == 0 {
		cmd.Println("No notes saved yet.")
		return nil
	}

	for i := range notes {
		cmd.Printf("  [%d] %s (added %s)\n", i, notes[i].Note, notes[i].AddedAt.Format("2006-01-02"))
	}
	return nil
}
