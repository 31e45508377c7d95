package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the estate report",
	Long: `Prints the report sections maintained by the assistant, followed by
the heirs and assets parsed from the scanned documents and the
preliminary Italian succession shares.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if sessionReader == nil {
		return errors.New("session not configured")
	}

	sections := sessionReader.Reports()
	if len(sections) == 0 {
		cmd.Println("No report sections yet. Ask the assistant to build one.")
	}
	for i := range sections {
		sec := &sections[i]
		cmd.Printf("## %s\n", sec.Title)
		cmd.Println(sec.Content)
		cmd.Printf("(updated %s)\n", sec.UpdatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}

	if snapshotSource == nil {
		return nil
	}
	snapshot := snapshotSource.Current()
	if snapshot == nil {
		cmd.Println("No scan has run yet; run 'eredita scan' first.")
		return nil
	}

	printHeirs(cmd, snapshot.Heirs)
	printAssets(cmd, snapshot.Assets)
	return nil
}

func printHeirs(cmd *cobra.Command, heirs []domain.HeirRecord) {
	if len(heirs) == 0 {
		return
	}

	cmd.Printf("Heirs (%d)\n", len(heirs))
	for i := range heirs {
		h := &heirs[i]
		parts := []string{h.Name}
		if h.DateOfBirth != "" {
			parts = append(parts, "born "+h.DateOfBirth)
		}
		if h.MaritalStatusIT != "" {
			parts = append(parts, h.MaritalStatusIT)
		}
		cmd.Printf("  %d. %s\n", i+1, strings.Join(parts, ", "))
	}

	for _, group := range domain.FindTwins(heirs) {
		cmd.Printf("  Twins (%s): %s\n", group.DateOfBirth, strings.Join(group.Names, ", "))
	}

	shares := domain.ComputeSuccession(len(heirs))
	cmd.Printf("  Legittima %s, disponibile %s, minimum %.1f%% per heir\n",
		shares.Legittima, shares.Disponibile, shares.PerHeirPct)
	cmd.Println()
}

func printAssets(cmd *cobra.Command, assets []domain.AssetRecord) {
	if len(assets) == 0 {
		return
	}
	cmd.Printf("Assets (%d)\n", len(assets))
	for i := range assets {
		cmd.Printf("  - %s\n", assets[i].Description)
	}
	cmd.Println()
}
