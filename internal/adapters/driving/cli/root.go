// Package cli provides the cobra command-line interface for Eredità.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
	"github.com/custodia-labs/eredita-cli/internal/core/services"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands guard against nil so the binary stays
// usable when a dependency is unconfigured.
var (
	chatService     driving.ChatService
	scanService     driving.ScanService
	snapshotSource  driving.SnapshotSource
	sessionReader   driving.SessionReader
	settingsService *services.SettingsService
	documentStore   driven.DocumentStore
	poller          *services.Poller
)

// Services bundles everything the commands need. Fields may be nil;
// each command reports its own missing dependency.
type Services struct {
	Chat      driving.ChatService
	Scan      driving.ScanService
	Snapshots driving.SnapshotSource
	Session   driving.SessionReader
	Settings  *services.SettingsService
	Store     driven.DocumentStore
	Poller    *services.Poller
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	chatService = s.Chat
	scanService = s.Scan
	snapshotSource = s.Snapshots
	sessionReader = s.Session
	settingsService = s.Settings
	documentStore = s.Store
	poller = s.Poller
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eredita",
	Short: "Family-estate document assistant",
	Long: `Eredità scans a shared document folder, extracts heir and asset
facts from the files it finds, and answers questions about the estate
through a conversational assistant that maintains a living report.

Run without a subcommand to launch the interactive terminal UI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
