package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/eredita-cli/internal/core/services"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure storage and model credentials",
	Long: `View and change configuration: the storage backend holding the family
documents and the model credentials used by the assistant.

Secrets can also be supplied via environment variables (DROPBOX_APP_KEY,
DROPBOX_APP_SECRET, DROPBOX_REFRESH_TOKEN, ANTHROPIC_API_KEY) or a
.env.local file; values in the config file take precedence.`,
	RunE: runSetupShow,
}

var setupShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runSetupShow,
}

var setupStorageCmd = &cobra.Command{
	Use:   "storage [dropbox|local]",
	Short: "Select the storage backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetupStorage,
}

var setupDropboxCmd = &cobra.Command{
	Use:   "dropbox",
	Short: "Configure Dropbox credentials",
	Long: `Stores the Dropbox app key, app secret and refresh token. The refresh
token is exchanged for short-lived access tokens automatically.`,
	RunE: runSetupDropbox,
}

var setupLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the model API key",
	RunE:  runSetupLLM,
}

func init() {
	setupCmd.AddCommand(setupShowCmd)
	setupCmd.AddCommand(setupStorageCmd)
	setupCmd.AddCommand(setupDropboxCmd)
	setupCmd.AddCommand(setupLLMCmd)
	rootCmd.AddCommand(setupCmd)
}

func runSetupShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.StorageBackend)
	if settings.StorageBackend == services.StorageLocal {
		cmd.Printf("  Root: %s\n", settings.LocalRoot)
	}
	cmd.Printf("  Scan folder: %s\n", displayFolder(settings.ScanFolder))
	cmd.Printf("  Poll interval: %s\n", settings.PollInterval)
	cmd.Println()

	cmd.Println("[Dropbox]")
	printCredential(cmd, "App key", settings.DropboxAppKey)
	printCredential(cmd, "App secret", settings.DropboxAppSecret)
	printCredential(cmd, "Refresh token", settings.DropboxRefreshToken)
	cmd.Println()

	cmd.Println("[Model]")
	cmd.Printf("  Model: %s\n", settings.LLMModel)
	printCredential(cmd, "API key", settings.LLMAPIKey)
	return nil
}

func displayFolder(folder string) string {
	if folder == "" {
		return "(store root)"
	}
	return folder
}

func printCredential(cmd *cobra.Command, label, value string) {
	if value == "" {
		cmd.Printf("  %s: (not set)\n", label)
		return
	}
	cmd.Printf("  %s: %s\n", label, maskSecret(value))
}

func runSetupStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetStorageBackend(args[0]); err != nil {
		return err
	}
	cmd.Printf("Storage backend set to %s.\n", args[0])
	return nil
}

func runSetupDropbox(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Print("App key: ")
	appKey := readLine(reader)
	cmd.Print("App secret: ")
	appSecret := readSecret(cmd)
	cmd.Print("Refresh token: ")
	refreshToken := readSecret(cmd)

	if appKey == "" || appSecret == "" || refreshToken == "" {
		return errors.New("all three credentials are required")
	}

	if err := settingsService.SetDropboxCredentials(appKey, appSecret, refreshToken); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	cmd.Println("Dropbox credentials saved.")
	return nil
}

func runSetupLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("API key: ")
	apiKey := readSecret(cmd)
	if apiKey == "" {
		return errors.New("API key is required")
	}

	if err := settingsService.SetLLMAPIKey(apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Println("API key saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(cmd *cobra.Command) string {
	// Read without echo when stdin is a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
