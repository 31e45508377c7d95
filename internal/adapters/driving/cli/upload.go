package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file> [store-path]",
	Short: "Upload a file to the document store",
	Long: `Uploads a local file to the document store, overwriting any existing
file at the same path. Without a store path the file lands in the store
root under its own name. The next poll picks the new file up.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	storePath := "/" + filepath.Base(args[0])
	if len(args) > 1 {
		storePath = args[1]
		if storePath == "" || storePath[0] != '/' {
			storePath = "/" + storePath
		}
	}

	if err := documentStore.Upload(context.Background(), content, storePath); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s (%d bytes)\n", storePath, len(content))
	return nil
}
