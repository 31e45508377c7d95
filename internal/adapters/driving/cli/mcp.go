package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eredita-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the
estate: ask questions, read the parsed heirs and assets, and read the
report.

By default the server communicates over stdio using JSON-RPC. Use
--port to serve HTTP instead (MCP Inspector, remote access).

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "eredita": {
        "command": "/path/to/eredita",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Chat:      chatService,
		Snapshots: snapshotSource,
		Session:   sessionReader,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// Background polling keeps the snapshot fresh for resource reads.
	if poller != nil {
		go poller.Start(cmd.Context()) //nolint:errcheck
		defer poller.Stop()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
