package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytscribe/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run minimal MCP server for ytscribe",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytscribe functionality as tools.

The MCP server provides two tools:
- get_youtube_transcript: Extract timestamped captions for a video
- summarize_youtube_video: Extract captions and summarize them

This allows AI assistants to use ytscribe capabilities through the MCP protocol.

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  ytscribe mcp

  # Run MCP server with HTTP transport on port 8081
  ytscribe mcp --transport=http --port=8081`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so keep stdout clean
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app := internal.NewApp(config)
		mcpServer := internal.NewMCPServer(app)

		if transport == "http" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting ytscribe MCP server on HTTP port %d...\n", port)
		}

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8081, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
