package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driving/mcp"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
the knowledge base.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "ragdex": {
        "command": "/path/to/ragdex",
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

	if err := ensureServices(); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Retriever: retrieveSvc,
		Store:     vectorStore,
	}
	// Expose the ask tool only when generation is configured.
	if asker, err := newAsker(); err == nil {
		ports.Asker = asker
	} else {
		logger.Pipeline("mcp").Debug("ask tool disabled: %v", err)
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	addr := ""
	if port > 0 {
		addr = fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	}
	return server.Serve(cmd.Context(), addr)
}
