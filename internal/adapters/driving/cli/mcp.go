package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can compose prompts.

Tools: compose, expand, sample, lookup_slot, disabled_options.
Resources: promptsmith://packs and promptsmith://packs/{packId}.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, for example to test with the MCP Inspector.

Examples:
  # Stdio mode (default, for desktop assistants)
  promptsmith mcp serve

  # HTTP mode
  promptsmith mcp serve --port 8090

Assistant configuration:
  {
    "mcpServers": {
      "promptsmith": {
        "command": "/path/to/promptsmith",
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

	server, err := mcp.NewServer(&mcp.Ports{
		Packs:   packService,
		Compose: composeService,
	})
	if err != nil {
		return err
	}

	ctx, stop := startWatcher(cmd.Context())
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
