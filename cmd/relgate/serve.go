// Package main provides the entry point for the relgate CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	relgatemcp "github.com/relgate/relgate/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run relgate as a Model Context Protocol (MCP) server over stdio.

This exposes journal verification as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "relgate": {
        "command": "relgate",
        "args": ["serve"]
      }
    }
  }

Available tools: verify, requirements, status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := relgatemcp.NewServer(buildVersion(), repo)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&repo, "repo", ".", "Local journal repository root")

	return cmd
}
