package main

import (
	"fmt"
	"steergen/internal/mcpserver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes the toolset over MCP stdio
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve steering tools over the Model Context Protocol",
	Long: `Serves the steering toolset over MCP on stdio.

Register steergen in an MCP client (Kiro, Cursor, Claude Desktop) to expose
framework detection, project analysis, and steering generation as tools:

  {
    "mcpServers": {
      "steergen": {
        "command": "steergen",
        "args": ["serve"]
      }
    }
  }

All logging goes to stderr; stdout carries only the MCP transport.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s := mcpserver.New(version, mcpserver.Deps{
		Analysis: analysisOptions(),
		Log:      logger,
	})

	logger.Info("Serving MCP over stdio", zap.String("version", version))
	if err := mcpserver.ServeStdio(s); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
