// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/bmi/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "bmi": {
        "command": "bmi",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  calculate_bmi   Calculate and classify without storing
  record_bmi      Store a measurement for a person
  bmi_history     A person's history, oldest first (optionally a PNG chart)
  list_people     Every name with stored measurements

AVAILABLE RESOURCES:

  bmi://recent    Last 10 measurements
  bmi://people    Each person with their latest BMI`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, log)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
