// ABOUTME: MCP server command for newsticker CLI
// ABOUTME: Runs the engine in the background and serves its operations on stdio

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

The engine runs in the background (rotating and refreshing on its usual
timers) while agents read the current article, navigate, pause, and
trigger refreshes through structured tools.

The server communicates via JSON-RPC on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go eng.Run(ctx)

		server := mcp.NewServer(eng)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
