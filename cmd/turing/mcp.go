package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on stdio exposing the simulate, validate and graph tools,
so AI agents can run machine descriptions directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		// Logs go to stderr; stdout carries JSON-RPC.
		log.SetOutput(os.Stderr)
		logger := logging.New(level)

		logger.Info("starting MCP server (stdio)")
		limit, _ := cmd.Flags().GetInt("max-steps-limit")
		return mcp.NewServer(logger, mcp.WithMaxStepsLimit(limit)).ServeStdio()
	},
}

func init() {
	mcpCmd.Flags().Int("max-steps-limit", mcp.DefaultMaxStepsLimit, "Largest step budget a simulate call may ask for")
	rootCmd.AddCommand(mcpCmd)
}
