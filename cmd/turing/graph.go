package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine.txt>",
	Short: "Export the state diagram",
	Long:  `Outputs the transition diagram of the machine as Graphviz DOT (default) or Mermaid.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		trace, _ := cmd.Flags().GetBool("trace")
		return cli.Graph(cmd.Context(), args[0], format, trace, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", "dot", "Output format: dot or mermaid")
	graphCmd.Flags().Bool("trace", false, "Run the machine and highlight visited states (mermaid only)")
}
