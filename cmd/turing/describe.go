package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <machine.txt>",
	Short: "Print a readable summary of a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Describe(args[0], os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
