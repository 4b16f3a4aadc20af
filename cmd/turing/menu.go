package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu [dir]...",
	Short: "Pick and run machines interactively",
	Long: `Lists the mt_*.txt machines found in the given directories (MT1 and MT2 by default).
The selected machine runs with a budget of 200 steps; its trace and DOT diagram
are written next to the description.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunMenu(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
