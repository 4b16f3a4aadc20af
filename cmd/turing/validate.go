package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine.txt>...",
	Short: "Check machine descriptions for consistency",
	Long: `Parses and validates each machine description, then crawls its transition graph
from the initial state and reports unreachable states, dead ends and halting states
that are never entered.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		allowStay, _ := cmd.Flags().GetBool("allow-S")
		strict, _ := cmd.Flags().GetBool("strict")

		failed := 0
		for _, spec := range args {
			findings, err := cli.Validate(spec, allowStay, os.Stdout)
			if err != nil {
				fmt.Printf("%s: %v\n", spec, err)
				failed++
				continue
			}
			if strict && len(findings) > 0 {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d descriptions failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("allow-S", false, "Allow the stay move S in transitions")
	validateCmd.Flags().Bool("strict", false, "Treat warnings as failures")
}
