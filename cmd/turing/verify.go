package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <manifest.yaml>",
	Short: "Run a batch of machines and check their results",
	Long: `Runs every case listed in the manifest and compares the outcome and the final
state against the expectations. Exits with status 1 if any case fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := cli.Verify(cmd.Context(), args[0], os.Stdout, logOptions(cmd))
		if err != nil {
			return err
		}
		for _, r := range results {
			if !r.Passed {
				return fmt.Errorf("verification failed")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
