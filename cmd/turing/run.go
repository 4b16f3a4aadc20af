package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine.txt>",
	Short: "Simulate a machine and write its configurations",
	Long: `Parses the machine description, simulates it on its input and writes one
configuration per line. Without -o the trace is printed to stdout.

Defaults for --max-steps, --conf, --allow-S and implicit rejection are read from
.turing.yaml in the current directory (or --config) and overridden by flags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Spec: args[0], Log: logOptions(cmd)}
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.DOT, _ = cmd.Flags().GetString("dot")
		opts.Mermaid, _ = cmd.Flags().GetString("mermaid")
		opts.Plot, _ = cmd.Flags().GetBool("plot")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.ConfigPath, _ = cmd.Flags().GetString("config")

		// Only flags given explicitly override the config file.
		if cmd.Flags().Changed("max-steps") {
			n, _ := cmd.Flags().GetInt("max-steps")
			opts.MaxSteps = &n
		}
		if cmd.Flags().Changed("conf") {
			c, _ := cmd.Flags().GetString("conf")
			opts.Conf = &c
		}
		if cmd.Flags().Changed("allow-S") {
			b, _ := cmd.Flags().GetBool("allow-S")
			opts.AllowStay = &b
		}
		if cmd.Flags().Changed("no-implicit-reject") {
			b, _ := cmd.Flags().GetBool("no-implicit-reject")
			implicit := !b
			opts.ImplicitReject = &implicit
		}

		if opts.Verbose && term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(os.Stdout)
		}
		return cli.Execute(cmd.Context(), opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("output", "o", "", "Write the configurations to this file instead of stdout")
	runCmd.Flags().Int("max-steps", 0, "Stop after this many steps (0 means no limit)")
	runCmd.Flags().String("conf", "u q v", `Configuration format: "u q v" or "uqv"`)
	runCmd.Flags().Bool("allow-S", false, "Allow the stay move S in transitions")
	runCmd.Flags().Bool("no-implicit-reject", false, "Leave runs with no applicable transition undecided instead of rejecting")
	runCmd.Flags().String("dot", "", "Also write the state diagram as Graphviz DOT to this file")
	runCmd.Flags().String("mermaid", "", "Also write the state diagram as Mermaid (visited states highlighted) to this file")
	runCmd.Flags().Bool("plot", false, "Plot the head position per step")
	runCmd.Flags().BoolP("verbose", "v", false, "Print details about the parsed machine")
	runCmd.Flags().String("config", "", "Defaults file (default .turing.yaml)")
}
