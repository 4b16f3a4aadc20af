package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
)

// Graph writes the DOT or Mermaid description of the machine at spec.
// With withTrace, the machine is run first and the Mermaid output highlights the visited states.
func Graph(ctx context.Context, spec, format string, withTrace bool, w io.Writer) error {
	// Bounded so a looping machine still produces a diagram.
	eng, err := turing.Load(spec, turing.WithAllowStay(true), turing.WithMaxSteps(MenuMaxSteps))
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "", "dot":
		fmt.Fprintln(w, eng.DOT())
		return nil
	case "mermaid":
		var res *turing.Result
		if withTrace {
			if res, err = eng.Run(ctx); err != nil {
				return err
			}
		}
		fmt.Fprint(w, eng.Mermaid(res))
		return nil
	}
	return fmt.Errorf("unknown graph format %q (expected dot or mermaid)", format)
}

// Validate parses and lints spec. It returns the findings; err is set only for
// descriptions that fail to parse or validate.
func Validate(spec string, allowStay bool, w io.Writer) ([]validator.Finding, error) {
	eng, err := turing.Load(spec, turing.WithAllowStay(allowStay))
	if err != nil {
		return nil, withFlagHint(err)
	}
	findings := validator.Lint(eng.Machine())
	for _, f := range findings {
		fmt.Fprintf(w, "warning: %s\n", f)
	}
	fmt.Fprintf(w, "%s: valid (%d states, %d transitions, %d warnings)\n",
		filepath.Base(spec), len(eng.Machine().States()), len(eng.Machine().Transitions()), len(findings))
	return findings, nil
}

// Describe renders a markdown summary of the machine at spec, styled with glamour on terminals.
func Describe(spec string, w io.Writer) error {
	eng, err := turing.Load(spec, turing.WithAllowStay(true))
	if err != nil {
		return err
	}
	md := tui.DescribeMarkdown(eng.Name, eng.Machine(), eng.Input())
	if !isTerminal(w) {
		fmt.Fprint(w, md)
		return nil
	}
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
