package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
)

// RunOptions contains all the configuration for the Run command.
// Pointer fields are nil when the flag was not given, so file defaults can fill them.
type RunOptions struct {
	Spec           string
	Output         string
	MaxSteps       *int
	Conf           *string
	AllowStay      *bool
	ImplicitReject *bool
	DOT            string
	Mermaid        string
	Plot           bool
	Verbose        bool
	ConfigPath     string
	Log            LogOptions
}

// settings is RunOptions after merging flags, the config file and built-in defaults.
type settings struct {
	maxSteps       int
	variant        domain.Variant
	allowStay      bool
	implicitReject bool
}

func resolveSettings(opts RunOptions) (settings, error) {
	defaults, err := config.LoadRunDefaults(opts.ConfigPath)
	if err != nil {
		return settings{}, err
	}

	s := settings{implicitReject: true}
	conf := ""
	if defaults.MaxSteps != nil {
		s.maxSteps = *defaults.MaxSteps
	}
	if defaults.Conf != nil {
		conf = *defaults.Conf
	}
	if defaults.AllowStay != nil {
		s.allowStay = *defaults.AllowStay
	}
	if defaults.ImplicitReject != nil {
		s.implicitReject = *defaults.ImplicitReject
	}

	// Explicit flags win.
	if opts.MaxSteps != nil {
		s.maxSteps = *opts.MaxSteps
	}
	if opts.Conf != nil {
		conf = *opts.Conf
	}
	if opts.AllowStay != nil {
		s.allowStay = *opts.AllowStay
	}
	if opts.ImplicitReject != nil {
		s.implicitReject = *opts.ImplicitReject
	}

	if s.maxSteps < 0 {
		return settings{}, fmt.Errorf("--max-steps must be a positive integer, got %d", s.maxSteps)
	}
	s.variant, err = domain.ParseVariant(conf)
	if err != nil {
		return settings{}, err
	}
	return s, nil
}

// Execute handles the 'run' command: simulate, write the trace and print the summary to stdout.
func Execute(ctx context.Context, opts RunOptions, stdout io.Writer) error {
	logger, closeLog, err := createLogger(opts.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := resolveSettings(opts)
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Fprintf(stdout, "Reading machine description from: %s\n", opts.Spec)
	}

	eng, err := turing.Load(opts.Spec,
		turing.WithLogger(logger),
		turing.WithMaxSteps(s.maxSteps),
		turing.WithVariant(s.variant),
		turing.WithAllowStay(s.allowStay),
		turing.WithImplicitReject(s.implicitReject),
		turing.WithLifecycleHooks(createDebugHooks(logger)),
	)
	if err != nil {
		return withFlagHint(err)
	}

	if opts.Verbose {
		def := eng.Machine()
		fmt.Fprintf(stdout, "Machine parsed successfully:\n")
		fmt.Fprintf(stdout, "  States: %d\n", len(def.States()))
		fmt.Fprintf(stdout, "  Sigma: %s\n", string(def.InputAlphabet()))
		fmt.Fprintf(stdout, "  Transitions: %d\n", len(def.Transitions()))
		fmt.Fprintf(stdout, "  Input: '%s' (length %d)\n\n", eng.Input(), len([]rune(eng.Input())))
	}

	res, err := eng.Run(ctx)
	if err != nil {
		return withFlagHint(err)
	}

	// Trace goes to the output file, or to stdout when none is given.
	var traceOut io.Writer = stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		traceOut = f
	}
	if _, err := turing.NewRunner(traceOut).Write(res); err != nil {
		return err
	}

	if opts.Output != "" {
		fmt.Fprintf(stdout, "Configurations written to: %s\n", opts.Output)
	}
	fmt.Fprintf(stdout, "Total configurations: %d\n", len(res.Trace.Configurations))
	fmt.Fprintf(stdout, "Result: %s\n", styleOutcome(stdout, res.Outcome))

	if opts.Verbose {
		lines := res.Lines()
		fmt.Fprintf(stdout, "\nFirst configuration: %s\n", lines[0])
		if len(lines) > 1 {
			fmt.Fprintf(stdout, "Last configuration:  %s\n", lines[len(lines)-1])
		}
	}

	if opts.DOT != "" {
		if err := writeFile(opts.DOT, eng.DOT()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "DOT diagram written to: %s\n", opts.DOT)
		if opts.Verbose {
			fmt.Fprintf(stdout, "  Render PNG: dot -Tpng %s -o %s.png\n", opts.DOT, strings.TrimSuffix(opts.DOT, filepath.Ext(opts.DOT)))
		}
	}
	if opts.Mermaid != "" {
		if err := writeFile(opts.Mermaid, eng.Mermaid(res)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Mermaid diagram written to: %s\n", opts.Mermaid)
	}

	if opts.Plot {
		if plot := tui.HeadPlot(res.Trace, 72); plot != "" {
			fmt.Fprintf(stdout, "\n%s\n", plot)
		}
	}
	return nil
}
