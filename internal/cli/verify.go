package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/domain"
)

// CaseResult is the verdict on one manifest case.
type CaseResult struct {
	Name   string
	Passed bool
	Reason string
}

// Verify runs every case of the manifest at path, prints a report to w and
// returns the per-case verdicts. A case that fails to load or run is a failed case, not an error.
func Verify(ctx context.Context, path string, w io.Writer, log LogOptions) ([]CaseResult, error) {
	logger, closeLog, err := createLogger(log)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	manifest, err := config.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	variant, err := domain.ParseVariant(manifest.Conf)
	if err != nil {
		return nil, err
	}

	results := make([]CaseResult, 0, len(manifest.Cases))
	for _, c := range manifest.Cases {
		fmt.Fprintf(w, "\n%s\nTesting: %s\n%s\n", strings.Repeat("=", 60), c.Name, strings.Repeat("=", 60))

		r := CaseResult{Name: c.Name}
		r.Passed, r.Reason = runCase(ctx, c, variant, w, logger)
		results = append(results, r)
	}

	passed := 0
	fmt.Fprintf(w, "\n%s\nSUMMARY\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))
	for _, r := range results {
		if r.Passed {
			passed++
			fmt.Fprintf(w, "✓ PASS - %s\n", r.Name)
		} else {
			fmt.Fprintf(w, "FAIL - %s: %s\n", r.Name, r.Reason)
		}
	}
	fmt.Fprintf(w, "\n%d/%d cases passed\n", passed, len(results))
	return results, nil
}

func runCase(ctx context.Context, c config.Case, variant domain.Variant, w io.Writer, logger *slog.Logger) (bool, string) {
	opts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithMaxSteps(c.MaxSteps),
		turing.WithVariant(variant),
	}
	if c.AllowStay != nil {
		opts = append(opts, turing.WithAllowStay(*c.AllowStay))
	}
	if c.ImplicitReject != nil {
		opts = append(opts, turing.WithImplicitReject(*c.ImplicitReject))
	}
	eng, err := turing.Load(c.Spec, opts...)
	if err != nil {
		return false, err.Error()
	}

	var res *turing.Result
	if c.Input != nil {
		res, err = eng.Simulate(ctx, *c.Input)
	} else {
		res, err = eng.Run(ctx)
	}
	if err != nil {
		return false, err.Error()
	}
	logger.Debug("case finished", "case", c.Name, "outcome", res.Outcome, "steps", res.Steps())

	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return false, fmt.Sprintf("failed to create output file: %v", err)
		}
		_, err = turing.NewRunner(f).Write(res)
		f.Close()
		if err != nil {
			return false, err.Error()
		}
	}

	lines := res.Lines()
	fmt.Fprintf(w, "Configurations generated: %d\n", len(res.Trace.Configurations))
	for i, l := range lines[:min(5, len(lines))] {
		fmt.Fprintf(w, "  %d. %s\n", i+1, l)
	}
	if len(lines) > 5 {
		fmt.Fprintf(w, "  ...\n  %d. %s\n", len(lines), lines[len(lines)-1])
	}

	if c.Outcome != "" {
		want, err := domain.ParseOutcome(c.Outcome)
		if err != nil {
			return false, err.Error()
		}
		if res.Outcome != want {
			return false, fmt.Sprintf("expected outcome %s, got %s", want, res.Outcome)
		}
	}
	if c.State != "" {
		// The last configuration line, skipping the truncation marker.
		last := res.Final().Format(variant)
		if !strings.Contains(last, c.State) {
			return false, fmt.Sprintf("expected %q in last configuration %q", c.State, last)
		}
	}
	return true, ""
}
