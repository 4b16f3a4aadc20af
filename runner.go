package turing

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
)

// Runner writes execution traces to an io.Writer, one configuration per line.
// This allows for easy testing and integration with different frontends (CLI, HTTP, files).
type Runner struct {
	Output io.Writer

	// Variant overrides the notation of the result when set.
	Variant *domain.Variant
}

// NewRunner creates a Runner writing to w in the result's own notation.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Write renders res and returns the number of lines written.
func (r *Runner) Write(res *Result) (int, error) {
	if r.Output == nil {
		return 0, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if res == nil || res.Trace == nil {
		return 0, fmt.Errorf("nothing to write: empty result")
	}

	variant := res.Variant
	if r.Variant != nil {
		variant = *r.Variant
	}

	w := bufio.NewWriter(r.Output)
	lines := res.Trace.Lines(variant)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return 0, fmt.Errorf("failed to write trace: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write trace: %w", err)
	}
	return len(lines), nil
}
