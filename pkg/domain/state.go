package domain

import (
	"fmt"
	"strings"
)

// Variant selects the textual notation of a configuration.
type Variant int

const (
	// VariantSpaced renders "u q v".
	VariantSpaced Variant = iota
	// VariantCompact renders "uqv".
	VariantCompact
)

// ParseVariant accepts the notation names used on the command line: "u q v" and "uqv".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "u q v", "":
		return VariantSpaced, nil
	case "uqv":
		return VariantCompact, nil
	}
	return 0, fmt.Errorf("%w: %q (expected \"u q v\" or \"uqv\")", ErrUnknownVariant, s)
}

func (v Variant) String() string {
	if v == VariantCompact {
		return "uqv"
	}
	return "u q v"
}

// Configuration is an instantaneous description: the visible tape window, the state and the head.
type Configuration struct {
	// Step is the number of transitions applied before this snapshot (0 for the initial one).
	Step int `json:"step"`

	State string `json:"state"`
	Head  int    `json:"head"`

	// Left is the tape index of the first cell of Cells.
	Left  int    `json:"left"`
	Cells string `json:"cells"`
}

// Format renders the configuration as "u q v" or "uqv", where u is the window
// left of the head and v starts at the head.
func (c Configuration) Format(v Variant) string {
	// Cut at the byte offset of the head cell; cells outside the window clamp to the ends.
	split := c.Head - c.Left
	cut := len(c.Cells)
	n := 0
	for i := range c.Cells {
		if n >= split {
			cut = i
			break
		}
		n++
	}
	u, rest := c.Cells[:cut], c.Cells[cut:]

	if v == VariantCompact {
		return u + c.State + rest
	}
	return u + " " + c.State + " " + rest
}

// Truncation marks a trace cut short because the step budget was exhausted.
type Truncation struct {
	MaxSteps int `json:"max_steps"`
}

// Comment renders the marker as a comment line, distinguishable from any configuration.
func (t Truncation) Comment() string {
	return fmt.Sprintf("# [warning] step limit reached (%d). Possible infinite loop.", t.MaxSteps)
}

// Trace is the ordered output of a single run.
type Trace struct {
	Configurations []Configuration `json:"configurations"`

	// Truncation is set when the run hit its step budget. It always follows the last configuration.
	Truncation *Truncation `json:"truncation,omitempty"`
}

// Final returns the last configuration of the trace.
func (t *Trace) Final() (Configuration, bool) {
	if t == nil || len(t.Configurations) == 0 {
		return Configuration{}, false
	}
	return t.Configurations[len(t.Configurations)-1], true
}

// Steps is the number of transitions applied during the run.
// An implicit reject adds a configuration but is not a transition.
func (t *Trace) Steps() int {
	final, ok := t.Final()
	if !ok {
		return 0
	}
	return final.Step
}

// Lines renders every configuration in emission order followed by the truncation marker, if any.
func (t *Trace) Lines(v Variant) []string {
	if t == nil {
		return nil
	}
	lines := make([]string, 0, len(t.Configurations)+1)
	for _, c := range t.Configurations {
		lines = append(lines, c.Format(v))
	}
	if t.Truncation != nil {
		lines = append(lines, t.Truncation.Comment())
	}
	return lines
}

// Outcome classifies the trace against the machine's halting states.
func (t *Trace) Outcome(accept, reject string) Outcome {
	return Classify(t, accept, reject)
}

// VisitedStates returns the distinct states of the trace in order of first appearance.
func (t *Trace) VisitedStates() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range t.Configurations {
		if !seen[c.State] {
			seen[c.State] = true
			out = append(out, c.State)
		}
	}
	return out
}

// Outcome is the result of a run. It is a value, not an error.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeTruncated Outcome = "truncated"
	OutcomeUndecided Outcome = "undecided"
)

// ParseOutcome accepts the lower-case outcome names.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeAccepted, OutcomeRejected, OutcomeTruncated, OutcomeUndecided:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// Classify derives the outcome of a trace: the final state decides accept/reject,
// otherwise a truncation marker means truncated, otherwise the run is undecided.
func Classify(t *Trace, accept, reject string) Outcome {
	final, ok := t.Final()
	switch {
	case ok && final.State == accept:
		return OutcomeAccepted
	case ok && final.State == reject:
		return OutcomeRejected
	case t != nil && t.Truncation != nil:
		return OutcomeTruncated
	}
	return OutcomeUndecided
}
