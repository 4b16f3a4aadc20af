package machine

import "fmt"

// Check names one of the structural invariants of a machine definition.
type Check string

const (
	CheckDistinguishedStates Check = "distinguished-states"
	CheckBlank               Check = "blank"
	CheckAlphabetSubset      Check = "alphabet-subset"
	CheckTransitionMembers   Check = "transition-members"
	CheckMoves               Check = "moves"
	CheckDeterminism         Check = "determinism"
)

// ValidationError reports the first invariant a definition violates.
type ValidationError struct {
	Check  Check  // Which invariant failed
	Value  string // The offending value
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid machine (%s): %s", e.Check, e.Reason)
	}
	return fmt.Sprintf("invalid machine (%s): %s: %s", e.Check, e.Value, e.Reason)
}
