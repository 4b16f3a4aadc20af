package runtime

import (
	"errors"
	"fmt"
)

// ErrStayNotAllowed is a fatal execution fault: the machine asked for an S move while it is disabled.
var ErrStayNotAllowed = errors.New("move 'S' not allowed")

// ErrInputSymbol is returned when the input string contains a symbol outside Sigma.
var ErrInputSymbol = errors.New("input symbol does not belong to Sigma")

// ErrInvalidStepBudget is returned when the step budget is negative.
var ErrInvalidStepBudget = errors.New("step budget must be a positive integer")

// InputSymbolError pinpoints the first offending symbol of the input string.
type InputSymbolError struct {
	Symbol   rune
	Position int
}

func (e *InputSymbolError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d does not belong to Sigma", e.Symbol, e.Position)
}

func (e *InputSymbolError) Unwrap() error {
	return ErrInputSymbol
}

// StayError wraps ErrStayNotAllowed with the transition that requested it.
type StayError struct {
	State string
	Read  rune
	Step  int
}

func (e *StayError) Error() string {
	return fmt.Sprintf("step %d: δ(%s,%c) uses move 'S' but it is not allowed", e.Step, e.State, e.Read)
}

func (e *StayError) Unwrap() error {
	return ErrStayNotAllowed
}
