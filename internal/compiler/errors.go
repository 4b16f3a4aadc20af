package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnrecognizedLine    = errors.New("unrecognized line")
	ErrMalformedSet        = errors.New("malformed set literal (expected {a, b, ...})")
	ErrBlankLength         = errors.New("blank symbol must be exactly one character")
	ErrSymbolLength        = errors.New("alphabet symbols must be exactly one character")
	ErrUnknownKey          = errors.New("unknown key")
	ErrDuplicateTransition = errors.New("duplicate transition")
	ErrStayNotAllowed      = errors.New("move 'S' not allowed")
)

// ParseError locates a malformed line of a machine description.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldsError lists every required field the description never set, in canonical order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields in machine description: " + strings.Join(e.Fields, ", ")
}
