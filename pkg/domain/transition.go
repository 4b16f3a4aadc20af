package domain

import (
	"fmt"
	"strings"
)

// Move is the head movement of a transition.
type Move byte

const (
	Left  Move = 'L'
	Right Move = 'R'
	Stay  Move = 'S'
)

// ParseMove converts the textual token (L, R or S) into a Move.
func ParseMove(s string) (Move, error) {
	switch strings.TrimSpace(s) {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	case "S":
		return Stay, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMove, s)
}

func (m Move) String() string {
	return string(rune(m))
}

// Valid reports whether m is one of the three known moves.
func (m Move) Valid() bool {
	return m == Left || m == Right || m == Stay
}

// Key identifies an entry of the transition function: the current state and the symbol under the head.
type Key struct {
	State string `json:"state" yaml:"state"`
	Read  rune   `json:"read" yaml:"read"`
}

func (k Key) String() string {
	return fmt.Sprintf("δ(%s,%c)", k.State, k.Read)
}

// Less orders keys by state, then by symbol.
func (k Key) Less(o Key) bool {
	if k.State != o.State {
		return k.State < o.State
	}
	return k.Read < o.Read
}

// Action is the right-hand side of a transition: where to go, what to write and how to move.
type Action struct {
	Next  string `json:"next" yaml:"next"`
	Write rune   `json:"write" yaml:"write"`
	Move  Move   `json:"move" yaml:"move"`
}

// Transition is a single rule δ(State, Read) = (Next, Write, Move).
type Transition struct {
	Key
	Action

	// Line is the source line the rule was read from (0 when built programmatically).
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

func (t Transition) String() string {
	return fmt.Sprintf("(%s, %c) -> (%s, %c, %s)", t.State, t.Read, t.Next, t.Write, t.Move)
}
