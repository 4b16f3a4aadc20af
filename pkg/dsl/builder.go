package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Builder manages the machine construction.
type Builder struct {
	cfg   machine.Config
	rules []*RuleBuilder
}

// New creates a new machine builder.
func New() *Builder {
	return &Builder{
		cfg: machine.Config{LeftBoundary: domain.DefaultLeftBoundary},
	}
}

// States adds states to Q.
func (b *Builder) States(states ...string) *Builder {
	b.cfg.States = append(b.cfg.States, states...)
	return b
}

// Sigma sets the input alphabet, one symbol per character.
func (b *Builder) Sigma(symbols string) *Builder {
	b.cfg.InputAlphabet = []rune(symbols)
	return b
}

// Gamma sets the tape alphabet, one symbol per character.
func (b *Builder) Gamma(symbols string) *Builder {
	b.cfg.TapeAlphabet = []rune(symbols)
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(r rune) *Builder {
	b.cfg.Blank = r
	return b
}

// Start sets the initial state.
func (b *Builder) Start(state string) *Builder {
	b.cfg.Initial = state
	return b
}

// Accept sets the accepting state.
func (b *Builder) Accept(state string) *Builder {
	b.cfg.Accept = state
	return b
}

// Reject sets the rejecting state.
func (b *Builder) Reject(state string) *Builder {
	b.cfg.Reject = state
	return b
}

// AllowStay permits the S move.
func (b *Builder) AllowStay() *Builder {
	b.cfg.AllowStay = true
	return b
}

// LeftBoundary sets the index of the leftmost tape cell.
func (b *Builder) LeftBoundary(idx int) *Builder {
	b.cfg.LeftBoundary = idx
	return b
}

// On starts a new rule for δ(state, read).
// Unlike node builders, calling On twice with the same key creates two rules,
// so duplicates surface as a determinism error at Build time.
func (b *Builder) On(state string, read rune) *RuleBuilder {
	rb := &RuleBuilder{
		rule: domain.Transition{Key: domain.Key{State: state, Read: read}},
	}
	b.rules = append(b.rules, rb)
	return rb
}

// Build validates the machine and returns the definition.
func (b *Builder) Build() (*machine.Definition, error) {
	cfg := b.cfg
	cfg.Transitions = make([]domain.Transition, 0, len(b.rules))
	for _, rb := range b.rules {
		if !rb.set {
			return nil, fmt.Errorf("rule %s has no action", rb.rule.Key)
		}
		cfg.Transitions = append(cfg.Transitions, rb.rule)
	}

	def, err := machine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}
	return def, nil
}

// MustBuild is like Build but panics on error. Intended for tests and package-level fixtures.
func (b *Builder) MustBuild() *machine.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
