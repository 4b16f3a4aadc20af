package dsl

import "github.com/aretw0/turing/pkg/domain"

// RuleBuilder provides a fluent API for configuring one transition.
type RuleBuilder struct {
	rule domain.Transition
	set  bool
}

// Go sets the action of the rule: next state, symbol to write and head move.
func (r *RuleBuilder) Go(next string, write rune, move domain.Move) *RuleBuilder {
	r.rule.Action = domain.Action{Next: next, Write: write, Move: move}
	r.set = true
	return r
}

// Left is shorthand for Go(next, write, domain.Left).
func (r *RuleBuilder) Left(next string, write rune) *RuleBuilder {
	return r.Go(next, write, domain.Left)
}

// Right is shorthand for Go(next, write, domain.Right).
func (r *RuleBuilder) Right(next string, write rune) *RuleBuilder {
	return r.Go(next, write, domain.Right)
}

// Stay is shorthand for Go(next, write, domain.Stay). The builder must also call AllowStay.
func (r *RuleBuilder) Stay(next string, write rune) *RuleBuilder {
	return r.Go(next, write, domain.Stay)
}

// Build returns the underlying domain.Transition.
// This is primarily used by the Builder, but exposed for advanced usage.
func (r *RuleBuilder) Build() domain.Transition {
	return r.rule
}
