package machine_test

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() machine.Config {
	return machine.Config{
		States:        []string{"q0", "q1", "qacc", "qrej"},
		InputAlphabet: []rune("01"),
		TapeAlphabet:  []rune("01_"),
		Blank:         '_',
		Initial:       "q0",
		Accept:        "qacc",
		Reject:        "qrej",
		Transitions: []domain.Transition{
			{Key: domain.Key{State: "q0", Read: '0'}, Action: domain.Action{Next: "q1", Write: '0', Move: domain.Right}},
			{Key: domain.Key{State: "q0", Read: '1'}, Action: domain.Action{Next: "qacc", Write: '1', Move: domain.Right}},
		},
	}
}

func TestNew_Valid(t *testing.T) {
	def, err := machine.New(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"q0", "q1", "qacc", "qrej"}, def.States())
	assert.Equal(t, []rune("01"), def.InputAlphabet())
	assert.Equal(t, []rune("01_"), def.TapeAlphabet())
	assert.Equal(t, '_', def.Blank())
	assert.True(t, def.IsHalting("qacc"))
	assert.True(t, def.IsHalting("qrej"))
	assert.False(t, def.IsHalting("q0"))

	act, ok := def.Lookup("q0", '1')
	require.True(t, ok)
	assert.Equal(t, domain.Action{Next: "qacc", Write: '1', Move: domain.Right}, act)

	_, ok = def.Lookup("q1", '0')
	assert.False(t, ok, "undefined entries must not be found")

	assert.Equal(t, []string{"q0", "q1", "qacc"}, def.UsedStates())
}

func TestNew_Invariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*machine.Config)
		check  machine.Check
		value  string
	}{
		{
			name:   "initial not in Q",
			mutate: func(c *machine.Config) { c.Initial = "qx" },
			check:  machine.CheckDistinguishedStates,
			value:  "qx",
		},
		{
			name:   "accept not in Q",
			mutate: func(c *machine.Config) { c.Accept = "yes" },
			check:  machine.CheckDistinguishedStates,
			value:  "yes",
		},
		{
			name:   "reject not in Q",
			mutate: func(c *machine.Config) { c.Reject = "no" },
			check:  machine.CheckDistinguishedStates,
			value:  "no",
		},
		{
			name:   "blank not in Gamma",
			mutate: func(c *machine.Config) { c.Blank = '#' },
			check:  machine.CheckBlank,
			value:  "#",
		},
		{
			name: "blank in Sigma",
			mutate: func(c *machine.Config) {
				c.InputAlphabet = []rune("01_")
			},
			check: machine.CheckBlank,
			value: "_",
		},
		{
			name:   "Sigma not subset of Gamma",
			mutate: func(c *machine.Config) { c.InputAlphabet = []rune("012") },
			check:  machine.CheckAlphabetSubset,
			value:  "2",
		},
		{
			name: "transition to unknown state",
			mutate: func(c *machine.Config) {
				c.Transitions[0].Next = "ghost"
			},
			check: machine.CheckTransitionMembers,
			value: "δ(q0,0)",
		},
		{
			name: "transition writes unknown symbol",
			mutate: func(c *machine.Config) {
				c.Transitions[1].Write = 'x'
			},
			check: machine.CheckTransitionMembers,
			value: "δ(q0,1)",
		},
		{
			name: "stay without permission",
			mutate: func(c *machine.Config) {
				c.Transitions[0].Move = domain.Stay
			},
			check: machine.CheckMoves,
			value: "δ(q0,0)",
		},
		{
			name: "duplicate key",
			mutate: func(c *machine.Config) {
				c.Transitions = append(c.Transitions, domain.Transition{
					Key:    domain.Key{State: "q0", Read: '0'},
					Action: domain.Action{Next: "qrej", Write: '0', Move: domain.Left},
				})
			},
			check: machine.CheckDeterminism,
			value: "δ(q0,0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)

			def, err := machine.New(cfg)
			require.Error(t, err)
			assert.Nil(t, def)

			var verr *machine.ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.check, verr.Check)
			assert.Equal(t, tt.value, verr.Value)
		})
	}
}

func TestNew_SharedHaltingState(t *testing.T) {
	cfg := baseConfig()
	cfg.Reject = "qacc"

	def, err := machine.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, def.Accept(), def.Reject())
	assert.True(t, def.IsHalting("qacc"))
	assert.False(t, def.IsHalting("qrej"))

	trace := &domain.Trace{Configurations: []domain.Configuration{{State: "qacc"}}}
	assert.Equal(t, domain.OutcomeAccepted, domain.Classify(trace, def.Accept(), def.Reject()))
}

func TestNew_CheckOrder(t *testing.T) {
	// Both the initial state and the blank are wrong: the state check runs first.
	cfg := baseConfig()
	cfg.Initial = "nope"
	cfg.Blank = '#'

	_, err := machine.New(cfg)
	var verr *machine.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, machine.CheckDistinguishedStates, verr.Check)
}

func TestNew_StayAllowed(t *testing.T) {
	cfg := baseConfig()
	cfg.AllowStay = true
	cfg.Transitions[0].Move = domain.Stay

	def, err := machine.New(cfg)
	require.NoError(t, err)
	assert.True(t, def.AllowStay())
}

func TestDefinition_Immutable(t *testing.T) {
	cfg := baseConfig()
	def, err := machine.New(cfg)
	require.NoError(t, err)

	// Mutating the inputs or the returned slices must not leak into the definition.
	cfg.Transitions[0].Next = "qrej"
	states := def.States()
	states[0] = "changed"
	rules := def.Transitions()
	rules[0].Next = "changed"

	act, ok := def.Lookup("q0", '0')
	require.True(t, ok)
	assert.Equal(t, "q1", act.Next)
	assert.Equal(t, "q0", def.States()[0])
}

func TestTransitions_Sorted(t *testing.T) {
	cfg := baseConfig()
	cfg.Transitions = []domain.Transition{
		{Key: domain.Key{State: "q1", Read: '0'}, Action: domain.Action{Next: "q1", Write: '0', Move: domain.Right}},
		{Key: domain.Key{State: "q0", Read: '1'}, Action: domain.Action{Next: "q1", Write: '1', Move: domain.Right}},
		{Key: domain.Key{State: "q0", Read: '0'}, Action: domain.Action{Next: "q1", Write: '0', Move: domain.Right}},
	}
	def, err := machine.New(cfg)
	require.NoError(t, err)

	var keys []string
	for _, tr := range def.Transitions() {
		keys = append(keys, tr.Key.String())
	}
	assert.Equal(t, []string{"δ(q0,0)", "δ(q0,1)", "δ(q1,0)"}, keys)
}
