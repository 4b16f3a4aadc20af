package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

func endsInOne() *Builder {
	b := New().
		States("q0", "q1", "qacc", "qrej").
		Sigma("01").
		Gamma("01_").
		Blank('_').
		Start("q0").
		Accept("qacc").
		Reject("qrej")
	return b
}

func TestBuilder_SimpleMachine(t *testing.T) {
	// 1. Build the machine using the DSL
	b := endsInOne()
	b.On("q0", '0').Right("q0", '0')
	b.On("q0", '1').Right("q1", '1')
	b.On("q1", '0').Right("q0", '0')
	b.On("q1", '1').Right("q1", '1')
	b.On("q1", '_').Left("qacc", '_')

	// 2. Compile
	def, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// 3. Verify specific rules
	act, ok := def.Lookup("q1", '_')
	if !ok {
		t.Fatal("expected δ(q1,_) to be defined")
	}
	if act.Next != "qacc" || act.Move != domain.Left {
		t.Errorf("unexpected action for δ(q1,_): %+v", act)
	}
	if _, ok := def.Lookup("q0", '_'); ok {
		t.Error("δ(q0,_) should be undefined")
	}
	if got := len(def.Transitions()); got != 5 {
		t.Errorf("expected 5 transitions, got %d", got)
	}
}

func TestBuilder_StayRequiresPermission(t *testing.T) {
	b := endsInOne()
	b.On("q0", '0').Stay("q0", '1')

	_, err := b.Build()
	var verr *machine.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Check != machine.CheckMoves {
		t.Errorf("expected moves check, got %s", verr.Check)
	}

	def, err := b.AllowStay().Build()
	if err != nil {
		t.Fatalf("Build() with AllowStay failed: %v", err)
	}
	if !def.AllowStay() {
		t.Error("expected AllowStay on definition")
	}
}

func TestBuilder_DuplicateRule(t *testing.T) {
	b := endsInOne()
	b.On("q0", '0').Right("q0", '0')
	b.On("q0", '0').Right("q1", '0')

	_, err := b.Build()
	var verr *machine.ValidationError
	if !errors.As(err, &verr) || verr.Check != machine.CheckDeterminism {
		t.Fatalf("expected determinism violation, got %v", err)
	}
}

func TestBuilder_RuleWithoutAction(t *testing.T) {
	b := endsInOne()
	b.On("q0", '0')

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for rule without action")
	}
}

func TestBuilder_LeftBoundary(t *testing.T) {
	def := endsInOne().LeftBoundary(3).MustBuild()
	if def.LeftBoundary() != 3 {
		t.Errorf("expected left boundary 3, got %d", def.LeftBoundary())
	}
}
