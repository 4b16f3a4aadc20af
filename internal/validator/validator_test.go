package validator

import (
	"testing"

	"github.com/aretw0/turing/pkg/dsl"
)

func TestLint(t *testing.T) {
	// 1. Scenario A: every state reachable, both halting states entered.
	// q0 -1-> q1 -_-> qa ; q0 -_-> qr
	b := dsl.New().
		States("q0", "q1", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("q1", '1')
	b.On("q0", '_').Right("qr", '_')
	b.On("q1", '_').Right("qa", '_')

	if findings := Lint(b.MustBuild()); len(findings) != 0 {
		t.Errorf("Scenario A (Clean) expected no findings, got: %v", findings)
	}

	// 2. Scenario B: orphan state, dead end, accept never entered.
	// q0 -1-> q1 (no rules) ; orphan -1-> qa
	// q1 rejects implicitly, so qr counts as reached.
	b = dsl.New().
		States("q0", "q1", "orphan", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("q1", '1')
	b.On("orphan", '1').Right("qa", '1')

	findings := Lint(b.MustBuild())
	want := map[Kind][]string{
		KindDeadEnd:        {"q1"},
		KindHaltNotReached: {"qa"},
		KindUnreachable:    {"orphan"},
	}

	got := make(map[Kind][]string)
	for _, f := range findings {
		got[f.Kind] = append(got[f.Kind], f.State)
	}
	for kind, states := range want {
		if len(got[kind]) != len(states) {
			t.Fatalf("Scenario B: expected %v for %s, got %v", states, kind, got[kind])
		}
		for i := range states {
			if got[kind][i] != states[i] {
				t.Errorf("Scenario B: expected %v for %s, got %v", states, kind, got[kind])
			}
		}
	}

	if findings[0].Kind != KindDeadEnd {
		t.Errorf("Findings should be sorted by kind, got first: %s", findings[0])
	}
}

func TestLint_ImplicitReject(t *testing.T) {
	// Scenario C: the only path to qr is a missing transition.
	// q0 -1-> qa ; q0 reading _ has no rule
	b := dsl.New().
		States("q0", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("qa", '1')

	if findings := Lint(b.MustBuild()); len(findings) != 0 {
		t.Errorf("Scenario C expected no findings, got: %v", findings)
	}

	// Scenario D: every reachable state is total, so qr is really never entered.
	// q0 -1-> qa ; q0 -_-> qa
	b = dsl.New().
		States("q0", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("qa", '1')
	b.On("q0", '_').Right("qa", '_')

	findings := Lint(b.MustBuild())
	if len(findings) != 1 || findings[0].Kind != KindHaltNotReached || findings[0].State != "qr" {
		t.Errorf("Scenario D expected qr to be halt-unreachable, got: %v", findings)
	}

	// Scenario E: a missing rule on an unreachable state does not count.
	// q0 -1-> qa ; q0 -_-> qa ; orphan has no rules
	b = dsl.New().
		States("q0", "orphan", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("qa", '1')
	b.On("q0", '_').Right("qa", '_')

	got := make(map[Kind][]string)
	for _, f := range Lint(b.MustBuild()) {
		got[f.Kind] = append(got[f.Kind], f.State)
	}
	if len(got[KindHaltNotReached]) != 1 || got[KindHaltNotReached][0] != "qr" {
		t.Errorf("Scenario E expected qr to be halt-unreachable, got: %v", got)
	}
	if len(got[KindUnreachable]) != 1 || got[KindUnreachable][0] != "orphan" {
		t.Errorf("Scenario E expected orphan to be unreachable, got: %v", got)
	}
}
