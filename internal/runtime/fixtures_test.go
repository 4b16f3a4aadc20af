package runtime_test

import (
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/machine"
)

// endsInOne accepts binary strings whose last symbol is 1.
// Undefined δ(q0,_) makes strings ending in 0 (and the empty string) reject implicitly.
func endsInOne() *machine.Definition {
	b := dsl.New().
		States("q0", "q1", "qacc", "qrej").
		Sigma("01").Gamma("01_").Blank('_').
		Start("q0").Accept("qacc").Reject("qrej")
	b.On("q0", '0').Right("q0", '0')
	b.On("q0", '1').Right("q1", '1')
	b.On("q1", '0').Right("q0", '0')
	b.On("q1", '1').Right("q1", '1')
	b.On("q1", '_').Right("qacc", '_')
	return b.MustBuild()
}

// runaway moves right forever, turning blanks into zeros.
func runaway() *machine.Definition {
	b := dsl.New().
		States("qinf", "qacc", "qrej").
		Sigma("0").Gamma("0_").Blank('_').
		Start("qinf").Accept("qacc").Reject("qrej")
	b.On("qinf", '0').Right("qinf", '0')
	b.On("qinf", '_').Right("qinf", '0')
	return b.MustBuild()
}

// leftWalker moves left on every symbol and never halts.
func leftWalker(boundary int) *machine.Definition {
	b := dsl.New().
		States("q0", "qacc", "qrej").
		Sigma("01").Gamma("01_").Blank('_').
		Start("q0").Accept("qacc").Reject("qrej").
		LeftBoundary(boundary)
	b.On("q0", '0').Left("q0", '1')
	b.On("q0", '1').Left("q0", '0')
	b.On("q0", '_').Left("q0", '_')
	return b.MustBuild()
}
