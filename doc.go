/*
Package turing simulates deterministic single-tape Turing machines described in a small textual notation.

A machine description lists the seven components M = (Q, Σ, Γ, δ, q0, q_accept, q_reject) as
key = value lines, followed by a delta block with one rule per line:

	Q = {q0, q1, qacc, qrej}
	Sigma = {0,1}
	Gamma = {0,1,⊔}
	blank = ⊔
	q0 = q0
	qaccept = qacc
	qreject = qrej

	delta:
	(q0, 0) -> (q1, 0, R)
	(q0, 1) -> (qacc, 1, R)

	input = 0101

# Concept

The description is parsed once into an immutable, validated machine definition. Each run owns a
fresh tape bounded on the left and unbounded on the right, and produces the ordered trace of
instantaneous descriptions ("u q v") from the initial configuration to a halting state, an
undefined transition or the step budget.

Outcomes (accepted, rejected, truncated, undecided) are values, not errors. Errors are reserved for
malformed descriptions, invariant violations and execution faults.

# Usage

	eng, err := turing.Load("mt_binary.txt", turing.WithMaxSteps(200))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, line := range res.Lines() {
		fmt.Println(line)
	}
	fmt.Println(res.Outcome)
*/
package turing
