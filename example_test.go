package turing_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

// ExampleParse demonstrates how to run a machine described in the text notation.
func ExampleParse() {
	src := `Q = {q0, q1, qacc, qrej}
Sigma = {0,1}
Gamma = {0,1,_}
blank = _
q0 = q0
qaccept = qacc
qreject = qrej

delta:
(q0, 0) -> (q1, 0, R)
(q0, 1) -> (qacc, 1, R)

input = 0101
`
	eng, err := turing.Parse(strings.NewReader(src))
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

	// Output:
	//  q0 0101
	// 0 q1 101
	// 0 qrej 101
	// rejected
}

// ExampleFromDefinition demonstrates building a machine in Go and rendering the compact notation.
func ExampleFromDefinition() {
	b := dsl.New().
		States("q0", "qa", "qr").
		Sigma("1").Gamma("1_").Blank('_').
		Start("q0").Accept("qa").Reject("qr")
	b.On("q0", '1').Right("q0", '1')
	b.On("q0", '_').Left("qa", '_')

	eng, err := turing.FromDefinition(b.MustBuild(), "11", turing.WithVariant(domain.VariantCompact))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if _, err := turing.NewRunner(os.Stdout).Write(res); err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Outcome, res.Steps())

	// Output:
	// q011
	// 1q01
	// 11q0_
	// 1qa1
	// accepted 3
}
