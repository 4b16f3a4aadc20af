/*
Package dsl provides a Go DSL for programmatically constructing Turing machines.

It is an alternative to the textual machine description format: a fluent builder that
produces the same validated machine.Definition. This is useful for unit tests,
generated machines and IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/turing/pkg/dsl"
		"github.com/aretw0/turing/pkg/domain"
	)

	func main() {
		b := dsl.New().
			States("q0", "qacc", "qrej").
			Sigma("01").
			Gamma("01_").
			Blank('_').
			Start("q0").
			Accept("qacc").
			Reject("qrej")

		b.On("q0", '0').Go("q0", '0', domain.Right)
		b.On("q0", '1').Go("qacc", '1', domain.Right)

		def, err := b.Build()
		// ... pass def to turing.FromDefinition(...)
	}
*/
package dsl
