package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
)

// GenerateDOT produces a Graphviz description of the transition function.
// Only used states are declared; halting states are drawn as double circles and
// parallel rules between the same pair of states share one edge.
func GenerateDOT(def *machine.Definition) string {
	var sb strings.Builder
	sb.WriteString("digraph MT {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape = circle, fontname=\"Helvetica\"];\n\n")

	for _, q := range def.UsedStates() {
		if def.IsHalting(q) {
			sb.WriteString(fmt.Sprintf("  %s [shape=doublecircle, label=\"%s\"];\n", q, q))
		} else {
			sb.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", q, q))
		}
	}

	sb.WriteString(fmt.Sprintf("\n  start [shape=point]; start -> %s;\n\n", def.Initial()))

	for _, e := range aggregate(def) {
		labels := make([]string, len(e.Labels))
		for i, l := range e.Labels {
			labels[i] = escapeDOT(l)
		}
		sb.WriteString(fmt.Sprintf("  %s -> %s [label=\"%s\"];\n", e.From, e.To, strings.Join(labels, `\n`)))
	}

	sb.WriteString("}")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
