package graph

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/machine"
)

// edge is every transition between one pair of states, in sorted key order.
type edge struct {
	From, To string
	Labels   []string
}

// aggregate groups δ by (source, destination) and renders each rule as "a→b,M".
func aggregate(def *machine.Definition) []edge {
	index := make(map[[2]string]int)
	var edges []edge
	for _, t := range def.Transitions() {
		k := [2]string{t.State, t.Next}
		i, ok := index[k]
		if !ok {
			i = len(edges)
			index[k] = i
			edges = append(edges, edge{From: t.State, To: t.Next})
		}
		edges[i].Labels = append(edges[i].Labels, fmt.Sprintf("%c→%c,%s", t.Read, t.Write, t.Move))
	}
	slices.SortFunc(edges, func(a, b edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return edges
}
