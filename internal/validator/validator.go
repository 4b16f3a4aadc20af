package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
)

// Kind classifies a lint finding.
type Kind string

const (
	KindUnreachable    Kind = "unreachable"
	KindDeadEnd        Kind = "dead-end"
	KindHaltNotReached Kind = "halt-unreachable"
)

// Finding is a structural warning about a machine. Findings never prevent a run.
type Finding struct {
	Kind    Kind   `json:"kind"`
	State   string `json:"state"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Kind, f.State, f.Message)
}

// Lint crawls the transition graph from the initial state and reports
// unreachable states, dead ends and halting states that can never be entered.
// A reachable state without a transition for some tape symbol counts as
// reaching the rejecting state, as runs do under implicit rejection.
// Findings are sorted by kind then state.
func Lint(def *machine.Definition) []Finding {
	edges := make(map[string][]string)
	outgoing := make(map[string]int)
	for _, t := range def.Transitions() {
		edges[t.State] = append(edges[t.State], t.Next)
		outgoing[t.State]++
	}

	// Crawler
	visited := make(map[string]bool)
	implicitReject := false
	queue := []string{def.Initial()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if def.IsHalting(current) {
			continue // Sink state
		}
		if outgoing[current] < len(def.TapeAlphabet()) {
			implicitReject = true
		}
		for _, target := range edges[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	if implicitReject {
		visited[def.Reject()] = true
	}

	var findings []Finding
	for _, q := range def.States() {
		switch {
		case def.IsHalting(q):
			if !visited[q] {
				findings = append(findings, Finding{
					Kind:    KindHaltNotReached,
					State:   q,
					Message: "halting state is never reached from " + def.Initial(),
				})
			}
		case !visited[q]:
			findings = append(findings, Finding{
				Kind:    KindUnreachable,
				State:   q,
				Message: "not reachable from " + def.Initial(),
			})
		case outgoing[q] == 0:
			findings = append(findings, Finding{
				Kind:    KindDeadEnd,
				State:   q,
				Message: "no outgoing transitions; every run entering it rejects implicitly",
			})
		}
	}

	slices.SortStableFunc(findings, func(a, b Finding) int {
		return strings.Compare(string(a.Kind), string(b.Kind))
	})
	return findings
}
