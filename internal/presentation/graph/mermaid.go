package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	FinalState    string
}

// GenerateMermaid produces a Mermaid flowchart of the transition function.
// It applies semantic styling:
// - Halting states: (((Double circle)))
// - Other states: ((Circle))
// It also applies overlay styles (Visited/Final) if provided.
func GenerateMermaid(def *machine.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, q := range def.UsedStates() {
		safeID := sanitizeMermaidID(q)
		opener, closer := "((", "))"
		if def.IsHalting(q) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, q, closer))
	}

	// Entry marker
	sb.WriteString("    start_[ ]:::entry\n")
	sb.WriteString(fmt.Sprintf("    start_ --> %s\n", sanitizeMermaidID(def.Initial())))

	for _, e := range aggregate(def) {
		labels := make([]string, len(e.Labels))
		for i, l := range e.Labels {
			labels[i] = strings.ReplaceAll(l, "\"", "#quot;")
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.From), strings.Join(labels, "<br/>"), sanitizeMermaidID(e.To)))
	}

	sb.WriteString("    classDef entry fill:none,stroke:none;\n")

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, q := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(q)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.FinalState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.FinalState)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	// Mermaid reserves "end" as a keyword.
	if strings.EqualFold(s, "end") {
		s = s + "_"
	}
	return s
}
