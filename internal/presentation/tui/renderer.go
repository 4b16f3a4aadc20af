package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// DescribeMarkdown summarizes a machine as markdown: its components and the transition table.
func DescribeMarkdown(name string, def *machine.Definition, input string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)

	fmt.Fprintf(&sb, "| Component | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Q | %s |\n", code(strings.Join(def.States(), ", ")))
	fmt.Fprintf(&sb, "| Σ | %s |\n", code(joinRunes(def.InputAlphabet())))
	fmt.Fprintf(&sb, "| Γ | %s |\n", code(joinRunes(def.TapeAlphabet())))
	fmt.Fprintf(&sb, "| blank | %s |\n", code(string(def.Blank())))
	fmt.Fprintf(&sb, "| q0 | %s |\n", code(def.Initial()))
	fmt.Fprintf(&sb, "| q_accept | %s |\n", code(def.Accept()))
	fmt.Fprintf(&sb, "| q_reject | %s |\n", code(def.Reject()))
	if input == "" {
		fmt.Fprintf(&sb, "| input | *(empty)* |\n")
	} else {
		fmt.Fprintf(&sb, "| input | %s |\n", code(input))
	}

	transitions := def.Transitions()
	fmt.Fprintf(&sb, "\n## δ (%d rules)\n\n", len(transitions))
	if len(transitions) == 0 {
		sb.WriteString("No transitions: every run rejects immediately.\n")
		return sb.String()
	}
	sb.WriteString("| State | Read | Next | Write | Move |\n|---|---|---|---|---|\n")
	for _, t := range transitions {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			code(t.State), code(string(t.Read)), code(t.Next), code(string(t.Write)), t.Move)
	}
	return sb.String()
}

func code(s string) string {
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}

func joinRunes(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
