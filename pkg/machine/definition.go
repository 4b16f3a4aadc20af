package machine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Config carries the raw parts of a machine, M = (Q, Σ, Γ, δ, q0, q_accept, q_reject).
type Config struct {
	States        []string
	InputAlphabet []rune
	TapeAlphabet  []rune
	Blank         rune
	Initial       string
	Accept        string
	Reject        string
	Transitions   []domain.Transition

	// AllowStay permits the S move in transitions.
	AllowStay bool

	// LeftBoundary is the index of the leftmost tape cell.
	LeftBoundary int
}

// Definition is a validated, read-only deterministic Turing machine.
type Definition struct {
	states        map[string]struct{}
	inputAlphabet map[rune]struct{}
	tapeAlphabet  map[rune]struct{}
	blank         rune
	initial       string
	accept        string
	reject        string
	delta         map[domain.Key]domain.Action
	allowStay     bool
	leftBoundary  int
}

// New validates cfg and builds a Definition.
// Checks run in a fixed order and the first violation is returned as *ValidationError.
func New(cfg Config) (*Definition, error) {
	d := &Definition{
		states:        toSet(cfg.States),
		inputAlphabet: toSet(cfg.InputAlphabet),
		tapeAlphabet:  toSet(cfg.TapeAlphabet),
		blank:         cfg.Blank,
		initial:       cfg.Initial,
		accept:        cfg.Accept,
		reject:        cfg.Reject,
		delta:         make(map[domain.Key]domain.Action, len(cfg.Transitions)),
		allowStay:     cfg.AllowStay,
		leftBoundary:  cfg.LeftBoundary,
	}

	if err := d.checkDistinguished(); err != nil {
		return nil, err
	}
	if err := d.checkBlank(); err != nil {
		return nil, err
	}
	if err := d.checkSubset(); err != nil {
		return nil, err
	}

	ordered := slices.Clone(cfg.Transitions)
	slices.SortStableFunc(ordered, func(a, b domain.Transition) int {
		switch {
		case a.Key.Less(b.Key):
			return -1
		case b.Key.Less(a.Key):
			return 1
		}
		return 0
	})
	for _, t := range ordered {
		if err := d.checkMembers(t); err != nil {
			return nil, err
		}
	}
	for _, t := range ordered {
		if err := d.checkMove(t); err != nil {
			return nil, err
		}
	}
	// Determinism is checked in source order so the second occurrence is the one reported.
	for _, t := range cfg.Transitions {
		if _, dup := d.delta[t.Key]; dup {
			return nil, &ValidationError{
				Check:  CheckDeterminism,
				Value:  t.Key.String(),
				Reason: "defined more than once",
			}
		}
		d.delta[t.Key] = t.Action
	}

	return d, nil
}

func (d *Definition) checkDistinguished() error {
	named := []struct{ role, state string }{
		{"initial state", d.initial},
		{"accepting state", d.accept},
		{"rejecting state", d.reject},
	}
	for _, n := range named {
		if _, ok := d.states[n.state]; !ok {
			return &ValidationError{
				Check:  CheckDistinguishedStates,
				Value:  n.state,
				Reason: n.role + " is not in Q",
			}
		}
	}
	return nil
}

func (d *Definition) checkBlank() error {
	if _, ok := d.tapeAlphabet[d.blank]; !ok {
		return &ValidationError{Check: CheckBlank, Value: string(d.blank), Reason: "blank symbol is not in Gamma"}
	}
	if _, ok := d.inputAlphabet[d.blank]; ok {
		return &ValidationError{Check: CheckBlank, Value: string(d.blank), Reason: "blank symbol must not belong to Sigma"}
	}
	return nil
}

func (d *Definition) checkSubset() error {
	var missing []string
	for r := range d.inputAlphabet {
		if _, ok := d.tapeAlphabet[r]; !ok {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return &ValidationError{
			Check:  CheckAlphabetSubset,
			Value:  strings.Join(missing, ","),
			Reason: "Sigma must be a subset of Gamma",
		}
	}
	return nil
}

func (d *Definition) checkMembers(t domain.Transition) error {
	for _, q := range []string{t.State, t.Next} {
		if _, ok := d.states[q]; !ok {
			return &ValidationError{
				Check:  CheckTransitionMembers,
				Value:  t.Key.String(),
				Reason: fmt.Sprintf("state %q is not in Q", q),
			}
		}
	}
	for _, a := range []rune{t.Read, t.Write} {
		if _, ok := d.tapeAlphabet[a]; !ok {
			return &ValidationError{
				Check:  CheckTransitionMembers,
				Value:  t.Key.String(),
				Reason: fmt.Sprintf("symbol %q is not in Gamma", a),
			}
		}
	}
	return nil
}

func (d *Definition) checkMove(t domain.Transition) error {
	if t.Move == domain.Left || t.Move == domain.Right {
		return nil
	}
	if t.Move == domain.Stay && d.allowStay {
		return nil
	}
	allowed := "L, R"
	if d.allowStay {
		allowed = "L, R, S"
	}
	return &ValidationError{
		Check:  CheckMoves,
		Value:  t.Key.String(),
		Reason: fmt.Sprintf("move %q is not allowed (allowed: %s)", t.Move.String(), allowed),
	}
}

// States returns Q, sorted.
func (d *Definition) States() []string { return sortedKeys(d.states) }

// InputAlphabet returns Σ, sorted.
func (d *Definition) InputAlphabet() []rune { return sortedKeys(d.inputAlphabet) }

// TapeAlphabet returns Γ, sorted.
func (d *Definition) TapeAlphabet() []rune { return sortedKeys(d.tapeAlphabet) }

func (d *Definition) Blank() rune       { return d.blank }
func (d *Definition) Initial() string   { return d.initial }
func (d *Definition) Accept() string    { return d.accept }
func (d *Definition) Reject() string    { return d.reject }
func (d *Definition) AllowStay() bool   { return d.allowStay }
func (d *Definition) LeftBoundary() int { return d.leftBoundary }

// IsHalting reports whether q is the accepting or the rejecting state.
func (d *Definition) IsHalting(q string) bool {
	return q == d.accept || q == d.reject
}

// InInputAlphabet reports whether r belongs to Σ.
func (d *Definition) InInputAlphabet(r rune) bool {
	_, ok := d.inputAlphabet[r]
	return ok
}

// Lookup returns δ(q, a). The second result is false when δ is undefined there.
func (d *Definition) Lookup(q string, a rune) (domain.Action, bool) {
	act, ok := d.delta[domain.Key{State: q, Read: a}]
	return act, ok
}

// Transitions returns every rule of δ, sorted by state then symbol.
func (d *Definition) Transitions() []domain.Transition {
	out := make([]domain.Transition, 0, len(d.delta))
	for k, a := range d.delta {
		out = append(out, domain.Transition{Key: k, Action: a})
	}
	slices.SortFunc(out, func(a, b domain.Transition) int {
		if a.Key.Less(b.Key) {
			return -1
		}
		if b.Key.Less(a.Key) {
			return 1
		}
		return 0
	})
	return out
}

// UsedStates returns the initial state plus every state mentioned by a transition, sorted.
func (d *Definition) UsedStates() []string {
	used := map[string]struct{}{d.initial: {}}
	for k, a := range d.delta {
		used[k.State] = struct{}{}
		used[a.Next] = struct{}{}
	}
	return sortedKeys(used)
}

func toSet[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func sortedKeys[T string | rune](set map[T]struct{}) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
