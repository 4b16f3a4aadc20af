package runtime

import (
	"maps"
	"slices"
)

// Tape is a one-way-infinite tape: a hard left end at Left, unbounded to the right.
// Cells that were never written read as the blank symbol.
type Tape struct {
	cells map[int]rune
	blank rune
	left  int
}

// NewTape returns an empty tape whose leftmost cell is left.
func NewTape(blank rune, left int) *Tape {
	return &Tape{
		cells: make(map[int]rune),
		blank: blank,
		left:  left,
	}
}

// Get returns the symbol at cell i, or the blank symbol if the cell was never written.
func (t *Tape) Get(i int) rune {
	if r, ok := t.cells[i]; ok {
		return r
	}
	return t.blank
}

// Set writes r at cell i.
func (t *Tape) Set(i int, r rune) {
	t.cells[i] = r
}

// Blank returns the default symbol of the tape.
func (t *Tape) Blank() rune { return t.blank }

// LeftBoundary returns the index of the leftmost cell.
func (t *Tape) LeftBoundary() int { return t.left }

// Load writes input starting at the left boundary.
func (t *Tape) Load(input []rune) {
	for i, r := range input {
		t.Set(t.left+i, r)
	}
}

// MoveLeft returns the head position after a left move, clamped at the left boundary.
func (t *Tape) MoveLeft(head int) int {
	if head > t.left {
		return head - 1
	}
	return head
}

// Window returns the display range [l, r]: every non-blank cell and the head,
// with l never to the right of the left boundary.
func (t *Tape) Window(head int) (l, r int) {
	l, r = head, head
	for _, i := range t.nonBlank() {
		l = min(l, i)
		r = max(r, i)
	}
	l = min(l, t.left)
	return l, r
}

func (t *Tape) nonBlank() []int {
	idx := slices.Collect(maps.Keys(t.cells))
	out := idx[:0]
	for _, i := range idx {
		if t.cells[i] != t.blank {
			out = append(out, i)
		}
	}
	return out
}

// Slice returns the symbols of cells [from, to).
func (t *Tape) Slice(from, to int) []rune {
	if to <= from {
		return nil
	}
	out := make([]rune, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, t.Get(i))
	}
	return out
}
