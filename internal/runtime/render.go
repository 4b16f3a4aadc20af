package runtime

import "github.com/aretw0/turing/pkg/domain"

// Snapshot captures the visible window of the tape together with the state and the head.
func Snapshot(t *Tape, state string, head int) domain.Configuration {
	l, r := t.Window(head)
	return domain.Configuration{
		State: state,
		Head:  head,
		Left:  l,
		Cells: string(t.Slice(l, r+1)),
	}
}

// Render formats one configuration as "u state v" or "uStatev".
// u holds the cells from the window start up to the head, v the cells from the head to the window end.
func Render(t *Tape, state string, head int, v domain.Variant) string {
	return Snapshot(t, state, head).Format(v)
}
