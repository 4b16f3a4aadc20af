package domain

// Canonical field names, used in diagnostics and in the missing-fields report.
const (
	FieldStates        = "Q"
	FieldInputAlphabet = "Sigma"
	FieldTapeAlphabet  = "Gamma"
	FieldBlank         = "blank"
	FieldInitial       = "q0"
	FieldAccept        = "qaccept"
	FieldReject        = "qreject"
	FieldInput         = "input"
)

// DefaultLeftBoundary is the index of the leftmost tape cell.
const DefaultLeftBoundary = 0
