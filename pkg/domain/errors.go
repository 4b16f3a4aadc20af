package domain

import "errors"

// ErrUnknownMove is returned when a move token is not one of L, R or S.
var ErrUnknownMove = errors.New("unknown move")

// ErrUnknownVariant is returned when a configuration notation name is not recognised.
var ErrUnknownVariant = errors.New("unknown configuration variant")

// ErrUnknownOutcome is returned when an outcome name is not recognised.
var ErrUnknownOutcome = errors.New("unknown outcome")
