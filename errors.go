package aig

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy is returned when parsing an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown steering strategy")
)

// ErrDimensionMismatch indicates a direction/activation dimensionality
// mismatch on a surface that validates eagerly (configuration, library
// assembly). The steering hot path never returns it - mismatched
// directions are skipped there instead.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }
