// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All validators return these sentinels wrapped with a call-site tag, so
// callers match them via errors.Is. No exported function panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

// ERROR FAMILY
// ------------
// Every input defect wraps ErrValidation, so a caller that only cares about
// "the graph handed to the engine is malformed" can test a single sentinel:
//
//	errors.Is(err, matrix.ErrValidation)
//
// The specific sentinels below narrow the cause for tests and diagnostics.
// ErrDisconnectedGraph is deliberately outside the family: it is a
// precondition failure raised only by operations that opt into connectivity.

var (
	// ErrValidation is the umbrella for deterministic input defects.
	ErrValidation = errors.New("matrix: validation failed")

	// ErrDimensionMismatch signals a non-square matrix, ragged rows, or a
	// dimension that differs from the stakeholder count / vector length.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrValidation)

	// ErrIndexOutOfRange signals a row or column index outside [0, n).
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrValidation)

	// ErrWeightOutOfRange signals a weight outside the closed interval [0,1].
	ErrWeightOutOfRange = fmt.Errorf("%w: weight out of [0,1]", ErrValidation)

	// ErrNaNInf signals a NaN or ±Inf weight.
	ErrNaNInf = fmt.Errorf("%w: NaN or Inf encountered", ErrValidation)

	// ErrNotStochastic signals a non-zero row whose sum differs from 1 by more
	// than the tolerance.
	ErrNotStochastic = fmt.Errorf("%w: row does not sum to 1", ErrValidation)

	// ErrDuplicateEntry signals two sparse entries addressing the same cell.
	ErrDuplicateEntry = fmt.Errorf("%w: duplicate sparse entry", ErrValidation)

	// ErrBadTolerance signals a tolerance that is NaN, Inf or not positive.
	ErrBadTolerance = fmt.Errorf("%w: tolerance must be finite and > 0", ErrValidation)

	// ErrNilMatrix signals a nil Matrix argument.
	ErrNilMatrix = fmt.Errorf("%w: nil matrix", ErrValidation)
)

// ErrDisconnectedGraph is returned by operations that require a single
// weakly-connected component and observe more than one.
var ErrDisconnectedGraph = errors.New("matrix: graph is not weakly connected")

// matrixErrorf wraps err with an operation tag: "Tag: cause".
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// cellErrorf wraps err with an operation tag and the offending cell.
func cellErrorf(tag string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", tag, row, col, err)
}

// rowErrorf wraps err with an operation tag and the offending row.
func rowErrorf(tag string, row int, err error) error {
	return fmt.Errorf("%s(row %d): %w", tag, row, err)
}
