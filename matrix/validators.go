// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for influence-matrix checks.
//   - Work uniformly over Dense and Sparse through the Matrix capability set.
//   - Return sentinel errors wrapped with a validator tag and the offending
//     row or cell, so callers can both match (errors.Is) and report.
//
// Determinism & Performance:
//   - All checks are pure and deterministic (fixed row→column order); the
//     first violation in that order is the one reported.
//   - Shape is O(1); bounds and stochasticity are O(nnz).
//
// Note:
//   - Validate follows a fixed sequence: NotNil → Shape → Bounds → Stochastic.

package matrix

import (
	"math"
)

// zeroRowSum is the exact row sum that marks an isolated stakeholder.
// Only an exactly-zero row qualifies; a row summing to 1e-12 is a defect.
const zeroRowSum = 0.0

// Bounds of a single influence weight.
const (
	MinWeight = 0.0
	MaxWeight = 1.0
)

// ValidateTolerance checks tol is finite and strictly positive.
func ValidateTolerance(tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		return matrixErrorf("ValidateTolerance", ErrBadTolerance)
	}

	return nil
}

// ValidateShape checks that m is non-nil and its dimension equals n.
// Squareness is a structural guarantee of both constructors, so the only
// remaining shape defect is a dimension that disagrees with the stakeholder
// count.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateShape(m Matrix, n int) error {
	if m == nil {
		return matrixErrorf("ValidateShape", ErrNilMatrix)
	}
	if m.Size() != n {
		return matrixErrorf("ValidateShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBounds checks every stored value is finite and inside [0,1].
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrWeightOutOfRange (tagged with the cell).
// Complexity: O(nnz).
func ValidateBounds(m Matrix) error {
	if m == nil {
		return matrixErrorf("ValidateBounds", ErrNilMatrix)
	}

	var (
		err     error // first violation, in row→column order
		i, n    = 0, m.Size()
		checker = func(j int, v float64) {
			if err != nil {
				return
			}
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				err = cellErrorf("ValidateBounds", i, j, ErrNaNInf)
			case v < MinWeight || v > MaxWeight:
				err = cellErrorf("ValidateBounds", i, j, ErrWeightOutOfRange)
			}
		}
	)
	for i = 0; i < n && err == nil; i++ {
		m.EachInRow(i, checker)
	}

	return err
}

// ValidateStochastic checks every row sums to 1 within tol, except rows that
// sum to exactly 0 (isolated stakeholders, later treated as self-loops).
//
// Errors: ErrNilMatrix, ErrBadTolerance, ErrNotStochastic (tagged with the row).
// Complexity: O(nnz).
func ValidateStochastic(m Matrix, tol float64) error {
	if m == nil {
		return matrixErrorf("ValidateStochastic", ErrNilMatrix)
	}
	if err := ValidateTolerance(tol); err != nil {
		return matrixErrorf("ValidateStochastic", err)
	}

	n := m.Size()
	for i := 0; i < n; i++ {
		sum := m.RowSum(i)
		if sum == zeroRowSum {
			continue // isolated stakeholder
		}
		if math.IsNaN(sum) || math.Abs(sum-1.0) > tol {
			return rowErrorf("ValidateStochastic", i, ErrNotStochastic)
		}
	}

	return nil
}

// Validate runs the composite check NotNil → Shape(n) → Bounds → Stochastic(tol).
// This is the gate every network passes before the engine reads it.
func Validate(m Matrix, n int, tol float64) error {
	if err := ValidateShape(m, n); err != nil {
		return err
	}
	if err := ValidateBounds(m); err != nil {
		return err
	}

	return ValidateStochastic(m, tol)
}

// ZeroRows returns the ascending indices of rows that sum to exactly 0.
// Complexity: O(nnz).
func ZeroRows(m Matrix) []int {
	if m == nil {
		return nil
	}
	var out []int
	n := m.Size()
	for i := 0; i < n; i++ {
		if m.RowSum(i) == zeroRowSum {
			out = append(out, i)
		}
	}

	return out
}
