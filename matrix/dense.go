// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*n + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(n²) zero-init; At/Set: O(1); RowSum/RowDot: O(n); Clone: O(n²).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxDenseAt   = "Dense.At"
	ctxDenseSet  = "Dense.Set"
	ctxDenseRows = "NewDenseFromRows"
	ctxDenseNew  = "NewDense"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Dense is a square row-major influence matrix.
//   - n holds the dimension.
//   - data is a flat buffer of length n*n (offset = i*n + j).
type Dense struct {
	n    int       // dimension (>= 0; 0 represents the empty network)
	data []float64 // contiguous row-major storage (len == n*n)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an n×n zero matrix.
// A 0×0 matrix is legal and represents the empty network.
//
// Errors:
//   - ErrDimensionMismatch if n < 0.
//
// Complexity: Time O(n²), Space O(n²).
func NewDense(n int) (*Dense, error) {
	if n < 0 {
		return nil, matrixErrorf(ctxDenseNew, ErrDimensionMismatch)
	}

	// make() zero-fills deterministically.
	return &Dense{n: n, data: make([]float64, n*n)}, nil
}

// NewDenseFromRows copies a row-of-rows literal into a new Dense.
//
// Implementation:
//   - Stage 1: n = len(rows); every row must have exactly n entries.
//   - Stage 2: copy row by row into the flat buffer (input is never aliased).
//
// Errors:
//   - ErrDimensionMismatch on ragged or non-square input (tagged with the row).
//   - ErrNaNInf on non-finite cells.
//
// Notes:
//   - Range [0,1] and stochasticity are NOT checked here; run Validate.
//
// Complexity: Time O(n²), Space O(n²).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	d := &Dense{n: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, rowErrorf(ctxDenseRows, i, ErrDimensionMismatch)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, cellErrorf(ctxDenseRows, i, j, ErrNaNInf)
			}
		}
		copy(d.data[i*n:(i+1)*n], row)
	}

	return d, nil
}

// Kind reports KindDense.
func (d *Dense) Kind() Kind { return KindDense }

// Size returns the dimension n.
func (d *Dense) Size() int { return d.n }

// NNZ returns n², the number of stored cells.
func (d *Dense) NNZ() int { return len(d.data) }

// At returns W[i,j] or ErrIndexOutOfRange.
func (d *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return 0, cellErrorf(ctxDenseAt, i, j, ErrIndexOutOfRange)
	}

	return d.data[i*d.n+j], nil
}

// Set assigns W[i,j] = v.
//
// Errors:
//   - ErrIndexOutOfRange for invalid indices.
//   - ErrNaNInf for non-finite v.
//
// Notes:
//   - Set is the only mutating method. Networks never expose their *Dense for
//     writing; the mutator mutates a private Clone before wrapping it.
func (d *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return cellErrorf(ctxDenseSet, i, j, ErrIndexOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return cellErrorf(ctxDenseSet, i, j, ErrNaNInf)
	}
	d.data[i*d.n+j] = v

	return nil
}

// RowSum returns Σ_j W[i,j] in fixed column order.
func (d *Dense) RowSum(i int) float64 {
	var sum float64
	row := d.data[i*d.n : (i+1)*d.n]
	for _, v := range row {
		sum += v
	}

	return sum
}

// RowDot returns Σ_j W[i,j]·x[j] in fixed column order.
// Zero cells are skipped; for stochastic rows this avoids most of the work on
// graphs that are dense in storage but sparse in structure.
func (d *Dense) RowDot(i int, x []float64) float64 {
	var acc float64
	row := d.data[i*d.n : (i+1)*d.n]
	for j, w := range row {
		if w != 0 {
			acc += w * x[j]
		}
	}

	return acc
}

// EachInRow visits every column of row i in ascending order.
func (d *Dense) EachInRow(i int, fn func(j int, v float64)) {
	row := d.data[i*d.n : (i+1)*d.n]
	for j, v := range row {
		fn(j, v)
	}
}

// Clone returns an independent deep copy.
func (d *Dense) Clone() Matrix {
	return d.cloneDense()
}

// cloneDense is the typed variant of Clone used inside the package.
func (d *Dense) cloneDense() *Dense {
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return &Dense{n: d.n, data: buf}
}

// RowsCopy exports the matrix as a freshly allocated row-of-rows literal.
// Complexity: O(n²).
func (d *Dense) RowsCopy() [][]float64 {
	out := make([][]float64, d.n)
	for i := 0; i < d.n; i++ {
		out[i] = make([]float64, d.n)
		copy(out[i], d.data[i*d.n:(i+1)*d.n])
	}

	return out
}

// String implements fmt.Stringer with one bracketed row per line.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.n; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < d.n; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", d.data[i*d.n+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
