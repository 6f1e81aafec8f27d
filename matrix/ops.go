// SPDX-License-Identifier: MIT
// Package matrix - matrix-vector kernels shared by the solver and analyzer.
//
// Determinism & Policy:
//   - Fixed row order, fixed column order inside a row.
//   - Kernels write into caller-owned output slices; no N×N temporaries.
//
// AI-Hints:
//   - Reuse x/y buffers across iterations and swap them; the kernels never
//     alias-check, so x and y must be distinct slices.

package matrix

// DefaultChunkRows is the row-chunk size used by MulVecChunked when the caller
// passes a non-positive chunk.
const DefaultChunkRows = 256

// MulVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix if m is nil.
//   - ErrDimensionMismatch if len(x) or len(y) differ from Size().
//
// Complexity: Time O(nnz), Space O(1) beyond y.
func MulVec(m Matrix, x, y []float64) error {
	return MulVecChunked(m, x, y, 0)
}

// MulVecChunked computes y = m·x one block of chunkRows rows at a time.
// Each block touches only its own rows of m and its own slice of y, so peak
// working memory stays bounded by one block regardless of n.
// The result is bit-identical to MulVec for every chunk size.
//
// Inputs:
//   - chunkRows: rows per block; ≤ 0 selects DefaultChunkRows.
//
// Errors: as MulVec.
// Complexity: Time O(nnz), Space O(1) beyond y.
func MulVecChunked(m Matrix, x, y []float64, chunkRows int) error {
	if m == nil {
		return matrixErrorf("MulVec", ErrNilMatrix)
	}
	n := m.Size()
	if len(x) != n || len(y) != n {
		return matrixErrorf("MulVec", ErrDimensionMismatch)
	}
	if chunkRows <= 0 {
		chunkRows = DefaultChunkRows
	}

	for lo := 0; lo < n; lo += chunkRows {
		hi := lo + chunkRows
		if hi > n {
			hi = n
		}
		block := y[lo:hi]
		for i := range block {
			block[i] = m.RowDot(lo+i, x)
		}
	}

	return nil
}

// MulVecT computes y = mᵀ·x by scattering each row of m, so the transpose
// is never materialized. This is the left-multiplication x·m used by
// stationary-distribution iterations.
//
// Errors: as MulVec.
// Complexity: Time O(nnz), Space O(1) beyond y.
func MulVecT(m Matrix, x, y []float64) error {
	if m == nil {
		return matrixErrorf("MulVecT", ErrNilMatrix)
	}
	n := m.Size()
	if len(x) != n || len(y) != n {
		return matrixErrorf("MulVecT", ErrDimensionMismatch)
	}

	for j := range y {
		y[j] = 0
	}
	for i := 0; i < n; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		m.EachInRow(i, func(j int, v float64) {
			y[j] += v * xi
		})
	}

	return nil
}
