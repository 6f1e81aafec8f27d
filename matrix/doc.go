// SPDX-License-Identifier: MIT

// Package matrix provides the influence-matrix representations shared by the
// consensus solver, the influence analyzer and the nomikai mutator.
//
// Two storage forms implement the read-only Matrix interface:
//
//   - Dense: a row-major N×N buffer with O(1) cell access and O(N²) memory.
//   - Sparse: a (row, col, value) triple list compiled into CSR form at
//     construction, with O(nnz) memory and O(log k) cell access.
//
// The form is fixed when the value is built (Kind reports it) and is never
// switched implicitly; ToDense and ToSparse produce explicit converted copies.
//
// The validators (ValidateShape, ValidateBounds, ValidateStochastic,
// IsWeaklyConnected, Components) operate uniformly over both forms through the
// Matrix capability set (Size, At, RowSum, RowDot, EachInRow).
//
// Influence semantics: row i lists whom stakeholder i listens to, and
// W[i,j] is the weight i places on j. A valid influence matrix is square,
// every cell lies in [0,1], and every row sums to 1 within tolerance, except an
// all-zero row, which callers interpret as an isolated stakeholder (self-loop).
package matrix
