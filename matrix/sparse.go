// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (triple list compiled to CSR).
//
// Purpose:
//   - Keep memory proportional to the number of stored influence edges, which
//     is what makes networks with thousands of stakeholders tractable.
//   - Preserve the caller's notion of "existing edge": an entry stored with
//     value 0 is still an edge for EachInRow and for the nomikai mutator.
//
// Layout:
//   - rowPtr has n+1 offsets; row i occupies cols/vals[rowPtr[i]:rowPtr[i+1]].
//   - Columns inside a row are strictly ascending (duplicates are rejected).
//
// Complexity quicksheet:
//   - NewSparse: O(k log k) for k entries; At: O(log k_i); RowSum/RowDot: O(k_i).

package matrix

import (
	"math"
	"sort"
)

const (
	ctxSparseNew     = "NewSparse"
	ctxSparseAt      = "Sparse.At"
	ctxSparseReplace = "Sparse.ReplaceRow"
)

// Sparse is a square influence matrix in compressed sparse row form.
type Sparse struct {
	n      int       // dimension
	rowPtr []int     // len n+1, rowPtr[0] == 0
	cols   []int     // column index per stored entry
	vals   []float64 // value per stored entry
}

var _ Matrix = (*Sparse)(nil)

// NewSparse compiles entries into an n×n CSR matrix.
//
// Implementation:
//   - Stage 1: validate every index against n and every value for NaN/Inf.
//   - Stage 2: copy and sort by (row, col); reject duplicate cells.
//   - Stage 3: build rowPtr by counting entries per row.
//
// Errors:
//   - ErrDimensionMismatch if n < 0.
//   - ErrIndexOutOfRange, ErrNaNInf, ErrDuplicateEntry (tagged with the cell).
//
// Notes:
//   - The input slice is never retained or reordered.
//   - Range [0,1] and stochasticity are checked by Validate, not here.
func NewSparse(n int, entries []Entry) (*Sparse, error) {
	if n < 0 {
		return nil, matrixErrorf(ctxSparseNew, ErrDimensionMismatch)
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, cellErrorf(ctxSparseNew, e.Row, e.Col, ErrIndexOutOfRange)
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return nil, cellErrorf(ctxSparseNew, e.Row, e.Col, ErrNaNInf)
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	s := &Sparse{
		n:      n,
		rowPtr: make([]int, n+1),
		cols:   make([]int, len(sorted)),
		vals:   make([]float64, len(sorted)),
	}
	for k, e := range sorted {
		if k > 0 && sorted[k-1].Row == e.Row && sorted[k-1].Col == e.Col {
			return nil, cellErrorf(ctxSparseNew, e.Row, e.Col, ErrDuplicateEntry)
		}
		s.cols[k] = e.Col
		s.vals[k] = e.Value
		s.rowPtr[e.Row+1]++
	}
	// Prefix sums turn per-row counts into offsets.
	for i := 0; i < n; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s, nil
}

// Kind reports KindSparse.
func (s *Sparse) Kind() Kind { return KindSparse }

// Size returns the dimension n.
func (s *Sparse) Size() int { return s.n }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns W[i,j]; cells without a stored entry read as 0.
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return 0, cellErrorf(ctxSparseAt, i, j, ErrIndexOutOfRange)
	}
	if k, ok := s.find(i, j); ok {
		return s.vals[k], nil
	}

	return 0, nil
}

// find locates the storage offset of (i,j) by binary search inside row i.
func (s *Sparse) find(i, j int) (int, bool) {
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	k := lo + sort.SearchInts(s.cols[lo:hi], j)
	if k < hi && s.cols[k] == j {
		return k, true
	}

	return -1, false
}

// RowSum returns the sum of stored values in row i.
func (s *Sparse) RowSum(i int) float64 {
	var sum float64
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		sum += s.vals[k]
	}

	return sum
}

// RowDot returns Σ W[i,j]·x[j] over stored entries of row i.
func (s *Sparse) RowDot(i int, x []float64) float64 {
	var acc float64
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		acc += s.vals[k] * x[s.cols[k]]
	}

	return acc
}

// EachInRow visits stored entries of row i in ascending column order.
func (s *Sparse) EachInRow(i int, fn func(j int, v float64)) {
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		fn(s.cols[k], s.vals[k])
	}
}

// RowLen returns the number of stored entries in row i.
func (s *Sparse) RowLen(i int) int {
	return s.rowPtr[i+1] - s.rowPtr[i]
}

// Clone returns an independent deep copy.
func (s *Sparse) Clone() Matrix {
	return s.cloneSparse()
}

func (s *Sparse) cloneSparse() *Sparse {
	out := &Sparse{
		n:      s.n,
		rowPtr: make([]int, len(s.rowPtr)),
		cols:   make([]int, len(s.cols)),
		vals:   make([]float64, len(s.vals)),
	}
	copy(out.rowPtr, s.rowPtr)
	copy(out.cols, s.cols)
	copy(out.vals, s.vals)

	return out
}

// Entries exports the stored triples in (row, col) order.
func (s *Sparse) Entries() []Entry {
	out := make([]Entry, 0, len(s.vals))
	for i := 0; i < s.n; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			out = append(out, Entry{Row: i, Col: s.cols[k], Value: s.vals[k]})
		}
	}

	return out
}

// ReplaceRowValues returns a new Sparse equal to s except that the values of
// row i are replaced by vals, one per stored entry in ascending column order.
// The sparsity pattern is unchanged: no entry is added or removed.
//
// Errors:
//   - ErrIndexOutOfRange if i is invalid.
//   - ErrDimensionMismatch if len(vals) != RowLen(i).
//   - ErrNaNInf for a non-finite value.
func (s *Sparse) ReplaceRowValues(i int, vals []float64) (*Sparse, error) {
	if i < 0 || i >= s.n {
		return nil, rowErrorf(ctxSparseReplace, i, ErrIndexOutOfRange)
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	if len(vals) != hi-lo {
		return nil, rowErrorf(ctxSparseReplace, i, ErrDimensionMismatch)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, rowErrorf(ctxSparseReplace, i, ErrNaNInf)
		}
	}

	out := s.cloneSparse()
	copy(out.vals[lo:hi], vals)

	return out, nil
}
