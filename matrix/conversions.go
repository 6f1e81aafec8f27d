// SPDX-License-Identifier: MIT

// Package matrix - explicit conversions between storage forms.
//
// Conversions always allocate; neither form is ever switched in place.
// Dense → Sparse keeps only non-zero cells (a zero cell is not an edge).
// Sparse → Dense materializes every cell, stored zeros included.

package matrix

// ToDense returns a Dense copy of m.
// A *Dense input yields a deep clone.
//
// Errors:
//   - ErrNilMatrix if m is nil.
//
// Complexity: Time O(n² + nnz), Space O(n²).
func ToDense(m Matrix) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("ToDense", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok {
		return d.cloneDense(), nil
	}

	n := m.Size()
	out := &Dense{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		base := i * n
		m.EachInRow(i, func(j int, v float64) {
			out.data[base+j] = v
		})
	}

	return out, nil
}

// ToSparse returns a Sparse copy of m.
// A *Sparse input yields a deep clone (stored zeros preserved); a *Dense input
// keeps only its non-zero cells.
//
// Errors:
//   - ErrNilMatrix if m is nil.
//
// Complexity: Time O(n²) for Dense input, O(nnz) for Sparse. Space O(nnz).
func ToSparse(m Matrix) (*Sparse, error) {
	if m == nil {
		return nil, matrixErrorf("ToSparse", ErrNilMatrix)
	}
	if s, ok := m.(*Sparse); ok {
		return s.cloneSparse(), nil
	}

	// Rows are visited in order and columns ascend inside EachInRow, so the
	// CSR arrays can be appended directly without a sort.
	n := m.Size()
	out := &Sparse{
		n:      n,
		rowPtr: make([]int, n+1),
	}
	for i := 0; i < n; i++ {
		m.EachInRow(i, func(j int, v float64) {
			if v != 0 {
				out.cols = append(out.cols, j)
				out.vals = append(out.vals, v)
			}
		})
		out.rowPtr[i+1] = len(out.vals)
	}

	return out, nil
}

// AsKind returns m itself when it already has the requested kind, otherwise
// a converted copy. Callers that only read the result can use it to pick a
// backend without paying for a clone on the fast path.
//
// Errors:
//   - ErrNilMatrix if m is nil.
func AsKind(m Matrix, kind Kind) (Matrix, error) {
	if m == nil {
		return nil, matrixErrorf("AsKind", ErrNilMatrix)
	}
	if m.Kind() == kind {
		return m, nil
	}
	if kind == KindSparse {
		return ToSparse(m)
	}

	return ToDense(m)
}
