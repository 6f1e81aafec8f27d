// SPDX-License-Identifier: MIT

// Package matrix - self-loop normalization view.
//
// An all-zero row means "this stakeholder listens to nobody". Both the solver
// and the analyzer read such a row as weight 1 on the diagonal. SelfLoops
// provides that reading as a view over the original storage: no cell is
// copied, so the normalization costs O(#zero rows) memory instead of a second
// N×N matrix.

package matrix

// SelfLoopView wraps a Matrix and reads every all-zero row as a unit
// self-loop. All other rows are delegated unchanged.
type SelfLoopView struct {
	base  Matrix
	loops map[int]struct{}
}

var _ Matrix = (*SelfLoopView)(nil)

// SelfLoops returns a view of m in which every row summing to exactly 0 reads
// as e_i (1 on the diagonal). It also returns the patched row indices in
// ascending order. When no row is patched the view still wraps m, so callers
// can use it unconditionally.
//
// Errors:
//   - ErrNilMatrix if m is nil.
func SelfLoops(m Matrix) (*SelfLoopView, []int, error) {
	if m == nil {
		return nil, nil, matrixErrorf("SelfLoops", ErrNilMatrix)
	}
	rows := ZeroRows(m)
	loops := make(map[int]struct{}, len(rows))
	for _, i := range rows {
		loops[i] = struct{}{}
	}

	return &SelfLoopView{base: m, loops: loops}, rows, nil
}

func (v *SelfLoopView) isLoop(i int) bool {
	_, ok := v.loops[i]
	return ok
}

// Kind reports the storage form of the wrapped matrix.
func (v *SelfLoopView) Kind() Kind { return v.base.Kind() }

// Size returns the wrapped dimension.
func (v *SelfLoopView) Size() int { return v.base.Size() }

// NNZ counts one extra stored cell per patched Sparse row; Dense rows already
// store their diagonal.
func (v *SelfLoopView) NNZ() int {
	if v.base.Kind() == KindDense {
		return v.base.NNZ()
	}

	return v.base.NNZ() + len(v.loops)
}

// At returns 1 on the diagonal of a patched row and 0 elsewhere in it.
func (v *SelfLoopView) At(i, j int) (float64, error) {
	w, err := v.base.At(i, j)
	if err != nil {
		return 0, err
	}
	if v.isLoop(i) && i == j {
		return 1, nil
	}

	return w, nil
}

// RowSum is 1 for a patched row.
func (v *SelfLoopView) RowSum(i int) float64 {
	if v.isLoop(i) {
		return 1
	}

	return v.base.RowSum(i)
}

// RowDot returns x[i] for a patched row.
func (v *SelfLoopView) RowDot(i int, x []float64) float64 {
	if v.isLoop(i) {
		return x[i]
	}

	return v.base.RowDot(i, x)
}

// EachInRow yields the single cell (i, 1) for a patched Sparse row. For a
// patched Dense row it yields all columns with 1 on the diagonal.
func (v *SelfLoopView) EachInRow(i int, fn func(j int, w float64)) {
	if !v.isLoop(i) {
		v.base.EachInRow(i, fn)
		return
	}
	if v.base.Kind() == KindSparse {
		fn(i, 1)
		return
	}
	v.base.EachInRow(i, func(j int, _ float64) {
		if j == i {
			fn(j, 1)
			return
		}
		fn(j, 0)
	})
}

// Clone returns an independent copy of the view and its base.
func (v *SelfLoopView) Clone() Matrix {
	loops := make(map[int]struct{}, len(v.loops))
	for i := range v.loops {
		loops[i] = struct{}{}
	}

	return &SelfLoopView{base: v.base.Clone(), loops: loops}
}
