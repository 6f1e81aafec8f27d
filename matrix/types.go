// SPDX-License-Identifier: MIT

// Package matrix: representation tag, the shared Matrix capability set and
// the sparse Entry triple.
package matrix

// Kind tags the storage form of a Matrix. It is decided once at construction
// and never re-inspected from contents.
type Kind uint8

const (
	// KindDense marks a row-major N×N buffer (*Dense).
	KindDense Kind = iota
	// KindSparse marks a CSR-compiled triple list (*Sparse).
	KindSparse
)

// String returns the lowercase name of the storage form.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Matrix is the read-only capability set shared by Dense and Sparse.
// Every method is safe for concurrent readers; none mutates the receiver.
//
// Complexity notes (n = Size, k = stored entries in a row):
//   - Dense: At O(1), RowSum/RowDot/EachInRow O(n).
//   - Sparse: At O(log k), RowSum/RowDot/EachInRow O(k).
type Matrix interface {
	// Kind reports the storage form.
	Kind() Kind

	// Size returns the dimension n of the square n×n matrix.
	Size() int

	// At returns W[i,j]. Returns ErrIndexOutOfRange for invalid indices.
	At(i, j int) (float64, error)

	// RowSum returns Σ_j W[i,j]. The caller guarantees 0 ≤ i < Size().
	RowSum(i int) float64

	// RowDot returns Σ_j W[i,j]·x[j]. The caller guarantees 0 ≤ i < Size()
	// and len(x) == Size().
	RowDot(i int, x []float64) float64

	// EachInRow calls fn for every stored cell of row i in ascending column
	// order. Dense visits all n columns; Sparse visits stored entries only
	// (including explicitly stored zeros).
	EachInRow(i int, fn func(j int, v float64))

	// NNZ returns the number of stored cells (n² for Dense).
	NNZ() int

	// Clone returns a structurally independent copy of the same Kind.
	Clone() Matrix
}

// Entry is one (row, col, value) triple of a sparse matrix.
type Entry struct {
	Row   int     // listener index
	Col   int     // influencer index
	Value float64 // weight the listener places on the influencer
}
