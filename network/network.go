// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/matrix"
)

// Network is a validated, immutable influence network.
// Index i of Stakeholders() and row/column i of Matrix() denote the same
// stakeholder; W[i,j] is the weight i places on j's opinion.
type Network struct {
	stakeholders []Stakeholder
	w            matrix.Matrix
	index        map[string]int
	tol          float64
}

// Option configures New.
type Option func(*options)

type options struct {
	tol float64
}

// WithTolerance sets the row-sum tolerance of the stochasticity check.
// The default is config.DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// New validates and wraps stakeholders and w.
//
// Implementation:
//   - Stage 1: validate every stakeholder and name uniqueness.
//   - Stage 2: matrix.Validate(w, len(stakeholders), tol).
//   - Stage 3: clone stakeholders and w; build the name index.
//
// Errors:
//   - ErrInvalidStakeholder, ErrDuplicateName.
//   - Any matrix validation sentinel (ErrDimensionMismatch, ErrWeightOutOfRange,
//     ErrNotStochastic, ErrNilMatrix, ErrBadTolerance, …).
//   - All of them satisfy errors.Is(err, matrix.ErrValidation).
//
// Complexity: Time O(N + nnz), Space O(N + nnz).
func New(stakeholders []Stakeholder, w matrix.Matrix, opts ...Option) (*Network, error) {
	o := options{tol: config.DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int, len(stakeholders))
	for i, s := range stakeholders {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("network.New(stakeholder %d): %w", i, err)
		}
		if prev, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("network.New: %w: %q at %d and %d", ErrDuplicateName, s.Name, prev, i)
		}
		index[s.Name] = i
	}
	if err := matrix.Validate(w, len(stakeholders), o.tol); err != nil {
		return nil, fmt.Errorf("network.New: %w", err)
	}

	cp := make([]Stakeholder, len(stakeholders))
	copy(cp, stakeholders)

	return &Network{stakeholders: cp, w: w.Clone(), index: index, tol: o.tol}, nil
}

// FromRows is New over a dense row-of-rows literal.
func FromRows(stakeholders []Stakeholder, rows [][]float64, opts ...Option) (*Network, error) {
	d, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("network.FromRows: %w", err)
	}

	return New(stakeholders, d, opts...)
}

// FromEntries is New over sparse (row, col, value) triples.
func FromEntries(stakeholders []Stakeholder, entries []matrix.Entry, opts ...Option) (*Network, error) {
	s, err := matrix.NewSparse(len(stakeholders), entries)
	if err != nil {
		return nil, fmt.Errorf("network.FromEntries: %w", err)
	}

	return New(stakeholders, s, opts...)
}

// Len returns the number of stakeholders N.
func (n *Network) Len() int { return len(n.stakeholders) }

// Kind reports the storage form of the influence matrix.
func (n *Network) Kind() matrix.Kind { return n.w.Kind() }

// Tolerance returns the row-sum tolerance the network was validated with.
func (n *Network) Tolerance() float64 { return n.tol }

// Matrix returns the influence matrix. The Matrix interface is read-only;
// callers must not type-assert and mutate it.
func (n *Network) Matrix() matrix.Matrix { return n.w }

// Stakeholders returns a copy of the ordered stakeholder list.
func (n *Network) Stakeholders() []Stakeholder {
	cp := make([]Stakeholder, len(n.stakeholders))
	copy(cp, n.stakeholders)

	return cp
}

// Stakeholder returns the stakeholder at index i.
func (n *Network) Stakeholder(i int) (Stakeholder, bool) {
	if i < 0 || i >= len(n.stakeholders) {
		return Stakeholder{}, false
	}

	return n.stakeholders[i], true
}

// IndexOf returns the index of the stakeholder called name.
func (n *Network) IndexOf(name string) (int, bool) {
	i, ok := n.index[name]
	return i, ok
}

// Names returns stakeholder names in index order.
func (n *Network) Names() []string {
	out := make([]string, len(n.stakeholders))
	for i, s := range n.stakeholders {
		out[i] = s.Name
	}

	return out
}

// Opinions returns the support vector x(0) in index order.
func (n *Network) Opinions() []float64 {
	out := make([]float64, len(n.stakeholders))
	for i, s := range n.stakeholders {
		out[i] = s.Support
	}

	return out
}

// EnsureMaxSize returns ErrTooLarge when the network has more than limit
// stakeholders.
func (n *Network) EnsureMaxSize(limit int) error {
	if len(n.stakeholders) > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(n.stakeholders), limit)
	}

	return nil
}

// Equal reports whether two networks hold the same stakeholders and the same
// logical matrix cells. The storage form is ignored: a Dense and a Sparse
// encoding of one matrix are equal.
func (n *Network) Equal(other *Network) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil || len(n.stakeholders) != len(other.stakeholders) {
		return false
	}
	for i := range n.stakeholders {
		if n.stakeholders[i] != other.stakeholders[i] {
			return false
		}
	}
	size := n.w.Size()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			a, _ := n.w.At(i, j)
			b, _ := other.w.At(i, j)
			if a != b {
				return false
			}
		}
	}

	return true
}
