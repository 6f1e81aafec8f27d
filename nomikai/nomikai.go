// SPDX-License-Identifier: MIT

package nomikai

import (
	"fmt"
	"math"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
)

// Outcome is the result of one or more events.
type Outcome struct {
	// Network is the post-event network. When no event applied it is the
	// input network itself.
	Network *network.Network

	// Applied lists the targets that were found, in application order.
	Applied []string

	Diagnostics []diag.Diagnostic
}

// ApplyEvent returns the network after a nomikai with target.
// A missing target yields the input network unchanged.
func ApplyEvent(net *network.Network, target string, cfg config.EngineConfig) (*network.Network, error) {
	out, err := Apply(net, target, cfg)
	if err != nil {
		return nil, err
	}

	return out.Network, nil
}

// Apply runs one event and reports what happened.
//
// Implementation:
//   - Stage 1: locate target; absent → input returned with TargetMissing.
//   - Stage 2: support s → s + (1−s)·boost, clamped to [0,1].
//   - Stage 3: self-weight w → max(0, w − reduction); move the difference onto
//     the other weights of the row (dense: all N−1 columns; sparse: stored
//     non-self entries). With nowhere to move it, the row is left as is and
//     NoRedistributableEdges is recorded.
//   - Stage 4: mirror the final diagonal into Stubbornness; re-validate.
//
// Errors:
//   - network.ErrNilNetwork, config.ErrInvalidConfig.
//   - Any matrix validation sentinel if the rebuilt network fails validation.
//
// Complexity: Time O(N + nnz) for the copy, Space O(N + nnz).
func Apply(net *network.Network, target string, cfg config.EngineConfig) (*Outcome, error) {
	if net == nil {
		return nil, fmt.Errorf("nomikai: %w", network.ErrNilNetwork)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("nomikai: %w", err)
	}

	idx, ok := net.IndexOf(target)
	if !ok {
		missing := diag.ForStakeholder(diag.TargetMissing, target, diag.NoIndex,
			"target %q not in network; unchanged", target)

		return &Outcome{Network: net, Applied: []string{}, Diagnostics: []diag.Diagnostic{missing}}, nil
	}

	var (
		w        matrix.Matrix
		diagonal float64
		moved    bool
		err      error
	)
	switch net.Kind() {
	case matrix.KindSparse:
		w, diagonal, moved, err = reduceSparse(net.Matrix(), idx, cfg.NomikaiReduction)
	default:
		w, diagonal, moved, err = reduceDense(net.Matrix(), idx, cfg.NomikaiReduction)
	}
	if err != nil {
		return nil, fmt.Errorf("nomikai(%q): %w", target, err)
	}

	out := &Outcome{Applied: []string{target}}
	if !moved {
		out.Diagnostics = append(out.Diagnostics, diag.ForStakeholder(diag.NoRedistributableEdges, target, idx,
			"no other edges to receive %.4g self-weight; reduction reverted", diagonal))
	}

	people := net.Stakeholders()
	s := people[idx]
	s.Support = clampUnit(s.Support + (1-s.Support)*cfg.NomikaiBoost)
	s.Stubbornness = clampUnit(diagonal)
	people[idx] = s

	next, err := network.New(people, w, network.WithTolerance(net.Tolerance()))
	if err != nil {
		return nil, fmt.Errorf("nomikai(%q): %w", target, err)
	}
	out.Network = next

	return out, nil
}

// ApplyEvents runs targets in order, each on the previous output.
// Diagnostics accumulate; a missing target is skipped.
func ApplyEvents(net *network.Network, targets []string, cfg config.EngineConfig) (*Outcome, error) {
	if net == nil {
		return nil, fmt.Errorf("nomikai: %w", network.ErrNilNetwork)
	}

	acc := &Outcome{Network: net, Applied: []string{}}
	for k, target := range targets {
		step, err := Apply(acc.Network, target, cfg)
		if err != nil {
			return nil, fmt.Errorf("nomikai event %d: %w", k, err)
		}
		acc.Network = step.Network
		acc.Applied = append(acc.Applied, step.Applied...)
		acc.Diagnostics = append(acc.Diagnostics, step.Diagnostics...)
	}

	return acc, nil
}

// reduceDense returns a copy of m with row i's self-weight reduced and the
// difference split evenly over the other N−1 columns.
// moved is false when N == 1; the copy is then unchanged.
func reduceDense(m matrix.Matrix, i int, reduction float64) (matrix.Matrix, float64, bool, error) {
	d, err := matrix.ToDense(m)
	if err != nil {
		return nil, 0, false, err
	}
	oldSelf, err := d.At(i, i)
	if err != nil {
		return nil, 0, false, err
	}
	n := d.Size()
	if n == 1 {
		return d, oldSelf, false, nil
	}

	newSelf := math.Max(0, oldSelf-reduction)
	share := (oldSelf - newSelf) / float64(n-1)
	if err = d.Set(i, i, newSelf); err != nil {
		return nil, 0, false, err
	}
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		v, _ := d.At(i, j)
		if err = d.Set(i, j, clampUnit(v+share)); err != nil {
			return nil, 0, false, err
		}
	}

	return d, newSelf, true, nil
}

// reduceSparse is reduceDense over stored entries only. A missing diagonal
// reads as 0 and leaves the row alone. With no stored non-self entry the
// row is left unchanged and moved is false.
func reduceSparse(m matrix.Matrix, i int, reduction float64) (matrix.Matrix, float64, bool, error) {
	s, err := matrix.ToSparse(m)
	if err != nil {
		return nil, 0, false, err
	}

	vals := make([]float64, 0, s.RowLen(i))
	self, others := -1, 0
	s.EachInRow(i, func(j int, v float64) {
		if j == i {
			self = len(vals)
		} else {
			others++
		}
		vals = append(vals, v)
	})
	if self < 0 {
		return s, 0, others > 0, nil
	}
	oldSelf := vals[self]
	if others == 0 {
		return s, oldSelf, false, nil
	}

	newSelf := math.Max(0, oldSelf-reduction)
	share := (oldSelf - newSelf) / float64(others)
	for k := range vals {
		if k == self {
			vals[k] = newSelf
			continue
		}
		vals[k] = clampUnit(vals[k] + share)
	}

	out, err := s.ReplaceRowValues(i, vals)
	if err != nil {
		return nil, 0, false, err
	}

	return out, newSelf, true, nil
}

func clampUnit(v float64) float64 {
	return math.Min(matrix.MaxWeight, math.Max(matrix.MinWeight, v))
}
