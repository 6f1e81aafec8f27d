// SPDX-License-Identifier: MIT

package influence

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
)

// ErrCalculation signals that no usable centrality vector could be produced
// and no fallback applies. It is numerical, never transient: do not retry.
var ErrCalculation = errors.New("influence: centrality calculation failed")

// errNotConverged is the internal signal that triggers the dense fallback.
var errNotConverged = errors.New("influence: power iteration did not converge")

// Method records which solver produced a Centrality.
type Method string

const (
	MethodDense         Method = "dense"
	MethodSparse        Method = "sparse"
	MethodDenseFallback Method = "dense_fallback"
	MethodDegraded      Method = "degraded"
)

// Centrality is the stationary-distribution score of every stakeholder.
type Centrality struct {
	Names      []string  // index order
	Scores     []float64 // index order; sums to 1 unless Method == MethodDegraded
	Eigenvalue complex128
	Method     Method
	Iterations int // power-iteration steps; 0 on the dense path

	Diagnostics []diag.Diagnostic
}

// Ranking returns names ordered by descending score. Equal scores keep index
// order (stable sort), so a degraded all-zero vector ranks in index order.
func (c *Centrality) Ranking() []string {
	order := make([]int, len(c.Scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.Scores[order[a]] > c.Scores[order[b]]
	})

	out := make([]string, len(order))
	for k, i := range order {
		out[k] = c.Names[i]
	}

	return out
}

// Score returns the centrality of the stakeholder called name.
func (c *Centrality) Score(name string) (float64, bool) {
	for i, n := range c.Names {
		if n == name {
			return c.Scores[i], true
		}
	}

	return 0, false
}

// RankInfluencers returns stakeholder names, most influential first.
// An empty network yields an empty, non-nil slice.
func RankInfluencers(net *network.Network, cfg config.EngineConfig) ([]string, error) {
	c, err := Analyze(net, cfg)
	if err != nil {
		return nil, err
	}

	return c.Ranking(), nil
}

// Analyze computes the centrality vector.
//
// Implementation:
//   - Stage 1: validate cfg; empty network short-circuits.
//   - Stage 2: wrap zero rows as self-loops.
//   - Stage 3: N < SparseThreshold → dense eigen-decomposition; otherwise power
//     iteration, then dense fallback or degraded result on non-convergence.
//
// Errors:
//   - network.ErrNilNetwork, config.ErrInvalidConfig, network.ErrTooLarge.
//   - ErrCalculation when the decomposition fails and no fallback applies.
//
// Complexity:
//   - Dense: Time O(N³), Space O(N²).
//   - Sparse: Time O(iter · nnz), Space O(N).
func Analyze(net *network.Network, cfg config.EngineConfig) (*Centrality, error) {
	if net == nil {
		return nil, fmt.Errorf("influence: %w", network.ErrNilNetwork)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("influence: %w", err)
	}

	n := net.Len()
	c := &Centrality{Names: net.Names(), Scores: []float64{}, Method: MethodDense}
	if n == 0 {
		return c, nil
	}
	if err := net.EnsureMaxSize(cfg.MaxStakeholders); err != nil {
		return nil, fmt.Errorf("influence: %w", err)
	}

	op, _, err := matrix.SelfLoops(net.Matrix())
	if err != nil {
		return nil, fmt.Errorf("influence: %w", err)
	}

	if !cfg.UseSparse(n) {
		c.Scores, c.Eigenvalue, err = denseCentrality(op)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	sp, err := matrix.AsKind(op, matrix.KindSparse)
	if err != nil {
		return nil, fmt.Errorf("influence: %w", err)
	}
	scores, lambda, iters, err := powerCentrality(sp, cfg.Tolerance, cfg.EigenMaxIter)
	c.Iterations = iters
	switch {
	case err == nil:
		c.Scores, c.Eigenvalue, c.Method = scores, lambda, MethodSparse
		return c, nil
	case !errors.Is(err, errNotConverged):
		return nil, err
	case n <= cfg.DenseFallbackLimit:
		c.Diagnostics = append(c.Diagnostics, diag.New(diag.EigenDenseFallback,
			"power iteration did not converge in %d steps; densifying %d×%d", iters, n, n))
		c.Scores, c.Eigenvalue, err = denseCentrality(op)
		if err != nil {
			return nil, err
		}
		c.Method = MethodDenseFallback
		return c, nil
	default:
		c.Diagnostics = append(c.Diagnostics, diag.New(diag.EigenDegraded,
			"power iteration did not converge in %d steps and %d > dense fallback limit %d; no ranking information",
			iters, n, cfg.DenseFallbackLimit))
		c.Scores = make([]float64, n)
		c.Method = MethodDegraded
		return c, nil
	}
}

// denseCentrality runs the full eigen-decomposition of Wᵀ.
//
// Implementation:
//   - Stage 1: materialize Wᵀ as a gonum Dense (one O(N²) allocation).
//   - Stage 2: factorize with right eigenvectors.
//   - Stage 3: pick argmin |λ − 1| (first index on ties), take |v|, normalize.
func denseCentrality(w matrix.Matrix) ([]float64, complex128, error) {
	n := w.Size()
	wt := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		col := i
		w.EachInRow(i, func(j int, v float64) {
			wt.Set(j, col, v)
		})
	}

	var eig mat.Eigen
	if ok := eig.Factorize(wt, mat.EigenRight); !ok {
		return nil, 0, fmt.Errorf("%w: eigen-decomposition of %d×%d transpose did not converge", ErrCalculation, n, n)
	}
	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	best, bestDist := 0, math.Inf(1)
	for k, lambda := range values {
		if d := cmplx.Abs(lambda - 1); d < bestDist {
			best, bestDist = k, d
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = cmplx.Abs(vectors.At(i, best))
	}
	if err := normalize(scores); err != nil {
		return nil, 0, fmt.Errorf("%w: eigenvalue %v: %w", ErrCalculation, values[best], err)
	}

	return scores, values[best], nil
}

// powerCentrality iterates π ← πW (i.e. Wᵀπ) from the uniform vector,
// renormalizing to unit L1 mass each step, until the L1 change is ≤ tol.
// Returns errNotConverged after maxIter steps.
func powerCentrality(w matrix.Matrix, tol float64, maxIter int) ([]float64, complex128, int, error) {
	n := w.Size()
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	y := make([]float64, n)

	for it := 1; it <= maxIter; it++ {
		if err := matrix.MulVecT(w, x, y); err != nil {
			return nil, 0, it, fmt.Errorf("%w: %w", ErrCalculation, err)
		}
		mass := 0.0
		for _, v := range y {
			mass += v
		}
		if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
			return nil, 0, it, fmt.Errorf("%w: power iteration lost mass (%v)", ErrCalculation, mass)
		}

		var delta float64
		for i := range y {
			y[i] /= mass
			delta += math.Abs(y[i] - x[i])
		}
		if delta <= tol {
			return y, complex(mass, 0), it, nil
		}
		x, y = y, x
	}

	return nil, 0, maxIter, errNotConverged
}

// normalize scales v in place to unit sum. A zero or non-finite sum is an error.
func normalize(v []float64) error {
	var sum float64
	for _, s := range v {
		sum += s
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return fmt.Errorf("unusable eigenvector (sum %v)", sum)
	}
	for i := range v {
		v[i] /= sum
	}

	return nil
}

// IsConnected reports whether the network forms a single weakly-connected
// component. An empty network is not connected.
func IsConnected(net *network.Network) bool {
	if net == nil {
		return false
	}

	return matrix.IsWeaklyConnected(net.Matrix())
}
