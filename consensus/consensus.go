// SPDX-License-Identifier: MIT

package consensus

import (
	"fmt"
	"math"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
)

// Result is the full outcome of one DeGroot run.
type Result struct {
	// Opinions maps stakeholder name to final opinion.
	Opinions map[string]float64

	// Vector holds the same values in stakeholder index order.
	Vector []float64

	// Steps is the number of products W·x computed.
	Steps int

	// Converged is false when MaxSteps was exhausted.
	Converged bool

	// Backend is the storage form the iteration ran on.
	Backend matrix.Kind

	// Diagnostics lists soft observations (zero-row self-loops, non-convergence).
	Diagnostics []diag.Diagnostic
}

// Solve runs the DeGroot model and returns the final opinion per stakeholder.
//
// Errors:
//   - config.ErrInvalidConfig for an invalid cfg.
//   - network.ErrNilNetwork, network.ErrTooLarge, matrix.ErrNotStochastic
//     (re-checked against cfg.Tolerance); all in the matrix.ErrValidation family.
//
// An empty network yields an empty, non-nil map.
func Solve(net *network.Network, cfg config.EngineConfig) (map[string]float64, error) {
	res, err := Run(net, cfg)
	if err != nil {
		return nil, err
	}

	return res.Opinions, nil
}

// Run is Solve returning the full Result.
func Run(net *network.Network, cfg config.EngineConfig) (*Result, error) {
	return run(net, cfg, false)
}

// RunConnected is Run with a connectivity precondition: a network with more
// than one weakly-connected component fails with matrix.ErrDisconnectedGraph.
// The plain solver never requires this; DeGroot is well defined on each
// component independently.
func RunConnected(net *network.Network, cfg config.EngineConfig) (*Result, error) {
	return run(net, cfg, true)
}

// run executes the shared pipeline.
//
// Implementation:
//   - Stage 1: validate cfg and the network size; empty network short-circuits.
//   - Stage 2: pick the backend by N vs SparseThreshold and convert if needed.
//   - Stage 3: re-check stochasticity with cfg.Tolerance; optional connectivity.
//   - Stage 4: wrap zero rows as self-loops (view, no copy) and iterate.
//
// Complexity: Time O(steps · nnz), Space O(N) beyond the backend conversion.
func run(net *network.Network, cfg config.EngineConfig, connected bool) (*Result, error) {
	if net == nil {
		return nil, fmt.Errorf("consensus: %w", network.ErrNilNetwork)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}

	n := net.Len()
	if n == 0 {
		return &Result{
			Opinions:  map[string]float64{},
			Vector:    []float64{},
			Converged: true,
			Backend:   net.Kind(),
		}, nil
	}
	if err := net.EnsureMaxSize(cfg.MaxStakeholders); err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}

	backend := matrix.KindDense
	if cfg.UseSparse(n) {
		backend = matrix.KindSparse
	}
	w, err := matrix.AsKind(net.Matrix(), backend)
	if err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}
	if err = matrix.ValidateStochastic(w, cfg.Tolerance); err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}
	if connected {
		if err = matrix.RequireConnected(w); err != nil {
			return nil, fmt.Errorf("consensus: %w", err)
		}
	}

	op, loops, err := matrix.SelfLoops(w)
	if err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}

	res := &Result{Backend: backend}
	for _, i := range loops {
		s, _ := net.Stakeholder(i)
		res.Diagnostics = append(res.Diagnostics, diag.ForStakeholder(
			diag.ZeroRowSelfLoop, s.Name, i, "row sums to 0; opinion held constant"))
	}

	chunk := cfg.ChunkRows
	if backend == matrix.KindSparse {
		chunk = n // CSR rows are already bounded by their own nnz
	}
	vec, steps, converged, err := iterate(op, net.Opinions(), cfg.MaxSteps, cfg.Tolerance, chunk)
	if err != nil {
		return nil, fmt.Errorf("consensus: %w", err)
	}
	if !converged {
		res.Diagnostics = append(res.Diagnostics, diag.New(diag.NotConverged,
			"no fixed point within tolerance %g after %d steps", cfg.Tolerance, steps))
	}

	res.Vector = vec
	res.Steps = steps
	res.Converged = converged
	res.Opinions = make(map[string]float64, n)
	for i, name := range net.Names() {
		res.Opinions[name] = vec[i]
	}

	return res, nil
}

// iterate runs x ← W·x until every component moves by at most tol, or
// maxSteps products have been computed. x is consumed as the initial state.
// Two buffers are swapped between steps; nothing else is allocated.
func iterate(w matrix.Matrix, x []float64, maxSteps int, tol float64, chunk int) ([]float64, int, bool, error) {
	next := make([]float64, len(x))
	for step := 1; step <= maxSteps; step++ {
		if err := matrix.MulVecChunked(w, x, next, chunk); err != nil {
			return nil, step, false, err
		}
		if allClose(x, next, tol) {
			return next, step, true, nil
		}
		x, next = next, x
	}

	// After the final swap, x holds the last computed vector.
	return x, maxSteps, false, nil
}

// allClose reports |a[i]-b[i]| ≤ tol for every i.
func allClose(a, b []float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}

	return true
}
