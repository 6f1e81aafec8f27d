// SPDX-License-Identifier: MIT

// Package consensus implements the French–DeGroot opinion-dynamics solver.
//
// Each stakeholder repeatedly replaces its opinion with the weighted average
// of the opinions it listens to:
//
//	x(t+1) = W · x(t)
//
// The iteration stops as soon as every component moved by at most the
// tolerance, or after MaxSteps. Non-convergence is not an error: periodic or
// slowly mixing networks legitimately fail to settle, so the last vector is
// returned together with a diagnostic.
//
// Because W is row-stochastic, every update is a convex combination, so each
// output stays within [min x(0), max x(0)] ⊆ [0,1].
//
// Backend selection is a memory decision only: networks below
// SparseThreshold run on the dense form, larger ones on CSR. Both produce the
// same values.
package consensus
