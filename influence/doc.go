// SPDX-License-Identifier: MIT

// Package influence ranks stakeholders by their long-run weight in the
// DeGroot consensus.
//
// Under x(t+1) = W·x(t) the consensus value is π·x(0), where π is the
// stationary distribution of the Markov chain W: the left eigenvector of W
// for eigenvalue 1, i.e. the right eigenvector of Wᵀ. π_i is stakeholder i's
// centrality.
//
// Two solvers are used:
//
//   - Dense (N < SparseThreshold): a full eigen-decomposition of Wᵀ; the
//     eigenvalue closest to 1 is selected and the magnitude of its eigenvector,
//     normalized to sum 1, is the centrality.
//   - Sparse (N ≥ SparseThreshold): power iteration on Wᵀ over CSR, which
//     targets the largest-magnitude eigenpair (λ = 1 for a stochastic matrix).
//     Periodic chains never settle; then the network is densified if
//     N ≤ DenseFallbackLimit, otherwise an all-zero centrality is returned
//     (no ranking information) with a diagnostic.
//
// All-zero rows are read as self-loops, exactly as the consensus solver does.
package influence
