// Package nemawashi models how support for a proposal diffuses across a
// weighted network of stakeholders, who steers the outcome, and how an
// informal "nomikai" conversation with one stakeholder shifts it.
//
// What is in the box:
//
//   - Consensus: French–DeGroot opinion dynamics x(t+1) = W·x(t)
//   - Influence: eigenvector centrality (stationary distribution of W)
//   - Nomikai: an invariant-preserving network mutator
//   - Matrix: Dense and Sparse (CSR) row-stochastic weights with validators
//
// Every operation is a pure function over an immutable network; the engine
// performs no I/O and may be shared across goroutines.
//
// Subpackages:
//
//	matrix/        Dense / Sparse representations, validators, kernels, connectivity
//	network/       Stakeholder and Network value objects
//	config/        EngineConfig, defaults, options, YAML
//	diag/          soft diagnostics
//	consensus/     DeGroot solver
//	influence/     centrality and ranking
//	nomikai/       social-event operator
//	engine/        facade with logging and run ids
//	scenario/      YAML scenario loader for hosts
//	cmd/nemawashi  demo host
//
// Quick example, W[i][j] = weight i places on j:
//
//	Finance ──0.1──▶ Sales      Finance keeps 0.9 of its own view,
//	   ▲                │        Sales splits 0.5 / 0.5.
//	   └──────0.5───────┘
//
// Consensus is ≈ 5/6·support(Finance) + 1/6·support(Sales); Finance ranks
// first.
package nemawashi
