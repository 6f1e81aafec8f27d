// SPDX-License-Identifier: MIT

package config

// Option adjusts an EngineConfig. Options never validate; call Validate (or
// New) once all of them are applied.
type Option func(*EngineConfig)

// New returns Default() with opts applied, validated.
func New(opts ...Option) (EngineConfig, error) {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}

	return cfg, nil
}

// WithMaxSteps sets the DeGroot iteration budget.
func WithMaxSteps(steps int) Option {
	return func(c *EngineConfig) { c.MaxSteps = steps }
}

// WithTolerance sets the convergence and row-sum tolerance.
func WithTolerance(tol float64) Option {
	return func(c *EngineConfig) { c.Tolerance = tol }
}

// WithNomikai sets the support boost and the self-weight reduction.
func WithNomikai(boost, reduction float64) Option {
	return func(c *EngineConfig) {
		c.NomikaiBoost = boost
		c.NomikaiReduction = reduction
	}
}

// WithSparseThreshold sets the stakeholder count from which the sparse
// backend is used.
func WithSparseThreshold(n int) Option {
	return func(c *EngineConfig) { c.SparseThreshold = n }
}

// WithChunkRows sets the row-block size of the dense product.
func WithChunkRows(rows int) Option {
	return func(c *EngineConfig) { c.ChunkRows = rows }
}

// WithEigen sets the sparse eigensolver iteration cap and the largest network
// that may be densified when it fails (0 disables the fallback).
func WithEigen(maxIter, denseFallbackLimit int) Option {
	return func(c *EngineConfig) {
		c.EigenMaxIter = maxIter
		c.DenseFallbackLimit = denseFallbackLimit
	}
}

// WithMaxStakeholders caps the accepted network size.
func WithMaxStakeholders(n int) Option {
	return func(c *EngineConfig) { c.MaxStakeholders = n }
}
