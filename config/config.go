// SPDX-License-Identifier: MIT

// Package config defines EngineConfig, the read-only parameter set consumed by
// the consensus solver, the influence analyzer and the nomikai mutator.
//
// Defaults are documented constants (single source of truth); the engine
// packages never embed their own fallbacks. A config is built from Default(),
// optionally adjusted with functional Options or decoded from YAML, and must
// pass Validate before use.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxSteps caps DeGroot iterations.
	DefaultMaxSteps = 100

	// DefaultTolerance is both the element-wise convergence threshold and the
	// row-sum tolerance of the stochasticity check.
	DefaultTolerance = 1e-6

	// DefaultNomikaiBoost is the share of the remaining distance to full
	// support that one nomikai closes.
	DefaultNomikaiBoost = 0.2

	// DefaultNomikaiReduction is the absolute self-weight removed by one nomikai.
	DefaultNomikaiReduction = 0.1

	// DefaultSparseThreshold is the stakeholder count from which the sparse
	// backend is used.
	DefaultSparseThreshold = 1000

	// DefaultChunkRows is the row-block size of the dense matrix-vector product.
	DefaultChunkRows = 256

	// DefaultEigenMaxIter caps the sparse power iteration.
	DefaultEigenMaxIter = 1000

	// DefaultDenseFallbackLimit is the largest network that may be densified
	// when the sparse eigensolver does not converge.
	DefaultDenseFallbackLimit = 5000

	// DefaultMaxStakeholders is the largest network the engine accepts.
	DefaultMaxStakeholders = 10000
)

// ErrInvalidConfig is returned by Validate (wrapped with the offending field).
var ErrInvalidConfig = errors.New("config: invalid engine configuration")

// EngineConfig holds every tunable of the engine.
type EngineConfig struct {
	MaxSteps           int     `yaml:"max_steps"`
	Tolerance          float64 `yaml:"tolerance"`
	NomikaiBoost       float64 `yaml:"nomikai_boost"`
	NomikaiReduction   float64 `yaml:"nomikai_reduction"`
	SparseThreshold    int     `yaml:"sparse_threshold"`
	ChunkRows          int     `yaml:"chunk_rows"`
	EigenMaxIter       int     `yaml:"eigen_max_iter"`
	DenseFallbackLimit int     `yaml:"dense_fallback_limit"`
	MaxStakeholders    int     `yaml:"max_stakeholders"`
}

// Default returns the documented defaults.
func Default() EngineConfig {
	return EngineConfig{
		MaxSteps:           DefaultMaxSteps,
		Tolerance:          DefaultTolerance,
		NomikaiBoost:       DefaultNomikaiBoost,
		NomikaiReduction:   DefaultNomikaiReduction,
		SparseThreshold:    DefaultSparseThreshold,
		ChunkRows:          DefaultChunkRows,
		EigenMaxIter:       DefaultEigenMaxIter,
		DenseFallbackLimit: DefaultDenseFallbackLimit,
		MaxStakeholders:    DefaultMaxStakeholders,
	}
}

// fieldErrorf tags ErrInvalidConfig with the field name and the bad value.
func fieldErrorf(field string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, value)
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Validate checks every field. The first violation (in declaration order) is
// returned wrapped around ErrInvalidConfig.
//
// DenseFallbackLimit may be 0, which disables the dense fallback entirely.
func (c EngineConfig) Validate() error {
	switch {
	case c.MaxSteps < 1:
		return fieldErrorf("max_steps", c.MaxSteps)
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance <= 0:
		return fieldErrorf("tolerance", c.Tolerance)
	case !unitInterval(c.NomikaiBoost):
		return fieldErrorf("nomikai_boost", c.NomikaiBoost)
	case !unitInterval(c.NomikaiReduction):
		return fieldErrorf("nomikai_reduction", c.NomikaiReduction)
	case c.SparseThreshold < 1:
		return fieldErrorf("sparse_threshold", c.SparseThreshold)
	case c.ChunkRows < 1:
		return fieldErrorf("chunk_rows", c.ChunkRows)
	case c.EigenMaxIter < 1:
		return fieldErrorf("eigen_max_iter", c.EigenMaxIter)
	case c.DenseFallbackLimit < 0:
		return fieldErrorf("dense_fallback_limit", c.DenseFallbackLimit)
	case c.MaxStakeholders < 1:
		return fieldErrorf("max_stakeholders", c.MaxStakeholders)
	}

	return nil
}

// UseSparse reports whether a network of n stakeholders runs on the sparse
// backend.
func (c EngineConfig) UseSparse(n int) bool {
	return n >= c.SparseThreshold
}
