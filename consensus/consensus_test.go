// SPDX-License-Identifier: MIT
package consensus_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/consensus"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
)

// people builds stakeholders S0..S{n-1} with the given supports.
func people(supports ...float64) []network.Stakeholder {
	out := make([]network.Stakeholder, len(supports))
	for i, s := range supports {
		out[i] = network.Stakeholder{Name: fmt.Sprintf("S%d", i), Support: s}
	}

	return out
}

func mustRows(t *testing.T, supports []float64, rows [][]float64) *network.Network {
	t.Helper()
	net, err := network.FromRows(people(supports...), rows)
	require.NoError(t, err)

	return net
}

// cycleRows is the ring i → i (0.5), i → i+1 (0.5).
func cycleRows(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 0.5
		rows[i][(i+1)%n] = 0.5
	}

	return rows
}

// randomStochastic draws a row-stochastic matrix with roughly density share
// of non-zero cells per row (the diagonal is always set).
func randomStochastic(rng *rand.Rand, n int, density float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		var sum float64
		for j := range rows[i] {
			if j == i || rng.Float64() < density {
				rows[i][j] = rng.Float64() + 0.01
				sum += rows[i][j]
			}
		}
		for j := range rows[i] {
			rows[i][j] /= sum
		}
	}

	return rows
}

func TestSolve_SymmetricPair(t *testing.T) {
	t.Parallel()

	net := mustRows(t, []float64{0, 1}, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
	res, err := consensus.Run(net, config.Default())
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, 2, res.Steps)
	require.InDelta(t, 0.5, res.Opinions["S0"], config.DefaultTolerance)
	require.InDelta(t, 0.5, res.Opinions["S1"], config.DefaultTolerance)
	require.Equal(t, matrix.KindDense, res.Backend)
	require.Empty(t, res.Diagnostics)
}

func TestSolve_ZeroRowKeepsOpinion(t *testing.T) {
	t.Parallel()

	net := mustRows(t, []float64{0.37}, [][]float64{{0}})
	res, err := consensus.Run(net, config.Default())
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"S0": 0.37}, res.Opinions)
	require.True(t, res.Converged)
	require.True(t, diag.Has(res.Diagnostics, diag.ZeroRowSelfLoop))
	require.Equal(t, 0, res.Diagnostics[0].Index)
}

func TestSolve_StubbornFinanceDominates(t *testing.T) {
	t.Parallel()

	supports := []float64{0.2, 0.8}
	net := mustRows(t, supports, [][]float64{{0.9, 0.1}, {0.5, 0.5}})
	cfg, err := config.New(config.WithMaxSteps(15))
	require.NoError(t, err)

	op, err := consensus.Solve(net, cfg)
	require.NoError(t, err)
	require.Len(t, op, 2)
	require.Greater(t, op["S0"], 0.2)
	require.Less(t, op["S1"], 0.6)

	// With enough steps both approach the stationary mix 5/6·0.2 + 1/6·0.8 = 0.3.
	op, err = consensus.Solve(net, config.Default())
	require.NoError(t, err)
	require.InDelta(t, 0.3, op["S0"], 1e-5)
	require.InDelta(t, 0.3, op["S1"], 1e-5)
}

func TestSolve_NonConvergenceIsBestEffort(t *testing.T) {
	t.Parallel()

	net := mustRows(t, []float64{0, 1}, [][]float64{{0, 1}, {1, 0}})
	cfg, err := config.New(config.WithMaxSteps(3))
	require.NoError(t, err)

	res, err := consensus.Run(net, cfg)
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 3, res.Steps)
	require.Equal(t, []float64{1, 0}, res.Vector, "the last computed vector is returned")
	require.True(t, diag.Has(res.Diagnostics, diag.NotConverged))
}

func TestSolve_EmptyNetwork(t *testing.T) {
	t.Parallel()

	net, err := network.FromRows(nil, nil)
	require.NoError(t, err)
	op, err := consensus.Solve(net, config.Default())
	require.NoError(t, err)
	require.NotNil(t, op)
	require.Empty(t, op)

	res, err := consensus.RunConnected(net, config.Default())
	require.NoError(t, err)
	require.Empty(t, res.Opinions)
}

func TestSolve_DenseSparseEquivalence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	const n = 40
	supports := make([]float64, n)
	for i := range supports {
		supports[i] = rng.Float64()
	}
	rows := randomStochastic(rng, n, 0.1)
	rows[7] = make([]float64, n) // one isolated stakeholder

	dense := mustRows(t, supports, rows)

	var entries []matrix.Entry
	for i, row := range rows {
		for j, v := range row {
			if v != 0 {
				entries = append(entries, matrix.Entry{Row: i, Col: j, Value: v})
			}
		}
	}
	sparse, err := network.FromEntries(people(supports...), entries)
	require.NoError(t, err)

	small := config.Default() // n < threshold → dense backend
	large, err := config.New(config.WithSparseThreshold(10))
	require.NoError(t, err)

	base, err := consensus.Run(dense, small)
	require.NoError(t, err)
	require.Equal(t, matrix.KindDense, base.Backend)

	for name, tc := range map[string]struct {
		net *network.Network
		cfg config.EngineConfig
	}{
		"dense on sparse backend":  {dense, large},
		"sparse on dense backend":  {sparse, small},
		"sparse on sparse backend": {sparse, large},
	} {
		res, err := consensus.Run(tc.net, tc.cfg)
		require.NoError(t, err, name)
		require.InDeltaSlice(t, base.Vector, res.Vector, 1e-12, name)
		require.Equal(t, base.Steps, res.Steps, name)
	}
}

func TestSolve_ChunkSizeInvariance(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	supports := make([]float64, 17)
	for i := range supports {
		supports[i] = rng.Float64()
	}
	net := mustRows(t, supports, randomStochastic(rng, 17, 0.5))

	want, err := consensus.Solve(net, config.Default())
	require.NoError(t, err)
	for _, chunk := range []int{1, 2, 5, 16, 17, 1000} {
		cfg, err := config.New(config.WithChunkRows(chunk))
		require.NoError(t, err)
		got, err := consensus.Solve(net, cfg)
		require.NoError(t, err)
		require.Equal(t, want, got, "chunk=%d", chunk)
	}
}

func TestSolve_OutputsStayInInitialHull(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(15)
		supports := make([]float64, n)
		lo, hi := 1.0, 0.0
		for i := range supports {
			supports[i] = rng.Float64()
			lo = min(lo, supports[i])
			hi = max(hi, supports[i])
		}
		net := mustRows(t, supports, randomStochastic(rng, n, 0.3))

		op, err := consensus.Solve(net, config.Default())
		require.NoError(t, err)
		require.Len(t, op, n)
		for name, v := range op {
			require.GreaterOrEqual(t, v, lo-1e-12, "trial %d %s", trial, name)
			require.LessOrEqual(t, v, hi+1e-12, "trial %d %s", trial, name)
		}
	}
}

func TestSolve_Errors(t *testing.T) {
	t.Parallel()

	net := mustRows(t, []float64{0.1, 0.9}, [][]float64{{1, 0}, {0, 1}})

	_, err := consensus.Solve(nil, config.Default())
	require.ErrorIs(t, err, network.ErrNilNetwork)

	bad := config.Default()
	bad.MaxSteps = 0
	_, err = consensus.Solve(net, bad)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	tiny, err := config.New(config.WithMaxStakeholders(1))
	require.NoError(t, err)
	_, err = consensus.Solve(net, tiny)
	require.ErrorIs(t, err, network.ErrTooLarge)

	// Built with a loose tolerance, re-checked with the engine's strict one.
	loose, err := network.FromRows(people(0.1, 0.9), [][]float64{{0.9, 0.1001}, {0, 1}}, network.WithTolerance(1e-3))
	require.NoError(t, err)
	_, err = consensus.Solve(loose, config.Default())
	require.ErrorIs(t, err, matrix.ErrNotStochastic)
	require.ErrorIs(t, err, matrix.ErrValidation)
}

func TestRunConnected(t *testing.T) {
	t.Parallel()

	islands := mustRows(t, []float64{0.1, 0.9}, [][]float64{{1, 0}, {0, 1}})
	_, err := consensus.RunConnected(islands, config.Default())
	require.ErrorIs(t, err, matrix.ErrDisconnectedGraph)

	// The plain solver handles each component independently.
	op, err := consensus.Solve(islands, config.Default())
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"S0": 0.1, "S1": 0.9}, op)

	ring := mustRows(t, []float64{0, 0.5, 1, 0.5}, cycleRows(4))
	res, err := consensus.RunConnected(ring, config.Default())
	require.NoError(t, err)
	require.True(t, res.Converged)
	for _, v := range res.Vector {
		require.InDelta(t, 0.5, v, 1e-5)
	}
}
