// SPDX-License-Identifier: MIT
package nomikai_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsuyama1990/nemawashi/config"
	"github.com/tsuyama1990/nemawashi/diag"
	"github.com/tsuyama1990/nemawashi/matrix"
	"github.com/tsuyama1990/nemawashi/network"
	"github.com/tsuyama1990/nemawashi/nomikai"
)

const eps = 1e-12

func people(n int) []network.Stakeholder {
	out := make([]network.Stakeholder, n)
	for i := range out {
		out[i] = network.Stakeholder{Name: fmt.Sprintf("S%d", i), Support: 0.5}
	}

	return out
}

func cell(t *testing.T, net *network.Network, i, j int) float64 {
	t.Helper()
	v, err := net.Matrix().At(i, j)
	require.NoError(t, err)

	return v
}

func who(t *testing.T, net *network.Network, i int) network.Stakeholder {
	t.Helper()
	s, ok := net.Stakeholder(i)
	require.True(t, ok)

	return s
}

func TestApply_Dense(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0.6, 0.2, 0.2}, {0.3, 0.4, 0.3}, {0.1, 0.1, 0.8}}
	net, err := network.FromRows(people(3), rows)
	require.NoError(t, err)

	out, err := nomikai.Apply(net, "S0", config.Default())
	require.NoError(t, err)
	require.Equal(t, []string{"S0"}, out.Applied)
	require.Empty(t, out.Diagnostics)

	got := out.Network
	require.InDelta(t, 0.6, who(t, got, 0).Support, eps)
	require.InDelta(t, 0.5, who(t, got, 0).Stubbornness, eps)
	require.InDelta(t, 0.5, cell(t, got, 0, 0), eps)
	require.InDelta(t, 0.25, cell(t, got, 0, 1), eps)
	require.InDelta(t, 0.25, cell(t, got, 0, 2), eps)
	require.InDelta(t, 1.0, got.Matrix().RowSum(0), eps)
	require.Equal(t, matrix.KindDense, got.Kind())

	// Other rows and the input are untouched.
	require.InDelta(t, 0.4, cell(t, got, 1, 1), eps)
	require.InDelta(t, 0.6, cell(t, net, 0, 0), eps)
	require.InDelta(t, 0.5, who(t, net, 0).Support, eps)
}

func TestApply_Clamping(t *testing.T) {
	t.Parallel()

	ss := people(2)
	ss[0].Support = 1
	net, err := network.FromRows(ss, [][]float64{{0.05, 0.95}, {0.5, 0.5}})
	require.NoError(t, err)

	got, err := nomikai.ApplyEvent(net, "S0", config.Default())
	require.NoError(t, err)
	require.Equal(t, 1.0, who(t, got, 0).Support)
	require.Equal(t, 0.0, cell(t, got, 0, 0))
	require.InDelta(t, 1.0, cell(t, got, 0, 1), eps)
	require.Equal(t, 0.0, who(t, got, 0).Stubbornness)
}

func TestApply_MissingTargetIsNoOp(t *testing.T) {
	t.Parallel()

	net, err := network.FromRows(people(2), [][]float64{{0.5, 0.5}, {0.5, 0.5}})
	require.NoError(t, err)

	out, err := nomikai.Apply(net, "ghost", config.Default())
	require.NoError(t, err)
	require.Same(t, net, out.Network)
	require.True(t, out.Network.Equal(net))
	require.Empty(t, out.Applied)
	require.Len(t, out.Diagnostics, 1)
	require.Equal(t, diag.TargetMissing, out.Diagnostics[0].Code)
	require.Equal(t, "ghost", out.Diagnostics[0].Stakeholder)
}

func TestApply_SparseKeepsPattern(t *testing.T) {
	t.Parallel()

	entries := []matrix.Entry{
		{Row: 0, Col: 0, Value: 0.7}, {Row: 0, Col: 2, Value: 0.3},
		{Row: 1, Col: 1, Value: 1},
		{Row: 2, Col: 0, Value: 0.5}, {Row: 2, Col: 2, Value: 0.5},
	}
	net, err := network.FromEntries(people(3), entries)
	require.NoError(t, err)

	got, err := nomikai.ApplyEvent(net, "S0", config.Default())
	require.NoError(t, err)
	require.Equal(t, matrix.KindSparse, got.Kind())
	require.Equal(t, net.Matrix().NNZ(), got.Matrix().NNZ())
	require.InDelta(t, 0.6, cell(t, got, 0, 0), eps)
	require.InDelta(t, 0.4, cell(t, got, 0, 2), eps)
	require.Equal(t, 0.0, cell(t, got, 0, 1), "no edge may be created")
	require.InDelta(t, 0.6, who(t, got, 0).Stubbornness, eps)
}

func TestApply_NoRedistributableEdges(t *testing.T) {
	t.Parallel()

	entries := []matrix.Entry{
		{Row: 0, Col: 0, Value: 0.5}, {Row: 0, Col: 1, Value: 0.5},
		{Row: 1, Col: 1, Value: 1},
	}
	sparse, err := network.FromEntries(people(2), entries)
	require.NoError(t, err)
	single, err := network.FromRows(people(1), [][]float64{{1}})
	require.NoError(t, err)

	for name, net := range map[string]*network.Network{"sparse": sparse, "single dense": single} {
		target := "S1"
		if net.Len() == 1 {
			target = "S0"
		}
		idx, _ := net.IndexOf(target)

		out, err := nomikai.Apply(net, target, config.Default())
		require.NoError(t, err, name)
		require.True(t, diag.Has(out.Diagnostics, diag.NoRedistributableEdges), name)
		require.Equal(t, 1.0, cell(t, out.Network, idx, idx), name)
		require.Equal(t, 1.0, who(t, out.Network, idx).Stubbornness, name)
		require.InDelta(t, 0.6, who(t, out.Network, idx).Support, eps, name)
	}
}

func TestApplyEvents_Sequential(t *testing.T) {
	t.Parallel()

	net, err := network.FromRows(people(2), [][]float64{{0.6, 0.4}, {0.5, 0.5}})
	require.NoError(t, err)

	out, err := nomikai.ApplyEvents(net, []string{"S0", "ghost", "S0"}, config.Default())
	require.NoError(t, err)
	require.Equal(t, []string{"S0", "S0"}, out.Applied)
	require.True(t, diag.Has(out.Diagnostics, diag.TargetMissing))
	require.InDelta(t, 0.68, who(t, out.Network, 0).Support, eps)
	require.InDelta(t, 0.4, cell(t, out.Network, 0, 0), eps)
	require.InDelta(t, 0.6, cell(t, out.Network, 0, 1), eps)

	none, err := nomikai.ApplyEvents(net, nil, config.Default())
	require.NoError(t, err)
	require.Same(t, net, none.Network)
}

func TestApply_PreservesInvariants(t *testing.T) {
	t.Parallel()

	const n = 12
	rng := rand.New(rand.NewSource(3))
	ss := people(n)
	rows := make([][]float64, n)
	for i := range rows {
		ss[i].Support = rng.Float64()
		rows[i] = make([]float64, n)
		var sum float64
		for j := range rows[i] {
			rows[i][j] = rng.Float64()
			sum += rows[i][j]
		}
		for j := range rows[i] {
			rows[i][j] /= sum
		}
	}
	net, err := network.FromRows(ss, rows)
	require.NoError(t, err)
	cfg := config.Default()

	for i := 0; i < n; i++ {
		before := who(t, net, i)
		got, err := nomikai.ApplyEvent(net, before.Name, cfg)
		require.NoError(t, err)

		require.NoError(t, matrix.ValidateStochastic(got.Matrix(), cfg.Tolerance))
		require.Greater(t, who(t, got, i).Support, before.Support)
		require.Less(t, cell(t, got, i, i), cell(t, net, i, i))
		require.Equal(t, cell(t, got, i, i), who(t, got, i).Stubbornness)
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	_, err := nomikai.Apply(nil, "S0", config.Default())
	require.ErrorIs(t, err, network.ErrNilNetwork)
	_, err = nomikai.ApplyEvents(nil, []string{"S0"}, config.Default())
	require.ErrorIs(t, err, network.ErrNilNetwork)

	net, err := network.FromRows(people(1), [][]float64{{1}})
	require.NoError(t, err)
	bad := config.Default()
	bad.NomikaiBoost = 2
	_, err = nomikai.ApplyEvent(net, "S0", bad)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
