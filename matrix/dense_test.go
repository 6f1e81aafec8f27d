// SPDX-License-Identifier: MIT
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsuyama1990/nemawashi/matrix"
)

// TestNewDenseFromRows covers square, empty, ragged and non-finite input.
func TestNewDenseFromRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    [][]float64
		wantN   int
		wantErr error
	}{
		{"empty", nil, 0, nil},
		{"1x1", [][]float64{{0}}, 1, nil},
		{"2x2", [][]float64{{0.5, 0.5}, {1, 0}}, 2, nil},
		{"ragged", [][]float64{{1, 0}, {1}}, 0, matrix.ErrDimensionMismatch},
		{"wide", [][]float64{{0.5, 0.25, 0.25}}, 0, matrix.ErrDimensionMismatch},
		{"nan", [][]float64{{math.NaN()}}, 0, matrix.ErrNaNInf},
		{"inf", [][]float64{{0, math.Inf(1)}, {1, 0}}, 0, matrix.ErrNaNInf},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := matrix.NewDenseFromRows(tc.rows)
			if tc.wantErr != nil {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr), "expected errors.Is(%v, %v)", err, tc.wantErr)
				require.Truef(t, errors.Is(err, matrix.ErrValidation), "expected validation family: %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantN, d.Size())
			require.Equal(t, matrix.KindDense, d.Kind())
		})
	}
}

// TestDense_AccessorsAndClone checks At/Set bounds and clone independence.
func TestDense_AccessorsAndClone(t *testing.T) {
	t.Parallel()

	src := [][]float64{{0.25, 0.75}, {0.5, 0.5}}
	d := mustDense(t, src)

	v, err := d.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.75, v)

	_, err = d.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, d.Set(-1, 0, 0.1), matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, d.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	// The literal is copied, never aliased.
	src[0][0] = 0.9
	v, _ = d.At(0, 0)
	require.Equal(t, 0.25, v)

	c := d.Clone()
	require.NoError(t, d.Set(0, 0, 0))
	v, _ = c.At(0, 0)
	require.Equal(t, 0.25, v, "clone must not observe writes to the original")

	require.InDelta(t, 0.75, d.RowSum(0), 1e-15)
	require.InDelta(t, 2.5, d.RowDot(1, []float64{3, 2}), 1e-12)
	require.Equal(t, [][]float64{{0, 0.75}, {0.5, 0.5}}, d.RowsCopy())
	require.Equal(t, "[0, 0.75]\n[0.5, 0.5]\n", d.String())
}
