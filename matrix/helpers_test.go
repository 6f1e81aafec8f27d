// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsuyama1990/nemawashi/matrix"
)

// mustDense builds a Dense from a literal and fails the test on error.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// mustSparse builds the Sparse form holding the non-zero cells of rows.
func mustSparse(t *testing.T, rows [][]float64) *matrix.Sparse {
	t.Helper()
	s, err := matrix.ToSparse(mustDense(t, rows))
	require.NoError(t, err)

	return s
}

// bothForms returns the Dense and Sparse encodings of the same logical matrix.
func bothForms(t *testing.T, rows [][]float64) map[string]matrix.Matrix {
	t.Helper()

	return map[string]matrix.Matrix{
		"dense":  mustDense(t, rows),
		"sparse": mustSparse(t, rows),
	}
}
