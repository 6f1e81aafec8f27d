// SPDX-License-Identifier: MIT
package diag_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsuyama1990/nemawashi/diag"
)

func TestDiagnostic_Rendering(t *testing.T) {
	t.Parallel()

	d := diag.ForStakeholder(diag.TargetMissing, "Finance", 3, "no stakeholder named %q", "Finance")
	require.Equal(t, `target_missing[Finance]: no stakeholder named "Finance"`, d.String())

	g := diag.New(diag.NotConverged, "stopped after %d steps", 15)
	require.Equal(t, diag.NoIndex, g.Index)
	require.Equal(t, "not_converged: stopped after 15 steps", g.String())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Warn("diagnostic", "diag", d, "other", g)
	out := buf.String()
	require.Contains(t, out, "diag.code=target_missing")
	require.Contains(t, out, "diag.stakeholder=Finance")
	require.Contains(t, out, "diag.index=3")
	require.Contains(t, out, "other.code=not_converged")
	require.NotContains(t, out, "other.index")

	require.True(t, diag.Has([]diag.Diagnostic{g, d}, diag.TargetMissing))
	require.False(t, diag.Has(nil, diag.EigenDegraded))
}
