// SPDX-License-Identifier: MIT

// Package diag carries soft diagnostics: observations the engine records when
// an operation still returns a defined value (unchanged, partial or
// best-effort) rather than an error.
//
// Engine packages only collect diagnostics; the engine facade decides how to
// log them. Diagnostic implements slog.LogValuer so a single attribute
// renders as a structured group.
package diag

import (
	"fmt"
	"log/slog"
)

// Code identifies the kind of soft diagnostic.
type Code string

const (
	// NotConverged: the solver exhausted max_steps; the last vector is returned.
	NotConverged Code = "not_converged"

	// ZeroRowSelfLoop: an all-zero row was read as a unit self-loop.
	ZeroRowSelfLoop Code = "zero_row_self_loop"

	// TargetMissing: the nomikai target is not in the network; it is returned unchanged.
	TargetMissing Code = "target_missing"

	// NoRedistributableEdges: the target row has nowhere to move self-weight;
	// the reduction was reverted.
	NoRedistributableEdges Code = "no_redistributable_edges"

	// EigenDenseFallback: the sparse eigensolver failed and the dense path was used.
	EigenDenseFallback Code = "eigen_dense_fallback"

	// EigenDegraded: no centrality could be computed; an all-zero vector is returned.
	EigenDegraded Code = "eigen_degraded"
)

// NoIndex marks a diagnostic that is not about a single stakeholder.
const NoIndex = -1

// Diagnostic is one soft observation.
type Diagnostic struct {
	Code        Code
	Message     string
	Stakeholder string // empty when not about a single stakeholder
	Index       int    // NoIndex when not about a single stakeholder
}

// New builds a network-wide diagnostic.
func New(code Code, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Index: NoIndex}
}

// ForStakeholder builds a diagnostic about the stakeholder at index.
func ForStakeholder(code Code, name string, index int, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Stakeholder: name, Index: index}
}

// String renders "code: message" with the stakeholder when present.
func (d Diagnostic) String() string {
	if d.Stakeholder != "" {
		return fmt.Sprintf("%s[%s]: %s", d.Code, d.Stakeholder, d.Message)
	}

	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(d.Code)),
		slog.String("message", d.Message),
	}
	if d.Stakeholder != "" {
		attrs = append(attrs, slog.String("stakeholder", d.Stakeholder))
	}
	if d.Index != NoIndex {
		attrs = append(attrs, slog.Int("index", d.Index))
	}

	return slog.GroupValue(attrs...)
}

// Has reports whether list contains a diagnostic with code.
func Has(list []Diagnostic, code Code) bool {
	for _, d := range list {
		if d.Code == code {
			return true
		}
	}

	return false
}
