// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/tsuyama1990/nemawashi/matrix"
)

// Network-level sentinels. All of them belong to the matrix.ErrValidation
// family: they are deterministic input defects, never retried.
var (
	// ErrInvalidStakeholder signals a stakeholder outside its bounds.
	ErrInvalidStakeholder = fmt.Errorf("%w: invalid stakeholder", matrix.ErrValidation)

	// ErrDuplicateName signals two stakeholders sharing a name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate stakeholder name", matrix.ErrValidation)

	// ErrTooLarge signals a network above the configured stakeholder cap.
	ErrTooLarge = fmt.Errorf("%w: network exceeds stakeholder limit", matrix.ErrValidation)
)

// ErrNilNetwork signals a nil *Network handed to an engine operation.
var ErrNilNetwork = fmt.Errorf("%w: nil network", matrix.ErrValidation)
