// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted stakeholder name, in runes.
const MaxNameLength = 100

// Stakeholder is one participant of the influence network.
//   - Support is the current opinion on the proposal, in [0,1].
//   - Stubbornness mirrors the self-weight W[i,i], in [0,1].
type Stakeholder struct {
	Name         string
	Support      float64
	Stubbornness float64
}

// NewStakeholder builds a Stakeholder and enforces its bounds.
//
// Errors:
//   - ErrInvalidStakeholder (wrapping matrix.ErrValidation) for an empty or
//     over-long name, or a support/stubbornness outside [0,1].
func NewStakeholder(name string, support, stubbornness float64) (Stakeholder, error) {
	s := Stakeholder{Name: name, Support: support, Stubbornness: stubbornness}
	if err := s.Validate(); err != nil {
		return Stakeholder{}, err
	}

	return s, nil
}

// Validate checks the stakeholder's invariants.
func (s Stakeholder) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidStakeholder)
	case utf8.RuneCountInString(s.Name) > MaxNameLength:
		return fmt.Errorf("%w: name %.20q… longer than %d", ErrInvalidStakeholder, s.Name, MaxNameLength)
	case !unit(s.Support):
		return fmt.Errorf("%w: %q support=%v", ErrInvalidStakeholder, s.Name, s.Support)
	case !unit(s.Stubbornness):
		return fmt.Errorf("%w: %q stubbornness=%v", ErrInvalidStakeholder, s.Name, s.Stubbornness)
	}

	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
