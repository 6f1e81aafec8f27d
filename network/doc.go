// SPDX-License-Identifier: MIT

// Package network defines the immutable value objects the engine operates on:
// Stakeholder (name, support, stubbornness) and Network (an ordered list of
// stakeholders plus the N×N influence matrix).
//
// A *Network is always valid: New runs the full matrix validator and the
// stakeholder checks, and clones every input so later writes by the caller
// cannot reach it. Every engine operation either reads a Network or returns
// a brand-new one; nothing mutates one in place, so a Network may be shared
// freely across goroutines.
package network
