// SPDX-License-Identifier: MIT

// Package nomikai applies the "nomikai" social-event operator to an influence
// network: the target stakeholder becomes more receptive (support boosted
// toward 1) and less self-anchored (self-weight reduced, the difference moved
// onto the other weights of its row).
//
// Every operation returns a new network re-validated through network.New;
// the input is never modified. Dense rows spread the reduction over all N−1
// other columns. Sparse rows spread it only over entries that already exist,
// so an event never creates an edge.
package nomikai
