// SPDX-License-Identifier: MIT

// Package matrix - weak connectivity over influence edges.
//
// Any strictly positive weight W[i,j] (i≠j) is an undirected edge {i,j};
// self-weights never connect anything. Components are found with a
// disjoint-set forest (path halving + union by rank) in a single pass over
// the stored cells, so Sparse inputs never pay O(n²).

package matrix

// disjointSet is an index-based union-find over 0..n-1.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find returns the root of x, halving the path on the way up.
func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}

	return x
}

// union merges the sets of a and b; the shallower tree is attached below.
func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
}

// Components labels every index with its weakly-connected component.
// Labels are dense (0..count-1) and assigned in order of the smallest index
// of each component, so the output is deterministic.
//
// Returns (nil, 0) for a nil or empty matrix.
// Complexity: Time O(nnz · α(n)), Space O(n).
func Components(m Matrix) (labels []int, count int) {
	if m == nil || m.Size() == 0 {
		return nil, 0
	}

	n := m.Size()
	ds := newDisjointSet(n)
	for i := 0; i < n; i++ {
		row := i
		m.EachInRow(i, func(j int, v float64) {
			if j != row && v > 0 {
				ds.union(row, j)
			}
		})
	}

	labels = make([]int, n)
	byRoot := make(map[int]int, n)
	for i := 0; i < n; i++ {
		root := ds.find(i)
		label, seen := byRoot[root]
		if !seen {
			label = count
			byRoot[root] = label
			count++
		}
		labels[i] = label
	}

	return labels, count
}

// IsWeaklyConnected reports whether m forms exactly one weakly-connected
// component. An empty (or nil) matrix has no component and is reported as
// not connected.
func IsWeaklyConnected(m Matrix) bool {
	_, count := Components(m)

	return count == 1
}

// RequireConnected returns ErrDisconnectedGraph when m has more than one
// weakly-connected component. Empty matrices pass: there is nothing to
// disconnect, and callers short-circuit the empty network before iterating.
func RequireConnected(m Matrix) error {
	if _, count := Components(m); count > 1 {
		return matrixErrorf("RequireConnected", ErrDisconnectedGraph)
	}

	return nil
}
