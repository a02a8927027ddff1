package cliquecover

import (
	"errors"
	"sort"
)

var (
	// ErrNonSquare is returned when the adjacency matrix is not square.
	ErrNonSquare = errors.New("cliquecover: adjacency matrix is not square")

	// ErrAsymmetric is returned when adj[i][j] != adj[j][i].
	ErrAsymmetric = errors.New("cliquecover: adjacency matrix is not symmetric")
)

// Cover partitions vertices 0..n−1 into cliques of the relation graph adj.
// Diagonal entries are ignored (a vertex is trivially related to itself).
//
// Algorithm: color the complement graph greedily, scanning vertices in
// descending complement-degree order (ties on ascending index); vertices of
// one color class form an independent set of the complement, i.e. a clique
// of adj. Blocks are returned ordered by their smallest vertex, each block
// sorted ascending.
//
// Contracts:
//   - adj must be square and symmetric; n == 0 yields an empty partition.
//
// Errors: ErrNonSquare, ErrAsymmetric.
// Complexity: O(n²) time, O(n) extra space.
func Cover(adj [][]bool) ([][]int, error) {
	n := len(adj)
	for i := 0; i < n; i++ {
		if len(adj[i]) != n {
			return nil, ErrNonSquare
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if adj[i][j] != adj[j][i] {
				return nil, ErrAsymmetric
			}
		}
	}
	if n == 0 {
		return nil, nil
	}

	// Complement degree = number of unrelated distinct vertices.
	deg := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j != i && !adj[i][j] {
				deg[i]++
			}
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if deg[order[a]] != deg[order[b]] {
			return deg[order[a]] > deg[order[b]]
		}
		return order[a] < order[b]
	})

	const unset = -1
	color := make([]int, n)
	for i := range color {
		color[i] = unset
	}
	nColors := 0
	taken := make([]bool, n) // scratch: colors blocked for the current vertex
	for _, v := range order {
		for c := 0; c < nColors; c++ {
			taken[c] = false
		}
		// A color is blocked when some already-colored vertex of that class
		// is unrelated to v in adj (adjacent in the complement).
		for u := 0; u < n; u++ {
			if u != v && color[u] != unset && !adj[u][v] {
				taken[color[u]] = true
			}
		}
		assigned := unset
		for c := 0; c < nColors; c++ {
			if !taken[c] {
				assigned = c
				break
			}
		}
		if assigned == unset {
			assigned = nColors
			nColors++
		}
		color[v] = assigned
	}

	blocks := make([][]int, nColors)
	for v := 0; v < n; v++ {
		blocks[color[v]] = append(blocks[color[v]], v)
	}
	// Vertices were appended in ascending order; order blocks by their head.
	sort.Slice(blocks, func(a, b int) bool { return blocks[a][0] < blocks[b][0] })
	return blocks, nil
}
