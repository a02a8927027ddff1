package cliquecover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pauliverse/noncontext/cliquecover"
)

func adjFrom(n int, edges [][2]int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		adj[e[0]][e[1]] = true
		adj[e[1]][e[0]] = true
	}
	return adj
}

func TestCover_DisjointCliques(t *testing.T) {
	// {0,1,2} complete, {3,4} complete, 5 isolated.
	adj := adjFrom(6, [][2]int{{0, 1}, {0, 2}, {1, 2}, {3, 4}})
	blocks, err := cliquecover.Cover(adj)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5}}, blocks)
}

func TestCover_PartitionIsExhaustiveAndCliques(t *testing.T) {
	// A path 0-1-2-3: not a disjoint clique union; cover must still return
	// a valid partition whose blocks are genuine cliques.
	adj := adjFrom(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	blocks, err := cliquecover.Cover(adj)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, b := range blocks {
		for _, v := range b {
			require.False(t, seen[v], "vertex %d assigned twice", v)
			seen[v] = true
		}
		for i := 0; i < len(b); i++ {
			for j := i + 1; j < len(b); j++ {
				require.True(t, adj[b[i]][b[j]], "block %v is not a clique", b)
			}
		}
	}
	require.Len(t, seen, 4)
}

func TestCover_Deterministic(t *testing.T) {
	adj := adjFrom(5, [][2]int{{0, 2}, {2, 4}, {1, 3}})
	a, err := cliquecover.Cover(adj)
	require.NoError(t, err)
	b, err := cliquecover.Cover(adj)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestCover_Validation(t *testing.T) {
	_, err := cliquecover.Cover([][]bool{{true, false}})
	require.ErrorIs(t, err, cliquecover.ErrNonSquare)

	bad := adjFrom(2, nil)
	bad[0][1] = true
	_, err = cliquecover.Cover(bad)
	require.ErrorIs(t, err, cliquecover.ErrAsymmetric)

	blocks, err := cliquecover.Cover(nil)
	require.NoError(t, err)
	require.Nil(t, blocks)
}
