// Package cliquecover partitions the vertices of an undirected relation
// graph into cliques.
//
// The input is a boolean adjacency matrix whose true entries mark pairs
// related under the caller's chosen edge relation (for noncontextual
// decomposition: strict termwise anticommutation). The output is a vertex
// partition such that every pair inside a block is related.
//
// Clique cover is NP-hard in general; this package implements the standard
// reduction to graph coloring of the complement, solved with a greedy
// largest-degree-first heuristic. The heuristic is exact on the inputs the
// decomposition layer produces (disjoint unions of cliques), and
// deterministic everywhere: ties break on ascending vertex index.
package cliquecover
