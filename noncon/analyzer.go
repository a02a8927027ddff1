package noncon

import (
	"github.com/pauliverse/noncontext/pauli"
)

// CheckAdjacency reports whether a boolean commutation adjacency matrix has
// noncontextual structure. Rows that are all-true (universally commuting
// terms) are set aside; the remaining view is noncontextual exactly when its
// distinct rows assign every column to one class: each column must be true
// in exactly one distinct row, which forces the non-universal terms into
// internally commuting, mutually anticommuting classes.
//
// The matrix is assumed square and symmetric with a true diagonal, as
// produced by pauli.(*PauliSum).Adjacency.
// Complexity: O(terms²).
func CheckAdjacency(adj [][]bool) bool {
	n := len(adj)
	nonUniversal := make([]int, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !adj[i][j] {
				nonUniversal = append(nonUniversal, i)
				break
			}
		}
	}
	if len(nonUniversal) == 0 {
		return true
	}

	// Distinct rows of the non-universal view.
	seen := make(map[string][]bool, len(nonUniversal))
	for _, i := range nonUniversal {
		row := make([]bool, len(nonUniversal))
		key := make([]byte, len(nonUniversal))
		for c, j := range nonUniversal {
			row[c] = adj[i][j]
			if row[c] {
				key[c] = 1
			}
		}
		seen[string(key)] = row
	}

	for c := range nonUniversal {
		count := 0
		for _, row := range seen {
			if row[c] {
				count++
			}
		}
		if count != 1 {
			return false
		}
	}
	return true
}

// CheckPadded extends an existing adjacency matrix by one candidate term and
// re-checks the noncontextuality condition without recomputing the original
// commutation entries. candidate[i] must report whether the new term
// commutes with existing term i (length == len(adj)); the self-entry is
// supplied internally.
// Complexity: O(terms²).
func CheckPadded(adj [][]bool, candidate []bool) bool {
	return CheckAdjacency(padAdjacency(adj, candidate))
}

// IsNoncontextual reports whether op admits the noncontextual commutation
// structure.
// Complexity: O(terms²·n).
func IsNoncontextual(op *pauli.PauliSum) bool {
	if op == nil {
		return false
	}
	return CheckAdjacency(op.Adjacency())
}
