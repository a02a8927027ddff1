package pauli

// TermsCommute reports whether two symplectic rows commute, i.e. whether the
// symplectic form x1·z2 + z1·x2 vanishes mod 2.
// Complexity: O(n).
func TermsCommute(x1, z1, x2, z2 []bool) bool {
	s := 0
	for q := range x1 {
		if x1[q] && z2[q] {
			s++
		}
		if z1[q] && x2[q] {
			s++
		}
	}
	return s%2 == 0
}

// Commutes reports whether term s of p commutes with term t of other.
func (p *PauliSum) Commutes(s int, other *PauliSum, t int) bool {
	return TermsCommute(p.x[s], p.z[s], other.x[t], other.z[t])
}

// CommutesTermwise returns the boolean commutation matrix of p against
// other: entry (i,j) is true iff term i of p commutes with term j of other.
//
// Errors: ErrQubitMismatch.
// Complexity: O(n_p·n_other·n).
func (p *PauliSum) CommutesTermwise(other *PauliSum) ([][]bool, error) {
	if p.n != other.n {
		return nil, ErrQubitMismatch
	}
	out := make([][]bool, p.NTerms())
	for i := range out {
		out[i] = make([]bool, other.NTerms())
		for j := range out[i] {
			out[i][j] = p.Commutes(i, other, j)
		}
	}
	return out, nil
}

// Adjacency returns the symmetric self-commutation matrix of p. The
// diagonal is always true (every term commutes with itself).
// Complexity: O(terms²·n).
func (p *PauliSum) Adjacency() [][]bool {
	adj, _ := p.CommutesTermwise(p) // qubit counts trivially match
	for i := range adj {
		adj[i][i] = true
	}
	return adj
}

// CommutesUniversally reports, per term, whether it commutes with every
// term of the operator (a row of all-true adjacency).
// Complexity: O(terms²·n).
func (p *PauliSum) CommutesUniversally() []bool {
	adj := p.Adjacency()
	out := make([]bool, len(adj))
	for i, row := range adj {
		all := true
		for _, v := range row {
			if !v {
				all = false
				break
			}
		}
		out[i] = all
	}
	return out
}
