package partition

import (
	"math/cmplx"

	"github.com/pauliverse/noncontext/pauli"
)

// Conjugate computes r·op·r† directly in the symplectic representation.
//
// For every operator term P_a the contributions group by rotation term pair:
//
//	i = j:  |c_i|²·c_a·(−1)^{C_ai}·P_a
//	i < j:  (c_i·c_a·conj(c_j) + (−1)^{C_ai+C_aj+A_ij}·c_j·c_a·conj(c_i))
//	        ·P_i·P_a·P_j
//
// where C_ai = 1 iff P_a anticommutes with rotation term i and A_ij = 1 iff
// rotation terms i, j anticommute. This costs O(n_r²·n_op) term products
// instead of exponential dense conjugation.
//
// Errors: ErrEmptyClique on nil/empty inputs, pauli.ErrQubitMismatch.
func Conjugate(op, r *pauli.PauliSum) (*pauli.PauliSum, error) {
	if op == nil || r == nil || op.NTerms() == 0 || r.NTerms() == 0 {
		return nil, ErrEmptyClique
	}
	if op.NQubits() != r.NQubits() {
		return nil, pauli.ErrQubitMismatch
	}
	n := op.NQubits()
	m := r.NTerms()

	// Precompute the rotation self-anticommutation pattern once.
	rAdj := r.Adjacency()

	out := pauli.Empty(n)
	for a := 0; a < op.NTerms(); a++ {
		xa, za := op.TermBits(a)
		ca := op.Coeff(a)

		anti := make([]bool, m)
		for i := 0; i < m; i++ {
			xi, zi := r.TermBits(i)
			anti[i] = !pauli.TermsCommute(xa, za, xi, zi)
		}

		for i := 0; i < m; i++ {
			ci := r.Coeff(i)
			diag := ci * cmplx.Conj(ci) * ca
			if anti[i] {
				diag = -diag
			}
			if err := out.AppendTerm(xa, za, diag); err != nil {
				return nil, err
			}

			xi, zi := r.TermBits(i)
			xia, zia, phL := pauli.MulTerms(xi, zi, xa, za)
			for j := i + 1; j < m; j++ {
				cj := r.Coeff(j)
				sign := complex(1, 0)
				flips := 0
				if anti[i] {
					flips++
				}
				if anti[j] {
					flips++
				}
				if !rAdj[i][j] {
					flips++
				}
				if flips%2 == 1 {
					sign = -1
				}
				coeff := ci*ca*cmplx.Conj(cj) + sign*cj*ca*cmplx.Conj(ci)

				xj, zj := r.TermBits(j)
				xp, zp, phR := pauli.MulTerms(xia, zia, xj, zj)
				if err := out.AppendTerm(xp, zp, coeff*phL*phR); err != nil {
					return nil, err
				}
			}
		}
	}
	return out.Cleanup(pauli.DefaultTol), nil
}
