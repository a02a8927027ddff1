package noncon

import (
	"math"
)

// SymmetryContributions evaluates the linear functionals underlying the
// energy model for a full sector assignment nu: the symmetry-block sum s0
// and the per-clique sums si. Each term contributes its real coefficient,
// corrected by the reconstruction sign and by one factor of −1 per selected
// generator assigned −1.
//
// Errors: ErrVectorLength, ErrBadEigenvalue.
// Complexity: O(terms·|G|).
func (e *Operator) SymmetryContributions(nu []int) (s0 float64, si []float64, err error) {
	if err := e.validateNu(nu); err != nil {
		return 0, nil, err
	}
	nuF := make([]float64, len(nu))
	for i, v := range nu {
		nuF[i] = float64(v)
	}
	s0, si = e.contributions(nuF)
	return s0, si, nil
}

// Energy is the classical noncontextual objective s0(nu) − ‖s(nu)‖₂. The
// norm term is the analytic minimum of the clique contribution over all
// unit-norm amplitude vectors; the minimizing amplitudes are recovered
// afterwards as the normalized s-vector.
//
// Errors: ErrVectorLength, ErrBadEigenvalue.
func (e *Operator) Energy(nu []int) (float64, error) {
	s0, si, err := e.SymmetryContributions(nu)
	if err != nil {
		return 0, err
	}
	return s0 - norm2(si), nil
}

// contributions is the unvalidated evaluation core, shared with the
// continuous relaxation. For ±1 inputs the product over a term's selected
// generators equals (−1)^mismatch; for continuous inputs it is the natural
// multilinear relaxation of the same functional.
func (e *Operator) contributions(nu []float64) (s0 float64, si []float64) {
	si = make([]float64, e.NCliques())
	for t := 0; t < e.sum.NTerms(); t++ {
		factor := e.signs[t]
		for g, set := range e.gIdx[t] {
			if set {
				factor *= nu[g]
			}
		}
		v := real(e.sum.Coeff(t)) * factor
		if e.maskS0[t] {
			s0 += v
			continue
		}
		for i := range e.maskCi {
			if e.maskCi[i][t] {
				si[i] += v
			}
		}
	}
	return s0, si
}

func norm2(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
