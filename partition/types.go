package partition

import (
	"errors"
	"math"

	"github.com/pauliverse/noncontext/pauli"
)

var (
	// ErrEmptyClique is returned for a nil or zero-term input operator.
	ErrEmptyClique = errors.New("partition: anticommuting operator has no terms")

	// ErrNotAnticommuting is returned when two distinct terms commute.
	ErrNotAnticommuting = errors.New("partition: terms do not pairwise anticommute")

	// ErrComplexCoeff is returned when a coefficient's imaginary part exceeds
	// CoeffImagTol; partitioning is only defined over real amplitudes.
	ErrComplexCoeff = errors.New("partition: coefficients are not real")

	// ErrZeroNorm is returned when the coefficient vector has zero 2-norm.
	ErrZeroNorm = errors.New("partition: coefficient vector has zero norm")

	// ErrTargetRange is returned for a target index ≥ the term count.
	ErrTargetRange = errors.New("partition: target index out of range")

	// ErrUnknownMethod is returned for a Method outside the closed set.
	ErrUnknownMethod = errors.New("partition: unknown partitioning method")
)

// CoeffImagTol is the largest imaginary magnitude tolerated on an input
// coefficient before FromPauliSum fails with ErrComplexCoeff. Residues above
// pauli.DefaultTol but below this bound only produce WarnImaginaryResidue.
const CoeffImagTol = 1e-6

// Warning is a non-fatal numeric condition recorded during partitioning.
type Warning string

const (
	// WarnImaginaryResidue marks coefficients with a small imaginary part;
	// the computation proceeds on the real parts.
	WarnImaginaryResidue Warning = "partition: imaginary coefficient residue discarded"

	// WarnZeroLeading marks a rotation step whose leading amplitude was
	// exactly zero; the angle saturates at ±π/2.
	WarnZeroLeading Warning = "partition: zero leading amplitude at rotation step"
)

// Method selects the partitioning construction.
type Method int

const (
	// SeqRot derives an ordered sequence of two-term Pauli rotations.
	SeqRot Method = iota

	// LCU derives a single rotation operator as a linear combination of
	// unitaries.
	LCU
)

// Rotation is one step of a sequence-of-rotations recipe: a single-term
// Pauli generator with unit coefficient and the angle to rotate by.
type Rotation struct {
	Generator *pauli.PauliSum
	Angle     float64
}

// Recipe is the outcome of a UnitaryPartitioning call.
type Recipe struct {
	// Method records which construction produced the recipe.
	Method Method

	// Ps is the reduced single-term operator the clique collapses onto.
	// Multi-term inputs always yield coefficient +1; the degenerate
	// single-term case keeps the amplitude's sign.
	Ps *pauli.PauliSum

	// Rotations is the ordered rotation sequence (SeqRot only).
	Rotations []Rotation

	// R is the rotation operator with R·A·R† = γ·Ps (LCU only).
	R *pauli.PauliSum

	// Gamma is the 2-norm of the input coefficient vector.
	Gamma float64

	// Normalized is the unit-norm clique with the target swapped to index 0.
	Normalized *pauli.PauliSum

	// Warnings collects non-fatal numeric conditions hit along the way.
	Warnings []Warning
}

// AntiCommutingOp wraps a PauliSum whose distinct terms pairwise strictly
// anticommute and whose coefficients are real up to CoeffImagTol. The
// invariants are checked once at construction.
type AntiCommutingOp struct {
	sum      *pauli.PauliSum
	warnings []Warning
}

// FromPauliSum validates p and wraps it as an AntiCommutingOp. p is deep
// copied; later mutation of p does not affect the returned operator.
//
// Errors: ErrEmptyClique, ErrNotAnticommuting, ErrComplexCoeff.
// Complexity: O(terms²·n).
func FromPauliSum(p *pauli.PauliSum) (*AntiCommutingOp, error) {
	if p == nil || p.NTerms() == 0 {
		return nil, ErrEmptyClique
	}
	adj := p.Adjacency()
	for i := range adj {
		for j := i + 1; j < len(adj); j++ {
			if adj[i][j] {
				return nil, ErrNotAnticommuting
			}
		}
	}
	op := &AntiCommutingOp{sum: p.Clone()}
	for t := 0; t < p.NTerms(); t++ {
		im := math.Abs(imag(p.Coeff(t)))
		if im > CoeffImagTol {
			return nil, ErrComplexCoeff
		}
		if im > pauli.DefaultTol && len(op.warnings) == 0 {
			op.warnings = append(op.warnings, WarnImaginaryResidue)
		}
	}
	return op, nil
}

// Sum returns a deep copy of the wrapped operator.
func (a *AntiCommutingOp) Sum() *pauli.PauliSum { return a.sum.Clone() }

// NTerms reports the term count.
func (a *AntiCommutingOp) NTerms() int { return a.sum.NTerms() }

// Gamma returns the 2-norm of the real coefficient vector.
func (a *AntiCommutingOp) Gamma() float64 {
	var s float64
	for t := 0; t < a.sum.NTerms(); t++ {
		b := real(a.sum.Coeff(t))
		s += b * b
	}
	return math.Sqrt(s)
}

// LeastDenseIndex returns the index of the term with the fewest non-identity
// positions. Ties break on the smallest big-endian support pattern, then on
// the first occurrence, so the choice is deterministic.
func (a *AntiCommutingOp) LeastDenseIndex() int {
	best := 0
	bestW := a.sum.SupportWeight(0)
	bestKey := supportKey(a.sum, 0)
	for t := 1; t < a.sum.NTerms(); t++ {
		w := a.sum.SupportWeight(t)
		key := supportKey(a.sum, t)
		if w < bestW || (w == bestW && key < bestKey) {
			best, bestW, bestKey = t, w, key
		}
	}
	return best
}

// supportKey packs the support bits (x OR z) so that string comparison
// matches big-endian integer comparison.
func supportKey(p *pauli.PauliSum, t int) string {
	b := make([]byte, p.NQubits())
	for q := 0; q < p.NQubits(); q++ {
		if p.XBit(t, q) || p.ZBit(t, q) {
			b[q] = 1
		}
	}
	return string(b)
}
