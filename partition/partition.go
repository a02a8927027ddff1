package partition

import (
	"math"

	"github.com/pauliverse/noncontext/pauli"
)

// UnitaryPartitioning derives a fresh recipe collapsing op onto a single
// term. target selects the reduced term's index; pass a negative value to
// default to LeastDenseIndex. The target is swapped to position 0 on a copy
// before processing, so op itself is never reordered.
//
// Contracts:
//   - the returned Normalized operator has unit coefficient 2-norm and the
//     target at index 0
//   - for multi-term inputs, applying the SeqRot sequence (or conjugating by
//     the LCU operator R) to op yields γ·Ps up to numerical tolerance
//
// Errors: ErrUnknownMethod, ErrTargetRange, ErrZeroNorm.
// Complexity: O(terms²·n) for SeqRot, O(terms·n) for LCU.
func UnitaryPartitioning(op *AntiCommutingOp, target int, method Method) (*Recipe, error) {
	switch method {
	case SeqRot, LCU:
	default:
		return nil, ErrUnknownMethod
	}
	if target >= op.NTerms() {
		return nil, ErrTargetRange
	}
	if target < 0 {
		target = op.LeastDenseIndex()
	}
	gamma := op.Gamma()
	if gamma == 0 {
		return nil, ErrZeroNorm
	}

	// Swap the target into position 0 on a copy and normalize.
	order := make([]int, op.NTerms())
	for i := range order {
		order[i] = i
	}
	order[0], order[target] = order[target], order[0]
	normalized, err := op.sum.Reordered(order)
	if err != nil {
		return nil, err
	}
	for t := 0; t < normalized.NTerms(); t++ {
		normalized.SetCoeff(t, complex(real(normalized.Coeff(t))/gamma, 0))
	}

	rec := &Recipe{
		Method:     method,
		Gamma:      gamma,
		Normalized: normalized,
		Warnings:   append([]Warning(nil), op.warnings...),
	}

	if normalized.NTerms() == 1 {
		// Degenerate clique: already a single term, nothing to rotate.
		rec.Ps = normalized.Clone()
		return rec, nil
	}

	switch method {
	case SeqRot:
		err = rec.buildSeqRot()
	case LCU:
		err = rec.buildLCU()
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// buildSeqRot folds partner amplitudes into the target one rotation at a
// time. At each step the partner is the term at index 1; the rotation
// generator is the signed product −i·P₀·P₁, recorded with a positive unit
// coefficient by negating the angle when the product sign is negative.
func (r *Recipe) buildSeqRot() error {
	cur := r.Normalized.Clone()
	for cur.NTerms() > 1 {
		b0 := real(cur.Coeff(0))
		bk := real(cur.Coeff(1))
		if b0 == 0 {
			r.Warnings = append(r.Warnings, WarnZeroLeading)
		}
		var theta float64
		if b0 == 0 && bk == 0 {
			// Degenerate pair: the fold is a no-op, keep the angle finite.
			theta = 0
		} else {
			theta = math.Atan(bk / b0)
			if b0 < 0 {
				theta += math.Pi
			}
		}

		x0, z0 := cur.TermBits(0)
		xk, zk := cur.TermBits(1)
		xg, zg, ph := pauli.MulTerms(x0, z0, xk, zk)
		// P₀ and P₁ anticommute, so −i·phase is exactly ±1.
		if real(-1i*ph) < 0 {
			theta = -theta
		}
		gen := pauli.Empty(cur.NQubits())
		if err := gen.AppendTerm(xg, zg, 1); err != nil {
			return err
		}
		r.Rotations = append(r.Rotations, Rotation{Generator: gen, Angle: theta})

		// The rotation sends β₀ ← √(β₀²+β₁²) and zeroes β₁; drop row 1.
		keep := make([]int, 0, cur.NTerms()-1)
		keep = append(keep, 0)
		for t := 2; t < cur.NTerms(); t++ {
			keep = append(keep, t)
		}
		next, err := cur.Select(keep)
		if err != nil {
			return err
		}
		next.SetCoeff(0, complex(math.Hypot(b0, bk), 0))
		cur = next
	}
	ps := cur.Clone()
	ps.SetCoeff(0, 1)
	r.Ps = ps
	return nil
}

// buildLCU assembles the single rotation operator
//
//	R = cos(α/2)·I − sin(α/2)·Σ δ_k·(P_k·Ps)
//
// over the unit-normalized residual amplitudes δ_k, with α = arccos(β₀)
// (already in [0,π], so sin(α/2) ≥ 0).
func (r *Recipe) buildLCU() error {
	norm := r.Normalized
	n := norm.NQubits()
	b0 := real(norm.Coeff(0))
	if b0 > 1 {
		b0 = 1
	} else if b0 < -1 {
		b0 = -1
	}
	alpha := math.Acos(b0)
	cosHalf := math.Cos(alpha / 2)
	sinHalf := math.Sin(alpha / 2)

	var omega float64
	for t := 1; t < norm.NTerms(); t++ {
		b := real(norm.Coeff(t))
		omega += b * b
	}
	omega = math.Sqrt(omega)
	if omega == 0 {
		return ErrZeroNorm
	}

	ps, err := norm.Term(0)
	if err != nil {
		return err
	}
	ps.SetCoeff(0, 1)
	xs, zs := ps.TermBits(0)

	rot := pauli.Identity(n, complex(cosHalf, 0))
	for t := 1; t < norm.NTerms(); t++ {
		delta := real(norm.Coeff(t)) / omega
		xk, zk := norm.TermBits(t)
		xp, zp, ph := pauli.MulTerms(xk, zk, xs, zs)
		if err := rot.AppendTerm(xp, zp, complex(-sinHalf*delta, 0)*ph); err != nil {
			return err
		}
	}
	r.R = rot.Cleanup(pauli.DefaultTol)
	r.Ps = ps
	return nil
}

// ApplyRotations conjugates op by the rotation sequence, in order. Each step
// maps a term P to cosθ·P + i·sinθ·X·P when P anticommutes with the
// generator X and leaves it unchanged otherwise. Applying the sequence
// reversed with negated angles undoes the transformation.
//
// Errors: ErrEmptyClique on a nil op, pauli.ErrQubitMismatch.
// Complexity: O(len(rotations)·terms·n·log terms).
func ApplyRotations(op *pauli.PauliSum, rotations []Rotation) (*pauli.PauliSum, error) {
	if op == nil {
		return nil, ErrEmptyClique
	}
	cur := op.Clone()
	for _, rot := range rotations {
		if rot.Generator.NQubits() != cur.NQubits() {
			return nil, pauli.ErrQubitMismatch
		}
		xg, zg := rot.Generator.TermBits(0)
		cg := rot.Generator.Coeff(0)
		cosT := complex(math.Cos(rot.Angle), 0)
		sinT := complex(math.Sin(rot.Angle), 0)

		next := pauli.Empty(cur.NQubits())
		for t := 0; t < cur.NTerms(); t++ {
			xt, zt := cur.TermBits(t)
			ct := cur.Coeff(t)
			if pauli.TermsCommute(xg, zg, xt, zt) {
				if err := next.AppendTerm(xt, zt, ct); err != nil {
					return nil, err
				}
				continue
			}
			xp, zp, ph := pauli.MulTerms(xg, zg, xt, zt)
			if err := next.AppendTerm(xt, zt, cosT*ct); err != nil {
				return nil, err
			}
			if err := next.AppendTerm(xp, zp, 1i*sinT*cg*ph*ct); err != nil {
				return nil, err
			}
		}
		cur = next.Cleanup(pauli.DefaultTol)
	}
	return cur, nil
}
