// Package partition reduces a pairwise-anticommuting Pauli operator to a
// single term through an explicit unitary, a technique known as unitary
// partitioning.
//
// Given A = Σ βᵢ Pᵢ with real βᵢ and {Pᵢ, Pⱼ} = 0 for i ≠ j, the package
// derives a recipe transforming A into γ·Ps, where γ = ‖β‖₂ and Ps is a
// designated target term. Two constructions are provided:
//
//	• SeqRot — an ordered sequence of two-term Pauli rotations, each folding
//	  one partner amplitude into the target
//	• LCU — a single rotation operator R (a linear combination of unitaries)
//	  with R·A·R† = γ·Ps
//
// Conjugate applies any rotation operator to any operator entirely in the
// symplectic representation, term pair by term pair, without dense matrices.
//
// Every UnitaryPartitioning call derives a fresh recipe on a copy of the
// input; no state carries across target choices. Non-fatal numeric
// conditions (imaginary coefficient residue, a zero leading amplitude at a
// rotation step) are reported as Warning values on the recipe rather than
// errors.
package partition
