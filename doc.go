// Package noncontext is an in-memory toolkit for carving classically
// solvable structure out of quantum Hamiltonians — from symplectic Pauli
// algebra up to unitary partitioning.
//
// 🚀 What is noncontext?
//
//	A deterministic, zero-I/O library that brings together:
//		• Pauli primitives: symplectic terms, products with exact phase bookkeeping
//		• Commutation structure: termwise tests & boolean adjacency matrices
//		• Noncontextuality: global and incremental structure checks
//		• Extraction: diagonal, greedy, budgeted repeated-sweep & basis strategies
//		• Decomposition: symmetry generators + anticommuting clique cover
//		• Classical solving: parallel brute force, binary relaxation, spin models
//		• Unitary partitioning: sequence-of-rotations and LCU reductions
//
// ✨ Why choose noncontext?
//
//   - Exact sign/phase discipline – the Jordan-product bookkeeping is tested
//   - Deterministic – seeded randomness only, stable tie-breaks everywhere
//   - Pure Go – no cgo, no hidden deps
//   - Strict sentinels – every failure mode is a named, errors.Is-able value
//
// Under the hood, everything is organized into five subpackages:
//
//	pauli/       — symplectic Pauli sums, products, commutation, reconstruction
//	cliquecover/ — vertex partition of a relation graph into cliques
//	spinopt/     — polynomial/quadratic spin optimization (exact & annealed)
//	noncon/      — noncontextual operators: analysis, extraction, energy, solving
//	partition/   — anticommuting cliques, rotation recipes, operator conjugation
//
// Quick sketch: a noncontextual Hamiltonian splits as
//
//	H  =  (symmetry block)  +  C₁ ∪ C₂ ∪ … ∪ C_M
//
// where the symmetry block commutes universally and each clique Cᵢ is
// pairwise anticommuting. Its ground state is found by a classical search
// over ±1 symmetry sectors, and each clique collapses to a single measurable
// term under an explicit unitary.
//
//	go get github.com/pauliverse/noncontext
package noncontext
