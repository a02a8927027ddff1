// Package noncon extracts a classically solvable, noncontextual
// sub-Hamiltonian from a weighted Pauli sum and minimizes its energy.
//
// A Pauli sum is noncontextual when its terms split into a universally
// commuting block plus classes that commute internally and strictly
// anticommute across classes. Such operators are reconstructible under the
// Jordan product from a generating set G ∪ {C₁, …, C_M} where G commutes
// universally and the class representatives Cᵢ pairwise anticommute; their
// ground state is then found by classical optimization over the ±1
// eigenvalue sector of G.
//
// The package provides:
//
//	• the noncontextuality analyzer (global and incremental adjacency checks)
//	• five extraction strategies: Diagonal, DiagonalFirst, Greedy,
//	  RepeatedSweep (wall-clock bounded) and BasisProjection
//	• eager decomposition into symmetry generators and commuting cliques,
//	  with Jordan-product generator reconstruction and sign bookkeeping
//	• the noncontextual energy model s₀(ν) − ‖s(ν)‖₂ over sectors ν ∈ {±1}^|G|
//	• solvers: parallel brute force, deterministic binary relaxation, and
//	  four delegated spin-model modes over a symmetrized surrogate operator
//	• post-solve clique amplitude recovery and unitary partitioning via the
//	  partition package
//
// Construction fails fast: an operator that is contextual, or whose terms
// cannot be reconstructed from the derived generating set, is rejected with
// ErrContextual.
package noncon
