// Package spinopt minimizes cost functionals over named spin variables
// s ∈ {−1,+1}.
//
// A Polynomial is a sum of coefficient-weighted monomials over spin
// variables; since s² = 1, monomials are squarefree in canonical form.
// Minimization runs in one of four modes — {brute force, simulated
// annealing} × {polynomial, quadratic} — mirroring the usual
// PUSO/QUSO split of spin optimization backends:
//
//   - polynomial form operates on the model as given;
//   - quadratic form first reduces the degree to ≤ 2 via boolean
//     substitution and Rosenberg pair-collapsing with penalty terms,
//     then solves, then strips the ancilla variables.
//
// The reported objective value is always the original polynomial evaluated
// at the returned assignment, so quadratization penalties never leak into
// results. Variable enumeration order is the caller's insertion order — the
// contract callers rely on when mapping solutions back to generator indices.
//
// Determinism: annealing uses only the seeded generator threaded through
// Options; identical seeds reproduce identical runs.
package spinopt
