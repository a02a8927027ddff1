// Package pauli implements weighted sums of Pauli tensor-product operators
// in the symplectic (binary) representation.
//
// A Pauli term over n qubits is a pair of boolean support vectors (X, Z):
// position j carries X when X[j], Z when Z[j], Y when both, and I otherwise.
// A PauliSum is an ordered list of such terms with complex coefficients.
//
// The package provides:
//
//	• construction from string labels ("XIZY" …) or label→coefficient maps
//	• term products with exact i^k phase bookkeeping
//	• termwise commutation tests and boolean adjacency matrices
//	• cleanup (lexicographic merge of duplicates, near-zero drop)
//	• stable sorts by coefficient magnitude or bit order
//	• generic generator reconstruction over GF(2), and the Jordan-product
//	  variant that zeroes out cross-clique products
//	• extraction of an independent, universally-commuting generating set
//
// Determinism:
//   - All operations are pure over value copies; nothing mutates its input
//     except the documented in-place sorts.
//   - Cleanup orders terms lexicographically by symplectic bits, so equal
//     operators always compare term-for-term equal after Cleanup.
//
// Errors are strict sentinels (see errors.go) matched via errors.Is.
package pauli
