// Package pauli: sentinel error set.
// All exported operations return these sentinels; tests match them with
// errors.Is. Panics are reserved for programmer errors in private helpers.

package pauli

import "errors"

var (
	// ErrBadLabel indicates a Pauli string contained a character outside {I,X,Y,Z}.
	ErrBadLabel = errors.New("pauli: label contains non-Pauli character")

	// ErrQubitMismatch indicates operands defined over different qubit counts.
	ErrQubitMismatch = errors.New("pauli: qubit count mismatch")

	// ErrCoeffLength indicates the coefficient vector length does not match the term count.
	ErrCoeffLength = errors.New("pauli: coefficient vector length mismatch")

	// ErrEmptyOperator indicates an operation that requires at least one term
	// received an empty operator.
	ErrEmptyOperator = errors.New("pauli: empty operator")

	// ErrIndexRange indicates a term index outside [0, NTerms).
	ErrIndexRange = errors.New("pauli: term index out of range")
)
