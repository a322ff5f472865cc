// SPDX-License-Identifier: MIT
// Package: massdecomp/decomposer
//
// types.go: sentinel errors, validator contract and named constants.
//
// Error policy:
//   • Precondition failures (ErrInvalidMass, ErrNegativeMass, ErrInvertedRange,
//     alphabet.ErrInvalidInterval) are returned before any search work starts.
//   • ErrIntegerOverflow and ErrTableTooLarge mean the alphabet/precision
//     combination does not fit the 64-bit search space; they are not retryable
//     with the same options.
//   • Errors returned by a Validator are passed through unwrapped.
//   • "No decomposition" is an empty result, never an error.

package decomposer

import (
	"errors"
	"math"

	"github.com/katalvlaran/massdecomp/alphabet"
)

var (
	// ErrInvalidMass indicates a NaN or infinite mass bound.
	ErrInvalidMass = errors.New("decomposer: mass must be finite")

	// ErrNegativeMass indicates from < 0 or to < 0.
	ErrNegativeMass = errors.New("decomposer: mass must be non-negative")

	// ErrInvertedRange indicates to < from.
	ErrInvertedRange = errors.New("decomposer: mass range is inverted")

	// ErrPrecisionTooCoarse indicates a weight that scales to zero integer units.
	ErrPrecisionTooCoarse = errors.New("decomposer: precision too coarse for alphabet")

	// ErrIntegerOverflow indicates that scaled masses leave the int64 search space.
	ErrIntegerOverflow = errors.New("decomposer: integer overflow in scaled search space; use a coarser precision")

	// ErrTableTooLarge indicates that the residue table would exceed the configured row cap.
	ErrTableTooLarge = errors.New("decomposer: residue table exceeds row limit; use a coarser precision")
)

// DefaultPrecision is the mass represented by one integer unit.
//
// At 1e-4 two weights closer than 0.1 mDa may share an integer value. This
// only loosens pruning: every candidate is re-checked against the exact real
// bounds, so results do not depend on the precision, only run time and table
// size do. The smallest weight divided by the precision (after reduction by
// the weights' common divisor) gives the number of table rows, about 10^4 for
// hydrogen.
const DefaultPrecision = 1e-4

// DefaultMaxResidues caps the number of residue table rows (the scaled smallest weight).
const DefaultMaxResidues = 1 << 22

// infinite marks residues unreachable with the symbols of a table column.
const infinite int64 = math.MaxInt64

// maxScaled bounds every scaled integer mass so that sums of two stay in int64.
const maxScaled = math.MaxInt64 / 2

// Validator accepts or rejects a mass-verified compomere.
//
// compomere holds counts in the decomposer's sorted slot order; order maps each
// slot to the alphabet index of its symbol (see Decomposer.Order). Both slices
// belong to the caller of Validate only for the duration of the call.
// A non-nil error aborts the search and is returned to the caller unchanged.
type Validator[T comparable] interface {
	Validate(compomere []int, order []int, a alphabet.Alphabet[T]) (bool, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[T comparable] func(compomere []int, order []int, a alphabet.Alphabet[T]) (bool, error)

// Validate calls f.
func (f ValidatorFunc[T]) Validate(compomere []int, order []int, a alphabet.Alphabet[T]) (bool, error) {
	return f(compomere, order, a)
}
