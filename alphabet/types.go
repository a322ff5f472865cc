// SPDX-License-Identifier: MIT
// Package: massdecomp/alphabet
//
// types.go: contracts, bounds and sentinel errors for alphabets.

package alphabet

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for alphabet construction and parsing.
var (
	// ErrEmptyAlphabet indicates that an alphabet without symbols was requested.
	ErrEmptyAlphabet = errors.New("alphabet: no symbols")

	// ErrLengthMismatch indicates that symbols and weights differ in length.
	ErrLengthMismatch = errors.New("alphabet: symbols and weights differ in length")

	// ErrNonPositiveWeight indicates a weight that is zero, negative, NaN or infinite.
	ErrNonPositiveWeight = errors.New("alphabet: weight must be positive and finite")

	// ErrDuplicateSymbol indicates that a symbol occurs twice.
	ErrDuplicateSymbol = errors.New("alphabet: duplicate symbol")

	// ErrInvalidInterval indicates Min < 0 or Max < Min.
	ErrInvalidInterval = errors.New("alphabet: invalid interval")

	// ErrUnknownSymbol indicates a textual symbol that is not part of the alphabet.
	ErrUnknownSymbol = errors.New("alphabet: unknown symbol")

	// ErrSyntax indicates malformed textual input.
	ErrSyntax = errors.New("alphabet: syntax error")
)

// Alphabet is an ordered, indexable set of weighted symbols.
//
// Indices are stable for the lifetime of the alphabet and weights are
// strictly positive. IndexOf returns -1 for symbols outside the alphabet.
type Alphabet[T comparable] interface {
	Size() int
	WeightOf(i int) float64
	Get(i int) T
	IndexOf(t T) int
}

// ValencyAlphabet is an Alphabet whose symbols also carry a valence.
// It is consumed by boundary calculators that derive count limits from
// valences; the decomposer itself only needs Alphabet.
type ValencyAlphabet[T comparable] interface {
	Alphabet[T]
	ValenceOf(i int) int
}

// Unbounded is the Max of an Interval without an upper limit.
const Unbounded = math.MaxInt

// Interval is an inclusive bound on the count of one symbol in a compomere.
// The zero value is not useful on its own; use NewInterval, AtLeast, AtMost or Exactly.
type Interval struct {
	Min int
	Max int
}

// NewInterval returns [min, max] or ErrInvalidInterval.
func NewInterval(min, max int) (Interval, error) {
	iv := Interval{Min: min, Max: max}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}

	return iv, nil
}

// AtLeast returns [min, Unbounded].
func AtLeast(min int) Interval { return Interval{Min: min, Max: Unbounded} }

// AtMost returns [0, max].
func AtMost(max int) Interval { return Interval{Min: 0, Max: max} }

// Exactly returns [n, n].
func Exactly(n int) Interval { return Interval{Min: n, Max: n} }

// Validate reports ErrInvalidInterval when Min < 0 or Max < Min.
func (iv Interval) Validate() error {
	if iv.Min < 0 || iv.Max < iv.Min {
		return fmt.Errorf("alphabet: [%d,%d]: %w", iv.Min, iv.Max, ErrInvalidInterval)
	}

	return nil
}

// Contains reports whether n lies in the interval.
func (iv Interval) Contains(n int) bool {
	return n >= iv.Min && n <= iv.Max
}

// Bounded reports whether the interval has a finite upper limit.
func (iv Interval) Bounded() bool { return iv.Max != Unbounded }

// Intersect returns the overlap of two intervals. The result may be invalid
// (Max < Min) when they do not overlap; callers check with Validate.
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{Min: max(iv.Min, other.Min), Max: min(iv.Max, other.Max)}
}

// String renders the interval in bound-expression syntax: "[1-3]", "[2-]", "[4]".
func (iv Interval) String() string {
	switch {
	case iv.Min == iv.Max:
		return fmt.Sprintf("[%d]", iv.Min)
	case !iv.Bounded():
		return fmt.Sprintf("[%d-]", iv.Min)
	default:
		return fmt.Sprintf("[%d-%d]", iv.Min, iv.Max)
	}
}

// NewMap returns an empty per-symbol map with room for every symbol of a.
func NewMap[T comparable, S any](a Alphabet[T]) map[T]S {
	return make(map[T]S, a.Size())
}
