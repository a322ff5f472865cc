package alphabet

import (
	"fmt"
	"math"
)

// Ordered is an immutable Alphabet backed by parallel slices.
// It is safe for concurrent use by multiple goroutines.
type Ordered[T comparable] struct {
	symbols  []T
	weights  []float64
	valences []int // nil unless built by NewWithValences
	index    map[T]int
}

// New builds an Ordered alphabet from symbols and their weights.
// The i-th symbol gets index i.
//
// Errors: ErrEmptyAlphabet, ErrLengthMismatch, ErrNonPositiveWeight, ErrDuplicateSymbol.
func New[T comparable](symbols []T, weights []float64) (*Ordered[T], error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if len(symbols) != len(weights) {
		return nil, fmt.Errorf("alphabet: %d symbols, %d weights: %w", len(symbols), len(weights), ErrLengthMismatch)
	}

	a := &Ordered[T]{
		symbols: append([]T(nil), symbols...),
		weights: append([]float64(nil), weights...),
		index:   make(map[T]int, len(symbols)),
	}
	var (
		i int
		s T
	)
	for i, s = range a.symbols {
		w := a.weights[i]
		if !(w > 0) || math.IsInf(w, 1) {
			return nil, fmt.Errorf("alphabet: symbol %v weight %v: %w", s, w, ErrNonPositiveWeight)
		}
		if _, dup := a.index[s]; dup {
			return nil, fmt.Errorf("alphabet: symbol %v: %w", s, ErrDuplicateSymbol)
		}
		a.index[s] = i
	}

	return a, nil
}

// NewWithValences is New plus a valence per symbol; the result satisfies ValencyAlphabet.
func NewWithValences[T comparable](symbols []T, weights []float64, valences []int) (*Ordered[T], error) {
	if len(valences) != len(symbols) {
		return nil, fmt.Errorf("alphabet: %d symbols, %d valences: %w", len(symbols), len(valences), ErrLengthMismatch)
	}
	a, err := New(symbols, weights)
	if err != nil {
		return nil, err
	}
	a.valences = append([]int(nil), valences...)

	return a, nil
}

// Size returns the number of symbols.
func (a *Ordered[T]) Size() int { return len(a.symbols) }

// WeightOf returns the weight of the i-th symbol.
func (a *Ordered[T]) WeightOf(i int) float64 { return a.weights[i] }

// Get returns the i-th symbol.
func (a *Ordered[T]) Get(i int) T { return a.symbols[i] }

// IndexOf returns the index of t, or -1.
func (a *Ordered[T]) IndexOf(t T) int {
	if i, ok := a.index[t]; ok {
		return i
	}

	return -1
}

// ValenceOf returns the valence of the i-th symbol, 0 when none were given.
func (a *Ordered[T]) ValenceOf(i int) int {
	if a.valences == nil {
		return 0
	}

	return a.valences[i]
}

// Symbols returns a copy of the symbols in index order.
func (a *Ordered[T]) Symbols() []T {
	return append([]T(nil), a.symbols...)
}

// Mass returns Σ counts[i]·WeightOf(i) for counts given in alphabet order.
func Mass[T comparable](a Alphabet[T], counts []int) float64 {
	var m float64
	for i, c := range counts {
		m += float64(c) * a.WeightOf(i)
	}

	return m
}
