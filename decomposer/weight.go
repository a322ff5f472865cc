package decomposer

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/massdecomp/alphabet"
)

// weight is one alphabet symbol after normalization. Slot 0 (the base) has
// the smallest mass and its integer mass is the table modulus.
type weight[T comparable] struct {
	owner   T
	mass    float64 // real mass
	integer int64   // mass in precision units, reduced by the common divisor
	l       int64   // base period: counts in [0, l) cover every residue this symbol can add
	lcm     int64   // l·integer, a multiple of the base integer mass
}

// scaling is the outcome of normalizing an alphabet.
type scaling[T comparable] struct {
	weights   []weight[T]
	order     []int // slot -> alphabet index
	precision float64
	minError  float64 // smallest relative error (precision·integer − mass)/mass, ≤ 0
	maxError  float64 // largest relative error, ≥ 0
}

// normalize sorts the alphabet by mass, scales every weight to integer units,
// divides out the common divisor and derives the per-symbol periods.
//
// Steps:
//  1. Stable sort of alphabet indices by weight (ties keep alphabet order).
//  2. integer = round(mass / precision); zero is ErrPrecisionTooCoarse.
//  3. g = gcd of all integers; integers /= g, precision *= g.
//  4. l_i = a / gcd(a, integer_i), lcm_i = l_i·integer_i, with a = integer_0.
//  5. Relative discretization errors for the integer window.
func normalize[T comparable](a alphabet.Alphabet[T], precision float64, maxResidues int64) (scaling[T], error) {
	k := a.Size()
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int { return cmp.Compare(a.WeightOf(x), a.WeightOf(y)) })

	ws := make([]weight[T], k)
	var (
		slot int
		idx  int
	)
	for slot, idx = range order {
		m := a.WeightOf(idx)
		if !(m > 0) || math.IsInf(m, 1) {
			return scaling[T]{}, fmt.Errorf("decomposer: symbol %v weight %v: %w", a.Get(idx), m, alphabet.ErrNonPositiveWeight)
		}
		scaled := math.Round(m / precision)
		if scaled < 1 {
			return scaling[T]{}, fmt.Errorf("decomposer: symbol %v at precision %g: %w", a.Get(idx), precision, ErrPrecisionTooCoarse)
		}
		if scaled >= maxScaled {
			return scaling[T]{}, fmt.Errorf("decomposer: symbol %v at precision %g: %w", a.Get(idx), precision, ErrIntegerOverflow)
		}
		ws[slot] = weight[T]{owner: a.Get(idx), mass: m, integer: int64(scaled)}
	}

	g := ws[0].integer
	for _, w := range ws[1:] {
		if g == 1 {
			break
		}
		g = gcd(g, w.integer)
	}
	if g > 1 {
		precision *= float64(g)
		for i := range ws {
			ws[i].integer /= g
		}
	}

	base := ws[0].integer
	if base > maxResidues {
		return scaling[T]{}, fmt.Errorf("decomposer: %d residues > %d: %w", base, maxResidues, ErrTableTooLarge)
	}
	ws[0].l, ws[0].lcm = 1, base
	for i := 1; i < k; i++ {
		w := &ws[i]
		w.l = base / gcd(base, w.integer)
		if w.l > maxScaled/w.integer {
			return scaling[T]{}, fmt.Errorf("decomposer: period of %v: %w", w.owner, ErrIntegerOverflow)
		}
		w.lcm = w.l * w.integer
	}

	s := scaling[T]{weights: ws, order: order, precision: precision}
	for _, w := range ws {
		e := (precision*float64(w.integer) - w.mass) / w.mass
		s.minError = math.Min(s.minError, e)
		s.maxError = math.Max(s.maxError, e)
	}

	return s, nil
}

func gcd(u, v int64) int64 {
	for v != 0 {
		u, v = v, u%v
	}

	return u
}
