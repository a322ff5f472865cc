package decomposer

import (
	"fmt"
	"math"

	"github.com/katalvlaran/massdecomp/alphabet"
)

// shiftSlack is the relative rounding error tolerated in the shifted upper bound.
const shiftSlack = 1e-9

// query is one validated decomposition request translated to integer units.
type query struct {
	from, to float64 // exact real bounds, not shifted
	minInt   int64
	maxInt   int64
	shift    []int // per-slot lower bounds re-added to every result; nil when all zero
	bounds   []int // per-slot max count of the shifted search
	empty    bool  // nothing can match; the iterator is exhausted from the start
}

func checkRange(from, to float64) error {
	if math.IsNaN(from) || math.IsNaN(to) || math.IsInf(from, 0) || math.IsInf(to, 0) {
		return fmt.Errorf("decomposer: [%v, %v]: %w", from, to, ErrInvalidMass)
	}
	if from < 0 || to < 0 {
		return fmt.Errorf("decomposer: [%v, %v]: %w", from, to, ErrNegativeMass)
	}
	if to < from {
		return fmt.Errorf("decomposer: [%v, %v]: %w", from, to, ErrInvertedRange)
	}

	return nil
}

// prepare validates the request, applies lower bounds by shifting the window
// down by Σ min_i·mass_i, and converts the shifted window to integer units.
func (d *Decomposer[T]) prepare(from, to float64, boundaries map[T]alphabet.Interval) (query, error) {
	if err := checkRange(from, to); err != nil {
		return query{}, err
	}

	k := len(d.weights)
	q := query{from: from, to: to, bounds: make([]int, k)}
	cfrom, cto := from, to
	for s := range q.bounds {
		q.bounds[s] = alphabet.Unbounded
		iv, ok := boundaries[d.weights[s].owner]
		if !ok {
			continue
		}
		if err := iv.Validate(); err != nil {
			return query{}, fmt.Errorf("decomposer: bound of %v: %w", d.weights[s].owner, err)
		}
		if iv.Bounded() {
			q.bounds[s] = iv.Max - iv.Min
		}
		if iv.Min > 0 {
			if q.shift == nil {
				q.shift = make([]int, k)
			}
			q.shift[s] = iv.Min
			reduce := d.weights[s].mass * float64(iv.Min)
			cfrom -= reduce
			cto -= reduce
		}
	}

	// Subtracting the lower bounds can leave rounding residue just below zero
	// when the minimum vector lies on to; only a real deficit means no match.
	if to == 0 || cto < -shiftSlack*to {
		q.empty = true
		return q, nil
	}

	lo, hi, err := d.integerBound(math.Max(cfrom, 0), math.Max(cto, 0))
	if err != nil {
		return query{}, err
	}
	q.minInt, q.maxInt = lo, hi

	return q, nil
}

// integerBound returns the integer masses a compomere with real mass in
// [from, to] can have. The relative discretization errors widen the window;
// one extra unit on each side absorbs floating-point rounding of the division.
func (d *Decomposer[T]) integerBound(from, to float64) (int64, int64, error) {
	hiF := math.Floor((1+d.maxError)*to/d.precision) + 1
	if hiF >= maxScaled {
		return 0, 0, fmt.Errorf("decomposer: mass %v at precision %g: %w", to, d.precision, ErrIntegerOverflow)
	}
	loF := math.Ceil((1+d.minError)*from/d.precision) - 1

	return max(int64(loF), 0), int64(hiF), nil
}
