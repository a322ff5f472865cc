package decomposer

import (
	"fmt"

	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/katalvlaran/massdecomp/deviation"
)

// Decomposer enumerates the compomeres of an alphabet whose mass falls in a
// given interval.
//
// A Decomposer is safe for concurrent use: the only shared mutable state is
// the residue table cache, which grows append-only behind an atomic snapshot.
// Iterators it returns are not safe for concurrent pulls.
type Decomposer[T comparable] struct {
	alphabet  alphabet.Alphabet[T]
	weights   []weight[T]
	order     []int
	precision float64
	minError  float64
	maxError  float64
	tables    *residueTables
	validator Validator[T]
}

// New normalizes the alphabet and builds the level-0 residue table.
//
// Errors:
//   - alphabet.ErrEmptyAlphabet     – nil or empty alphabet.
//   - alphabet.ErrNonPositiveWeight – a weight ≤ 0, NaN or +Inf.
//   - ErrPrecisionTooCoarse         – a weight scales to zero units.
//   - ErrTableTooLarge              – the scaled smallest weight exceeds the row cap.
//   - ErrIntegerOverflow            – table values leave the int64 space.
//
// Complexity: O(k log k + a·k) time and O(a·k) memory, a = scaled smallest weight.
func New[T comparable](a alphabet.Alphabet[T], opts ...Option) (*Decomposer[T], error) {
	if a == nil || a.Size() == 0 {
		return nil, alphabet.ErrEmptyAlphabet
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := normalize(a, cfg.precision, cfg.maxResidues)
	if err != nil {
		return nil, err
	}

	masses := make([]int64, len(s.weights))
	for i, w := range s.weights {
		masses[i] = w.integer
	}
	base, err := buildBase(masses)
	if err != nil {
		return nil, err
	}
	tracer().Infof("decomposer ready: %d symbols, %d residues, precision %g", len(masses), base.rows, s.precision)

	return &Decomposer[T]{
		alphabet:  a,
		weights:   s.weights,
		order:     s.order,
		precision: s.precision,
		minError:  s.minError,
		maxError:  s.maxError,
		tables:    newResidueTables(base),
	}, nil
}

// WithValidator returns a view of d that filters every result through v.
// The view shares d's residue tables; d itself is unchanged. A nil v removes
// filtering.
func (d *Decomposer[T]) WithValidator(v Validator[T]) *Decomposer[T] {
	view := *d
	view.validator = v

	return &view
}

// Decompose returns every compomere whose mass lies in [from, to] and whose
// counts satisfy boundaries. Symbols missing from boundaries are unbounded;
// entries for symbols outside the alphabet are ignored.
//
// The empty compomere (all counts zero) has mass 0 and is returned when
// from == 0 < to. A query with to == 0 returns nothing.
//
// Compomeres are indexed by slot; use Order to map slots to alphabet indices.
// Decompose drains the same traversal Iterate exposes lazily.
func (d *Decomposer[T]) Decompose(from, to float64, boundaries map[T]alphabet.Interval) ([][]int, error) {
	it, err := d.Iterate(from, to, boundaries)
	if err != nil {
		return nil, err
	}

	var out [][]int
	for it.Next() {
		out = append(out, append([]int(nil), it.Compomere()...))
	}
	if err = it.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Iterate returns a lazy, single-pass iterator over the compomeres Decompose
// would return. Preconditions are checked before it is returned.
func (d *Decomposer[T]) Iterate(from, to float64, boundaries map[T]alphabet.Interval) (*Iterator[T], error) {
	q, err := d.prepare(from, to, boundaries)
	if err != nil {
		return nil, err
	}

	return newIterator(d, q), nil
}

// MaybeDecomposable reports whether some integer mass in the window of
// [from, to] is reachable. False guarantees Decompose(from, to, nil) is empty;
// true does not guarantee a result (bounds, rounding and the validator are
// not considered).
//
// Complexity: O(min(width, a)) lookups in the level-0 table.
func (d *Decomposer[T]) MaybeDecomposable(from, to float64) (bool, error) {
	if err := checkRange(from, to); err != nil {
		return false, err
	}
	if to == 0 {
		return false, nil
	}
	lo, hi, err := d.integerBound(from, to)
	if err != nil {
		return false, err
	}

	base := d.tables.base()
	a, last := d.weights[0].integer, len(d.weights)-1
	// The largest value of each residue class is the one most likely reachable.
	for v := hi; v >= lo && v > hi-a; v-- {
		if v >= base.at(int(v%a), last) {
			return true, nil
		}
	}

	return false, nil
}

// DecomposeMass decomposes the tolerance window of dev around mass.
func (d *Decomposer[T]) DecomposeMass(mass float64, dev deviation.Deviation, boundaries map[T]alphabet.Interval) ([][]int, error) {
	from, to, err := massWindow(mass, dev)
	if err != nil {
		return nil, err
	}

	return d.Decompose(from, to, boundaries)
}

// IterateMass is the lazy form of DecomposeMass.
func (d *Decomposer[T]) IterateMass(mass float64, dev deviation.Deviation, boundaries map[T]alphabet.Interval) (*Iterator[T], error) {
	from, to, err := massWindow(mass, dev)
	if err != nil {
		return nil, err
	}

	return d.Iterate(from, to, boundaries)
}

// MaybeDecomposableMass is MaybeDecomposable for the tolerance window of dev around mass.
func (d *Decomposer[T]) MaybeDecomposableMass(mass float64, dev deviation.Deviation) (bool, error) {
	from, to, err := massWindow(mass, dev)
	if err != nil {
		return false, err
	}

	return d.MaybeDecomposable(from, to)
}

func massWindow(mass float64, dev deviation.Deviation) (float64, float64, error) {
	if err := dev.Validate(); err != nil {
		return 0, 0, err
	}
	if err := checkRange(mass, mass); err != nil {
		return 0, 0, err
	}
	from, to := dev.Window(mass)

	return from, to, nil
}

// Alphabet returns the alphabet d decomposes over.
func (d *Decomposer[T]) Alphabet() alphabet.Alphabet[T] { return d.alphabet }

// Order returns, for each compomere slot, the alphabet index of its symbol.
// Slots are sorted by ascending mass. The slice is a copy.
func (d *Decomposer[T]) Order() []int { return append([]int(nil), d.order...) }

// Precision returns the effective mass per integer unit after common-divisor reduction.
func (d *Decomposer[T]) Precision() float64 { return d.precision }

// MinError returns the smallest relative discretization error over all weights (≤ 0).
func (d *Decomposer[T]) MinError() float64 { return d.minError }

// MaxError returns the largest relative discretization error over all weights (≥ 0).
func (d *Decomposer[T]) MaxError() float64 { return d.maxError }

// Levels returns how many ERT levels are currently cached.
func (d *Decomposer[T]) Levels() int { return len(d.tables.snapshot()) }

// Mass returns the exact mass of a compomere.
func (d *Decomposer[T]) Mass(compomere []int) float64 {
	var m float64
	for s, c := range compomere {
		m += float64(c) * d.weights[s].mass
	}

	return m
}

// Counts maps a compomere to per-symbol counts, omitting zeros.
func (d *Decomposer[T]) Counts(compomere []int) (map[T]int, error) {
	if len(compomere) != len(d.weights) {
		return nil, fmt.Errorf("decomposer: compomere of length %d for %d symbols: %w",
			len(compomere), len(d.weights), alphabet.ErrLengthMismatch)
	}
	counts := alphabet.NewMap[T, int](d.alphabet)
	for s, c := range compomere {
		if c != 0 {
			counts[d.weights[s].owner] = c
		}
	}

	return counts, nil
}
