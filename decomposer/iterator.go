package decomposer

import (
	"iter"
	"math/bits"

	"github.com/katalvlaran/massdecomp/alphabet"
)

// Iterator walks the decomposition search tree lazily, stopping after each
// accepted compomere and resuming from exactly that point on the next call.
//
// The traversal is the depth-first search over slots k−1 … 0 written as an
// explicit state machine: per slot it keeps the for-loop counter j, the
// residual mass m, the pruning bound and the current count; two flags tell
// whether the slot is inside the count loop or the residue-class loop, and
// whether the base slot is still handing out leaves.
//
// Usage:
//
//	it, err := d.Iterate(from, to, nil)
//	for it.Next() {
//	    use(it.Compomere())
//	}
//	if err := it.Err(); err != nil { ... }
//
// An Iterator is single-pass and must not be shared between goroutines.
// Stopping early is always allowed; it holds no external resources.
type Iterator[T comparable] struct {
	d   *Decomposer[T]
	ert *table
	q   query

	k         int
	a         int64 // base integer mass, the table modulus
	deviation int64 // maxInt − minInt
	tableDev  int64 // deviation clamped to a−1; wider windows already cover every residue
	ertDev    int64 // highest power of two ≤ tableDev

	i       int     // current slot; k means the search is over
	j       []int64 // for-loop counter per slot
	m       []int64 // m[i−1] is the mass left for slots 0..i−1
	lbound  []int64 // smallest mass slots 0..i−1 can build in the residue window
	buffer  []int   // counts of the shifted search
	inWhile bool    // slot i is inside its residue-class loop

	atLeaf   bool // base slot is handing out counts leafNext down to leafLow
	leafNext int64
	leafLow  int64

	current []int // accepted compomere with lower bounds re-added
	order   []int
	err     error
	done    bool
}

func newIterator[T comparable](d *Decomposer[T], q query) *Iterator[T] {
	k := len(d.weights)
	it := &Iterator[T]{
		d:       d,
		q:       q,
		k:       k,
		a:       d.weights[0].integer,
		j:       make([]int64, k),
		m:       make([]int64, k),
		lbound:  make([]int64, k),
		buffer:  make([]int, k),
		current: make([]int, k),
		order:   d.Order(),
		done:    q.empty,
	}
	if q.empty {
		return it
	}

	it.deviation = q.maxInt - q.minInt
	it.tableDev = min(it.deviation, it.a-1)
	if it.tableDev > 0 {
		it.ertDev = int64(1) << (bits.Len64(uint64(it.tableDev)) - 1)
	}
	it.ert = d.tables.covering(it.tableDev)

	for s := 1; s < k; s++ {
		it.lbound[s] = infinite
	}
	it.i = k - 1
	it.m[it.i] = q.maxInt

	return it
}

// Next advances to the next accepted compomere. It returns false when the
// search is exhausted or a validator failed; check Err afterwards.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}
	for it.advance() {
		ok, err := it.accept()
		if err != nil {
			it.err, it.done = err, true
			return false
		}
		if ok {
			return true
		}
	}
	it.done = true

	return false
}

// Compomere returns the current compomere in slot order. The slice is reused
// by the next call to Next; copy it to keep it.
func (it *Iterator[T]) Compomere() []int { return it.current }

// Err returns the validator error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error { return it.err }

// Alphabet returns the alphabet of the decomposer.
func (it *Iterator[T]) Alphabet() alphabet.Alphabet[T] { return it.d.alphabet }

// Order returns the slot → alphabet index mapping of Compomere.
func (it *Iterator[T]) Order() []int { return it.order }

// SymbolAt returns the symbol counted in slot s.
func (it *Iterator[T]) SymbolAt(s int) T { return it.d.alphabet.Get(it.order[s]) }

// All adapts the iterator to range-over-func. Each yielded slice is a fresh copy.
// Validator errors end the sequence; check Err afterwards.
func (it *Iterator[T]) All() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for it.Next() {
			if !yield(append([]int(nil), it.current...)) {
				return
			}
		}
	}
}

// advance runs the search until the next raw leaf, left in buffer.
func (it *Iterator[T]) advance() bool {
	ws := it.d.weights
	for it.i != it.k {
		i := it.i

		if i == 0 {
			if !it.atLeaf {
				it.openLeaf()
			}
			if it.leafNext >= it.leafLow {
				it.buffer[0] = int(it.leafNext)
				it.leafNext--
				return true
			}
			it.atLeaf = false
			it.buffer[0] = 0
			it.ascend()
			continue
		}

		if it.inWhile {
			if it.m[i-1] >= it.lbound[i] && it.buffer[i] <= it.q.bounds[i] {
				it.i-- // descend
			} else {
				it.inWhile = false
			}
			continue
		}

		w := &ws[i]
		if j := it.j[i]; j < w.l && j <= int64(it.q.bounds[i]) && j <= it.m[i]/w.integer {
			it.buffer[i] = int(j)
			rest := it.m[i] - j*w.integer
			it.m[i-1] = rest
			r := rest % it.a
			pos := r - it.tableDev + it.ertDev
			if pos < 0 {
				pos += it.a
			}
			it.lbound[i] = min(it.ert.at(int(r), i-1), it.ert.at(int(pos), i-1))
			it.inWhile = true
			it.j[i]++
		} else {
			it.lbound[i] = infinite
			it.j[i] = 0
			it.buffer[i] = 0
			it.ascend()
		}
	}

	return false
}

// openLeaf computes the base counts c with c·a inside [m0 − deviation, m0],
// capped by the base slot's bound.
func (it *Iterator[T]) openLeaf() {
	m0 := it.m[0]
	low := max(m0-it.deviation, 0)
	it.leafNext = min(m0/it.a, int64(it.q.bounds[0]))
	it.leafLow = (low + it.a - 1) / it.a
	it.atLeaf = true
}

// ascend returns from slot i to slot i+1 and takes the next step of that
// slot's residue-class loop: l more of its symbol keeps the residue unchanged.
func (it *Iterator[T]) ascend() {
	it.i++
	if it.i == it.k {
		return
	}
	w := &it.d.weights[it.i]
	it.inWhile = true
	it.m[it.i-1] -= w.lcm
	it.buffer[it.i] += int(w.l)
}

// accept re-adds lower bounds, checks the exact mass and runs the validator.
func (it *Iterator[T]) accept() (bool, error) {
	copy(it.current, it.buffer)
	for s, c := range it.q.shift {
		it.current[s] += c
	}

	exact := it.d.Mass(it.current)
	if exact < it.q.from || exact > it.q.to {
		return false, nil
	}
	if it.d.validator == nil {
		return true, nil
	}

	return it.d.validator.Validate(it.current, it.order, it.d.alphabet)
}
