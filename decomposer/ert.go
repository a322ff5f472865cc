// Extended residue tables.
//
// Level 0 is the residue table of Böcker & Lipták: cell (r, j) holds the
// smallest integer mass ≡ r (mod a) that symbols 0..j can build, or infinite.
// Level L ≥ 1 widens every cell to the residue window [r − 2^(L−1), r], so a
// single lookup answers "can anything in a deviation window of width
// 2^(L−1) be built". Level L is derived from level L−1 by one sliding
// minimum with step 1 (L = 1) or 2^(L−2) (L ≥ 2), wrapping around the modulus.

package decomposer

import (
	"fmt"
	"math/bits"
	"slices"
	"sync"
	"sync/atomic"
)

// table is one ERT level stored row-major: rows residues × cols symbols.
type table struct {
	rows, cols int
	cells      []int64
}

func newTable(rows, cols int) *table {
	return &table{rows: rows, cols: cols, cells: make([]int64, rows*cols)}
}

func (t *table) at(r, j int) int64 { return t.cells[r*t.cols+j] }

func (t *table) set(r, j int, v int64) { t.cells[r*t.cols+j] = v }

// buildBase computes level 0 for the sorted integer masses.
//
// Column 0 is 0 at residue 0 and infinite elsewhere. Column j is filled by
// d = gcd(a, w_j) round-robin walks: each walk starts at the minimum of its
// residue class in column j−1 and repeatedly adds w_j, keeping the smaller of
// the running value and the column j−1 value at the residue reached.
func buildBase(masses []int64) (*table, error) {
	a := masses[0]
	n, k := int(a), len(masses)
	t := newTable(n, k)

	t.set(0, 0, 0)
	for r := 1; r < n; r++ {
		t.set(r, 0, infinite)
	}

	for j := 1; j < k; j++ {
		wj := masses[j]
		d := int(gcd(a, wj))
		for p := 0; p < d; p++ {
			var v int64
			if p == 0 {
				v = 0
				t.set(0, j, 0)
			} else {
				v = infinite
				argmin := p
				for r := p; r < n; r += d {
					if t.at(r, j-1) < v {
						v, argmin = t.at(r, j-1), r
					}
				}
				t.set(argmin, j, v)
			}

			if v == infinite {
				for r := p; r < n; r += d {
					t.set(r, j, infinite)
				}
				continue
			}

			for step := 1; step < n/d; step++ {
				if v > maxScaled-wj {
					tracer().Errorf("residue table overflow at column %d (value %d + %d)", j, v, wj)
					return nil, fmt.Errorf("decomposer: residue table column %d: %w", j, ErrIntegerOverflow)
				}
				v += wj
				r := int(v % a)
				if prev := t.at(r, j-1); prev < v {
					v = prev
				}
				t.set(r, j, v)
			}
		}
	}

	return t, nil
}

// extend derives level `level` (≥ 1) from its predecessor t.
func (t *table) extend(level int) *table {
	step := 1
	if level >= 2 {
		step = 1 << (level - 2)
	}
	step %= t.rows

	next := newTable(t.rows, t.cols)
	for r := 0; r < t.rows; r++ {
		src := r - step
		if src < 0 {
			src += t.rows
		}
		cur, prev := t.cells[r*t.cols:(r+1)*t.cols], t.cells[src*t.cols:(src+1)*t.cols]
		out := next.cells[r*t.cols : (r+1)*t.cols]
		for j := range out {
			out[j] = min(cur[j], prev[j])
		}
	}

	return next
}

// levelFor returns the ERT level whose window covers deviation dev.
func levelFor(dev int64) int {
	if dev <= 0 {
		return 0
	}

	return bits.Len64(uint64(dev))
}

// residueTables is the append-only, per-decomposer cache of ERT levels.
// Readers load an immutable snapshot without locking; mu only serializes
// publication of a new level. Two goroutines may build the same level; the
// loser's table is dropped.
type residueTables struct {
	mu     sync.Mutex
	levels atomic.Pointer[[]*table]
}

func newResidueTables(base *table) *residueTables {
	rt := &residueTables{}
	levels := []*table{base}
	rt.levels.Store(&levels)

	return rt
}

func (rt *residueTables) snapshot() []*table { return *rt.levels.Load() }

func (rt *residueTables) base() *table { return rt.snapshot()[0] }

// covering returns the level for deviation dev, growing the cache as needed.
// Callers clamp dev below the table row count.
func (rt *residueTables) covering(dev int64) *table {
	want := levelFor(dev)
	for {
		levels := rt.snapshot()
		if len(levels) > want {
			return levels[want]
		}

		next := levels[len(levels)-1].extend(len(levels))

		rt.mu.Lock()
		if cur := rt.snapshot(); len(cur) == len(levels) {
			grown := append(slices.Clip(cur), next)
			rt.levels.Store(&grown)
			tracer().Debugf("ERT level %d published (%d residues x %d symbols)", len(levels), next.rows, next.cols)
		}
		rt.mu.Unlock()
	}
}
