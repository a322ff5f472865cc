// SPDX-License-Identifier: MIT
// Package decomposer_test contains fixtures and oracles shared by the decomposer tests.

package decomposer_test

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/katalvlaran/massdecomp/decomposer"
	"github.com/stretchr/testify/require"
)

// Monoisotopic masses used across tests.
const (
	MassC = 12.0
	MassH = 1.007825
	MassN = 14.003074
	MassO = 15.994915
	MassP = 30.973762
	MassS = 31.972071
)

// Fixed seeds keep randomized oracle runs reproducible.
const (
	seedOracle = 7
	nOracleRun = 40
)

// newCHNO builds the arbitrary-unit alphabet {C:12.000, H:1.008, O:15.995, N:14.003}.
func newCHNO(t testing.TB) *alphabet.Ordered[string] {
	t.Helper()
	a, err := alphabet.New([]string{"C", "H", "O", "N"}, []float64{12.000, 1.008, 15.995, 14.003})
	require.NoError(t, err)

	return a
}

// newCHNOPS builds the monoisotopic CHNOPS alphabet.
func newCHNOPS(t testing.TB) *alphabet.Ordered[string] {
	t.Helper()
	a, err := alphabet.New(
		[]string{"C", "H", "N", "O", "P", "S"},
		[]float64{MassC, MassH, MassN, MassO, MassP, MassS},
	)
	require.NoError(t, err)

	return a
}

// mustDecomposer wraps decomposer.New for test fixtures.
func mustDecomposer[T comparable](t testing.TB, a alphabet.Alphabet[T], opts ...decomposer.Option) *decomposer.Decomposer[T] {
	t.Helper()
	d, err := decomposer.New(a, opts...)
	require.NoError(t, err)

	return d
}

// key renders a compomere as a comparable map key.
func key(c []int) string {
	return strings.Trim(fmt.Sprint(c), "[]")
}

// asSet turns compomeres into a set keyed by key(c), failing on duplicates.
func asSet(t testing.TB, cs [][]int) map[string]struct{} {
	t.Helper()
	set := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		k := key(c)
		_, dup := set[k]
		require.False(t, dup, "compomere %v emitted twice", c)
		set[k] = struct{}{}
	}

	return set
}

// bruteForce enumerates every slot-ordered compomere with mass in [from, to]
// and counts inside bounds, by exhaustive nesting with cap ⌊to/w⌋ per slot.
// Mass is computed with d.Mass so both sides round identically.
func bruteForce[T comparable](d *decomposer.Decomposer[T], from, to float64, bounds map[T]alphabet.Interval) [][]int {
	a, order := d.Alphabet(), d.Order()
	k := len(order)
	caps := make([]int, k)
	lows := make([]int, k)
	for s, idx := range order {
		caps[s] = int(to / a.WeightOf(idx))
		if iv, ok := bounds[a.Get(idx)]; ok {
			lows[s] = iv.Min
			caps[s] = min(caps[s], iv.Max)
		}
	}

	var out [][]int
	c := make([]int, k)
	var rec func(s int)
	rec = func(s int) {
		if s == k {
			if m := d.Mass(c); m >= from && m <= to && to > 0 {
				out = append(out, slices.Clone(c))
			}
			return
		}
		for v := lows[s]; v <= caps[s]; v++ {
			c[s] = v
			rec(s + 1)
		}
		c[s] = 0
	}
	rec(0)

	return out
}

// randomAlphabet draws k distinct weights in [lo, hi) with 3 decimals.
func randomAlphabet(t testing.TB, rng *rand.Rand, k int, lo, hi float64) *alphabet.Ordered[string] {
	t.Helper()
	symbols := make([]string, k)
	weights := make([]float64, k)
	seen := make(map[float64]bool, k)
	for i := 0; i < k; i++ {
		symbols[i] = fmt.Sprintf("X%d", i)
		for {
			w := float64(int((lo+rng.Float64()*(hi-lo))*1000)) / 1000
			if w > 0 && !seen[w] {
				seen[w] = true
				weights[i] = w
				break
			}
		}
	}
	a, err := alphabet.New(symbols, weights)
	require.NoError(t, err)

	return a
}

// drain collects an iterator into copies.
func drain[T comparable](t testing.TB, it *decomposer.Iterator[T]) [][]int {
	t.Helper()
	var out [][]int
	for it.Next() {
		out = append(out, slices.Clone(it.Compomere()))
	}
	require.NoError(t, it.Err())

	return out
}
