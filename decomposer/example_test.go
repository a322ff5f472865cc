package decomposer_test

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/katalvlaran/massdecomp/decomposer"
)

// ExampleDecomposer_Decompose finds the CHO formulas within 0.0001 of ethanol.
func ExampleDecomposer_Decompose() {
	a, _ := alphabet.New([]string{"C", "H", "O"}, []float64{12, 1.007825, 15.994915})
	d, _ := decomposer.New(a)

	got, _ := d.Decompose(46.0418, 46.0419, nil)
	for _, c := range got {
		fmt.Println(alphabet.Format[string](a, d.Order(), c))
	}

	// Output:
	// C2H6O
}

// ExampleDecomposer_Iterate pulls results one by one.
func ExampleDecomposer_Iterate() {
	a, _ := alphabet.New([]string{"A", "B"}, []float64{7, 11})
	d, _ := decomposer.New(a)

	it, _ := d.Iterate(77, 77, nil)
	var formulas []string
	for it.Next() {
		formulas = append(formulas, alphabet.Format[string](a, it.Order(), it.Compomere()))
	}
	sort.Strings(formulas)
	fmt.Println(formulas, it.Err())

	// Output:
	// [A11 B7] <nil>
}

// ExampleDecomposer_MaybeDecomposable rejects masses no combination can reach.
func ExampleDecomposer_MaybeDecomposable() {
	a, _ := alphabet.New([]string{"A", "B"}, []float64{7, 11})
	d, _ := decomposer.New(a)

	for _, m := range []float64{9, 14, 16, 18} {
		ok, _ := d.MaybeDecomposable(m, m)
		fmt.Println(m, ok)
	}

	// Output:
	// 9 false
	// 14 true
	// 16 false
	// 18 true
}

// ExampleDecomposer_Decompose_bounds restricts counts per symbol.
func ExampleDecomposer_Decompose_bounds() {
	a, _ := alphabet.New([]string{"A", "B"}, []float64{7, 11})
	d, _ := decomposer.New(a)

	got, _ := d.Decompose(154, 154, map[string]alphabet.Interval{"B": alphabet.AtLeast(1)})
	var formulas []string
	for _, c := range got {
		formulas = append(formulas, alphabet.Format[string](a, d.Order(), c))
	}
	sort.Strings(formulas)
	fmt.Println(formulas)

	// Output:
	// [A11B7 B14]
}
