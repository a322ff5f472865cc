// Package massdecomp finds every way to write a measured mass as a sum of
// weighted symbols: molecular formulas over chemical elements, amino acid
// compositions of peptides, or any other alphabet of positive weights.
//
// 🚀 What is inside?
//
//	alphabet/   : weighted symbols, count bounds, formula parsing and printing
//	deviation/  : ppm and absolute mass tolerances
//	decomposer/ : extended residue tables, eager and lazy decomposition,
//	              bounds, validators and an O(1) feasibility check
//	cmd/decomp/ : command-line front end
//	examples/   : runnable scenarios
//
// ✨ How does it work?
//
// Weights are scaled to integers and reduced by their common divisor. The
// smallest scaled weight becomes the modulus of a residue table that records,
// per residue and symbol prefix, the lightest buildable mass. Tables for wider
// mass windows are derived by repeated sliding-window minima and cached per
// decomposer, so a depth-first search can prune every branch that cannot
// reach the window.
//
// Quick example:
//
//	a, _ := alphabet.ParseWeights("C=12 H=1.007825 O=15.994915")
//	d, _ := decomposer.New[string](a)
//	found, _ := d.Decompose(46.0418, 46.0419, nil) // [[6 2 1]] → C2H6O
//
//	go get github.com/katalvlaran/massdecomp
package massdecomp
