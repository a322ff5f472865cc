// Package decomposer enumerates every way a mass interval can be written as a
// non-negative integer combination of the weights of an alphabet, the
// generalized money-changing problem behind molecular formula generation.
//
// 🚀 How it works
//
//	1. Normalize: sort the alphabet by weight, scale every weight to integer
//	   units of a fixed precision and divide out the common divisor. The
//	   smallest scaled weight a is the modulus.
//	2. Index: build the Extended Residue Table (ERT). Cell (r, j) holds the
//	   smallest integer mass ≡ r (mod a) that the j+1 lightest symbols can
//	   build. Wider deviation windows use extra levels derived by doubling.
//	3. Search: depth-first over symbol counts from the heaviest symbol down,
//	   abandoning a branch as soon as the ERT proves the remaining mass cannot
//	   be completed anywhere in the window. Leaves are re-checked against the
//	   exact real interval and an optional Validator.
//
// ✨ Key features:
//   - Decompose (eager) and Iterate (lazy, resumable) share one traversal
//   - per-symbol Interval bounds; lower bounds shift the window instead of
//     filtering, upper bounds cap the count loops
//   - MaybeDecomposable answers feasibility without enumeration
//   - safe for concurrent use: ERT levels are published append-only behind
//     an atomic snapshot
//
// ⚙️ Usage:
//
//	a, _ := alphabet.New([]string{"C", "H", "N", "O"}, []float64{12, 1.007825, 14.003074, 15.994915})
//	d, _ := decomposer.New(a)
//	cs, err := d.Decompose(46.0, 46.05, nil)
//	for _, c := range cs {
//	    fmt.Println(alphabet.Format(a, d.Order(), c))
//	}
//
// Complexity:
//
//   - New:        O(a·k) time and memory for k symbols
//   - Decompose:  roughly proportional to the number of decompositions times k
//   - each new ERT level: O(a·k)
//
// Reference: S. Böcker, Zs. Lipták, "The Money Changing Problem revisited",
// COCOON 2005; K. Dührkop et al., "Faster mass decomposition", WABI 2013.
package decomposer
