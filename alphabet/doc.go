// Package alphabet defines the ordered, weighted symbol sets that mass
// decomposition works over, together with per-symbol count bounds.
//
// 🚀 What is an alphabet here?
//
//	An alphabet is an ordered, indexable set of symbols, each carrying a
//	strictly positive real weight (a "mass"). Indices are stable for the
//	lifetime of the alphabet, so a compomere (a vector of counts) can be
//	mapped back to symbols by position.
//
// ✨ Key pieces:
//   - Alphabet[T]        – the narrow read-only contract consumed by the decomposer
//   - ValencyAlphabet[T] – adds ValenceOf(i) for valence-aware boundary calculators
//   - Ordered[T]         – the concrete, immutable implementation of both
//   - Interval           – inclusive [Min, Max] bound on a symbol count
//   - NewMap             – fresh per-symbol map sized for an alphabet
//
// ⚙️ Textual forms (used by cmd/decomp):
//
//	a, _ := alphabet.ParseWeights("C=12,H=1.007825,O=15.994915,Cl=34.968853")
//	bounds, _ := alphabet.ParseBounds(a, "CH[0-20]O[1-]Cl[-2]")
//	parent, _ := alphabet.ParseFormula(a, "C6H12O6")
//
// Multi-character symbols are tokenized by longest match, so "Cl" is never
// read as "C" followed by "l".
package alphabet
