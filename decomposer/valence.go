package decomposer

import (
	"github.com/katalvlaran/massdecomp/alphabet"
)

// ValenceValidator accepts compomeres that can form a connected, even-electron
// molecule: the ring and double bond equivalent 1 + Σ n·(valence − 2)/2 must
// be a non-negative whole number. Valences are taken from va, which must be
// the alphabet the decomposer was built from.
func ValenceValidator[T comparable](va alphabet.ValencyAlphabet[T]) Validator[T] {
	return ValidatorFunc[T](func(compomere []int, order []int, _ alphabet.Alphabet[T]) (bool, error) {
		twice := 2
		for s, n := range compomere {
			twice += n * (va.ValenceOf(order[s]) - 2)
		}

		return twice >= 0 && twice%2 == 0, nil
	})
}
