package app

import (
	"fmt"

	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/katalvlaran/massdecomp/decomposer"
)

const (
	FilterNone = "none"
	FilterRDBE = "rdbe"
)

// valences holds the common valence of elements the rdbe filter understands.
var valences = map[string]int{
	"H": 1, "D": 1, "F": 1, "Cl": 1, "Br": 1, "I": 1, "Li": 1, "Na": 1, "K": 1,
	"O": 2, "S": 2, "Se": 2, "Mg": 2, "Ca": 2,
	"N": 3, "P": 3, "B": 3, "As": 3,
	"C": 4, "Si": 4,
}

// buildAlphabet parses the weights and, for the rdbe filter, attaches valences.
func buildAlphabet(spec, filter string) (*alphabet.Ordered[string], error) {
	a, err := alphabet.ParseWeights(spec)
	if err != nil {
		return nil, err
	}
	if filter != FilterRDBE {
		return a, nil
	}

	symbols := a.Symbols()
	weights := make([]float64, len(symbols))
	vs := make([]int, len(symbols))
	for i, sym := range symbols {
		v, ok := valences[sym]
		if !ok {
			return nil, fmt.Errorf("filter %s: no valence known for %s", filter, sym)
		}
		weights[i], vs[i] = a.WeightOf(i), v
	}

	return alphabet.NewWithValences(symbols, weights, vs)
}

// validatorFor returns the validator of a filter, nil for none.
func validatorFor(filter string, a *alphabet.Ordered[string]) (decomposer.Validator[string], error) {
	switch filter {
	case FilterNone:
		return nil, nil
	case FilterRDBE:
		return decomposer.ValenceValidator[string](a), nil
	default:
		return nil, fmt.Errorf("unknown filter %q, allowed are %s, %s", filter, FilterRDBE, FilterNone)
	}
}
