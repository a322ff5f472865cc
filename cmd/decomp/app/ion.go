package app

import (
	"fmt"
	"sort"
	"strings"
)

const (
	protonMass   = 1.00727646688
	electronMass = 0.00054857990946
)

// DefaultIon is the precursor ion type assumed for input masses.
const DefaultIon = "[M+H]+"

// Ion converts a singly charged precursor m/z to the neutral mass it carries.
type Ion struct {
	Name   string
	adduct float64 // ion mass − neutral mass
}

// ions are the supported precursor ion types. "[M]" treats the input as a
// neutral mass.
var ions = map[string]Ion{
	"[M]":      {Name: "[M]"},
	"[M]+":     {Name: "[M]+", adduct: -electronMass},
	"[M]-":     {Name: "[M]-", adduct: electronMass},
	"[M+H]+":   {Name: "[M+H]+", adduct: protonMass},
	"[M-H]-":   {Name: "[M-H]-", adduct: -protonMass},
	"[M+Na]+":  {Name: "[M+Na]+", adduct: 22.98976928 - electronMass},
	"[M+K]+":   {Name: "[M+K]+", adduct: 38.96370668 - electronMass},
	"[M+NH4]+": {Name: "[M+NH4]+", adduct: 18.03437413 - electronMass},
	"[M+Cl]-":  {Name: "[M+Cl]-", adduct: 34.96885268 + electronMass},
}

// ParseIon looks up a precursor ion type such as "[M+H]+". Spaces are ignored.
func ParseIon(name string) (Ion, error) {
	ion, ok := ions[strings.ReplaceAll(name, " ", "")]
	if !ok {
		known := make([]string, 0, len(ions))
		for k := range ions {
			known = append(known, k)
		}
		sort.Strings(known)
		return Ion{}, fmt.Errorf("unknown ion %q, allowed are %s", name, strings.Join(known, ", "))
	}

	return ion, nil
}

// Neutral returns the neutral mass of a precursor with the given m/z.
func (i Ion) Neutral(mz float64) float64 { return mz - i.adduct }
