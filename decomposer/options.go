package decomposer

import (
	"math"
)

// Option configures a Decomposer at construction.
// Option constructors panic on meaningless values; New never panics.
type Option func(*options)

type options struct {
	precision   float64
	maxResidues int64
}

const (
	panicPrecisionInvalid   = "decomposer: WithPrecision requires a finite value > 0"
	panicMaxResiduesInvalid = "decomposer: WithMaxResidues requires n >= 1"
)

func defaultOptions() options {
	return options{
		precision:   DefaultPrecision,
		maxResidues: DefaultMaxResidues,
	}
}

// WithPrecision sets the mass represented by one integer unit (default DefaultPrecision).
// Finer precision means stronger pruning but larger residue tables.
func WithPrecision(p float64) Option {
	if !(p > 0) || math.IsInf(p, 1) {
		panic(panicPrecisionInvalid)
	}

	return func(o *options) { o.precision = p }
}

// WithMaxResidues caps the residue table row count (default DefaultMaxResidues).
// New fails with ErrTableTooLarge when the scaled smallest weight exceeds n.
func WithMaxResidues(n int64) Option {
	if n < 1 {
		panic(panicMaxResiduesInvalid)
	}

	return func(o *options) { o.maxResidues = n }
}
