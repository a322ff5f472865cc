package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/katalvlaran/massdecomp/alphabet"
	"github.com/katalvlaran/massdecomp/decomposer"
	"github.com/katalvlaran/massdecomp/deviation"
	"golang.org/x/sync/errgroup"
)

// cancelCheck is how many pulls an iterator makes between context checks.
const cancelCheck = 1024

// Hit is one formula explaining a queried mass.
type Hit struct {
	Formula string
	Mass    float64 // theoretical mass of the formula
	Error   float64 // neutral queried mass − theoretical
	PPM     float64
}

// Runner decomposes masses against one shared decomposer.
type Runner struct {
	alphabet   *alphabet.Ordered[string]
	decomposer *decomposer.Decomposer[string]
	deviation  deviation.Deviation
	bounds     map[string]alphabet.Interval
	ion        Ion
	massErrors bool
	workers    int
}

// NewRunner parses the alphabet, bounds and ion of cfg and builds the
// decomposer with the validator of the configured filter.
func NewRunner(cfg *SearchConfig) (*Runner, error) {
	a, err := buildAlphabet(cfg.Alphabet, cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}

	ion, err := ParseIon(cfg.Ion)
	if err != nil {
		return nil, err
	}

	validator, err := validatorFor(cfg.Filter, a)
	if err != nil {
		return nil, err
	}

	dev, err := deviation.New(cfg.PPM, cfg.Absolute)
	if err != nil {
		return nil, err
	}

	bounds, err := buildBounds(a, cfg.Bounds, cfg.Parent)
	if err != nil {
		return nil, err
	}

	d, err := decomposer.New[string](a, decomposer.WithPrecision(cfg.Precision))
	if err != nil {
		return nil, fmt.Errorf("decomposer: %w", err)
	}

	return &Runner{
		alphabet:   a,
		decomposer: d.WithValidator(validator),
		deviation:  dev,
		bounds:     bounds,
		ion:        ion,
		massErrors: cfg.MassErrors,
		workers:    cfg.Workers,
	}, nil
}

// buildBounds reads the bound expression and caps every symbol at its count
// in the parent formula. A symbol the parent lacks is capped at zero.
func buildBounds(a *alphabet.Ordered[string], expr, parent string) (map[string]alphabet.Interval, error) {
	bounds := alphabet.NewMap[string, alphabet.Interval](a)
	if expr != "" {
		var err error
		if bounds, err = alphabet.ParseBounds(a, expr); err != nil {
			return nil, fmt.Errorf("bounds: %w", err)
		}
	}
	if parent == "" {
		return bounds, nil
	}

	counts, err := alphabet.ParseFormula(a, parent)
	if err != nil {
		return nil, fmt.Errorf("parent: %w", err)
	}
	for _, sym := range a.Symbols() {
		iv, ok := bounds[sym]
		if !ok {
			iv = alphabet.AtLeast(0)
		}
		iv = iv.Intersect(alphabet.AtMost(counts[sym]))
		if err := iv.Validate(); err != nil {
			return nil, fmt.Errorf("parent %s leaves no room for %s: %w", parent, sym, err)
		}
		bounds[sym] = iv
	}

	return bounds, nil
}

// Query converts the precursor m/z to a neutral mass and returns the formulas
// within tolerance of it, closest first.
func (r *Runner) Query(ctx context.Context, mz float64) ([]Hit, error) {
	mass := r.ion.Neutral(mz)
	log := slog.With(slog.String("job_id", uuid.New().String()), slog.Float64("mz", mz))
	log.Debug("decomposing",
		slog.String("ion", r.ion.Name),
		slog.Float64("mass", mass),
		slog.String("deviation", r.deviation.String()))

	it, err := r.decomposer.IterateMass(mass, r.deviation, r.bounds)
	if err != nil {
		log.Error("query rejected", slog.Any("error", err))
		return nil, err
	}

	var hits []Hit
	for n := 1; it.Next(); n++ {
		if n%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c := it.Compomere()
		theoretical := r.decomposer.Mass(c)
		hits = append(hits, Hit{
			Formula: alphabet.Format[string](r.alphabet, it.Order(), c),
			Mass:    theoretical,
			Error:   mass - theoretical,
			PPM:     deviation.PPMError(mass, theoretical),
		})
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		ei, ej := math.Abs(hits[i].Error), math.Abs(hits[j].Error)
		if ei != ej {
			return ei < ej
		}
		return hits[i].Formula < hits[j].Formula
	})
	log.Info("decomposed", slog.Int("formulas", len(hits)))

	return hits, nil
}

// Run queries every mass concurrently and writes the results to w in
// argument order. With several masses each block starts with a "# mass" line.
func (r *Runner) Run(ctx context.Context, masses []float64, w io.Writer) error {
	results := make([][]Hit, len(masses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, m := range masses {
		g.Go(func() error {
			hits, err := r.Query(gctx, m)
			if err != nil {
				return fmt.Errorf("mass %v: %w", m, err)
			}
			results[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, hits := range results {
		if len(masses) > 1 {
			if _, err := fmt.Fprintf(w, "# %v\n", masses[i]); err != nil {
				return err
			}
		}
		for _, h := range hits {
			if err := r.writeHit(w, h); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Runner) writeHit(w io.Writer, h Hit) error {
	var err error
	if r.massErrors {
		_, err = fmt.Fprintf(w, "%s\t%.6f\t%.2f\n", h.Formula, h.Error, h.PPM)
	} else {
		_, err = fmt.Fprintln(w, h.Formula)
	}

	return err
}
