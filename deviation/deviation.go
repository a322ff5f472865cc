package deviation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDeviation indicates a negative, NaN or infinite tolerance component.
var ErrInvalidDeviation = errors.New("deviation: ppm and absolute error must be finite and non-negative")

// Deviation is a mass tolerance: PPM parts per million, but never less than Absolute.
type Deviation struct {
	PPM      float64
	Absolute float64
}

// New validates and returns a Deviation.
func New(ppm, absolute float64) (Deviation, error) {
	d := Deviation{PPM: ppm, Absolute: absolute}
	if err := d.Validate(); err != nil {
		return Deviation{}, err
	}

	return d, nil
}

// MustNew is New for constant arguments; it panics on invalid input.
func MustNew(ppm, absolute float64) Deviation {
	d, err := New(ppm, absolute)
	if err != nil {
		panic(err)
	}

	return d
}

// PPMOnly returns a purely relative tolerance.
func PPMOnly(ppm float64) Deviation { return Deviation{PPM: ppm} }

// Validate reports ErrInvalidDeviation for unusable components.
func (d Deviation) Validate() error {
	if !finiteNonNegative(d.PPM) || !finiteNonNegative(d.Absolute) {
		return fmt.Errorf("deviation: ppm=%v abs=%v: %w", d.PPM, d.Absolute, ErrInvalidDeviation)
	}

	return nil
}

// AbsoluteFor returns the allowed absolute error around mass.
func (d Deviation) AbsoluteFor(mass float64) float64 {
	return math.Max(math.Abs(mass)*d.PPM*1e-6, d.Absolute)
}

// Window returns the inclusive mass interval [mass-err, mass+err], with the
// lower end clamped at zero.
func (d Deviation) Window(mass float64) (from, to float64) {
	e := d.AbsoluteFor(mass)

	return math.Max(0, mass-e), mass + e
}

// Within reports whether measured lies inside the tolerance around theoretical.
func (d Deviation) Within(measured, theoretical float64) bool {
	return math.Abs(measured-theoretical) <= d.AbsoluteFor(theoretical)
}

// PPMError returns the signed relative error (measured-theoretical)/measured in ppm.
func PPMError(measured, theoretical float64) float64 {
	if measured == 0 {
		return 0
	}

	return (measured - theoretical) / measured * 1e6
}

// String renders "10 ppm (0.001)".
func (d Deviation) String() string {
	return fmt.Sprintf("%g ppm (%g)", d.PPM, d.Absolute)
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
