// Package window generates generalized cosine window functions.
package window

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// Cosine-sum coefficients: w(x) = sum_k c[k]*cos(2*pi*k*x), x in [0, 1].
var cosineTerms = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
}

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic      bool
	peakNormalize bool
}

// WithPeriodic generates the periodic (DFT-even) form instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// WithPeakNormalize scales the window so its largest coefficient is 1.
// Symmetric windows of even length otherwise peak slightly below 1.
func WithPeakNormalize() Option {
	return func(c *config) { c.peakNormalize = true }
}

// Generate returns size coefficients of window t.
func Generate(t Type, size int, opts ...Option) ([]float64, error) {
	terms, ok := cosineTerms[t]
	if !ok {
		return nil, fmt.Errorf("window: unknown type %v", t)
	}
	return Cosine(terms, size, opts...)
}

// Hann returns a Hann window of the given size.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...)
}

// Cosine returns a generalized cosine window with the given terms.
func Cosine(terms []float64, size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("window: no cosine terms")
	}

	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	w := make([]float64, size)
	for n := range w {
		w[n] = cosineAt(samplePosition(n, size, cfg.periodic), terms)
	}

	if cfg.peakNormalize {
		if peak := vecmath.MaxAbs(w); peak > 0 {
			vecmath.ScaleBlockInPlace(w, 1/peak)
		}
	}
	return w, nil
}

// Apply multiplies buf by coeffs in place.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window: %d samples for %d coefficients", len(buf), len(coeffs))
	}
	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// CoherentGain returns the mean coefficient, the amplitude a windowed
// bin-centred tone keeps.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return vecmath.Sum(coeffs) / float64(len(coeffs))
}

func cosineAt(x float64, terms []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range terms {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
