package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/dspcheck/dsp/core"
	"github.com/cwbudde/dspcheck/dsp/filter/biquad"
	"github.com/cwbudde/dspcheck/dsp/filter/design/pass"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultCutoff is the low-pass cutoff in Hz.
	DefaultCutoff = 4000.0
	// DefaultDFTLen sets the frequency resolution to fs/DefaultDFTLen.
	DefaultDFTLen = 4096
)

// DefaultOrders are the filter orders drawn on one figure.
var DefaultOrders = []int{4, 8, 16, 32}

// Kind tells where a curve comes from.
type Kind int

const (
	// Analog is the ideal Butterworth formula.
	Analog Kind = iota
	// Digital is the bilinear biquad cascade.
	Digital
	// Measured is a Digital cascade observed through zero-phase filtering.
	Measured
)

func (k Kind) String() string {
	switch k {
	case Analog:
		return "analog"
	case Digital:
		return "digital"
	case Measured:
		return "measured"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Config holds the response parameters.
type Config struct {
	SampleRate float64
	Cutoff     float64
	Orders     []int
	DFTLen     int
	// Digital adds one Digital curve per order after the Analog ones.
	Digital bool
}

// DefaultConfig returns the standard response figure setup at sampleRate.
func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate: sampleRate,
		Cutoff:     DefaultCutoff,
		Orders:     append([]int(nil), DefaultOrders...),
		DFTLen:     DefaultDFTLen,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("response: sample rate must be > 0: %f", c.SampleRate)
	}
	if c.Cutoff <= 0 || c.Cutoff >= core.Nyquist(c.SampleRate) {
		return fmt.Errorf("response: cutoff must be in (0, %g): %f", core.Nyquist(c.SampleRate), c.Cutoff)
	}
	if c.DFTLen < 2 {
		return fmt.Errorf("response: dft length must be >= 2: %d", c.DFTLen)
	}
	if len(c.Orders) == 0 {
		return errors.New("response: no filter orders")
	}
	for _, o := range c.Orders {
		if o <= 0 {
			return fmt.Errorf("response: filter order must be > 0: %d", o)
		}
	}
	return nil
}

// Curve is one zero-phase magnitude response, linear and already squared.
type Curve struct {
	Order     int
	Kind      Kind
	FreqHz    []float64
	Magnitude []float64
}

// DB converts Magnitude with 20*log10. Zeros map to -Inf.
func (c Curve) DB() []float64 {
	return core.LinearToDBSlice(nil, c.Magnitude)
}

// Label is the legend text for the curve.
func (c Curve) Label() string {
	if c.Kind == Analog {
		return fmt.Sprintf("order %d", c.Order)
	}
	return fmt.Sprintf("order %d (%s)", c.Order, c.Kind)
}

// At returns the magnitude at the grid point closest to freqHz.
func (c Curve) At(freqHz float64) float64 {
	if len(c.FreqHz) == 0 {
		return math.NaN()
	}
	step := c.FreqHz[len(c.FreqHz)-1] / float64(len(c.FreqHz)-1)
	k := int(math.Round(freqHz / step))
	k = max(0, min(k, len(c.FreqHz)-1))
	return c.Magnitude[k]
}

// FrequencyGrid returns dftLen/2+1 evenly spaced frequencies from 0 to
// sampleRate/2, the one-sided bins of a dftLen-point DFT.
func FrequencyGrid(sampleRate float64, dftLen int) []float64 {
	return floats.Span(make([]float64, dftLen/2+1), 0, core.Nyquist(sampleRate))
}

// Compute returns one Analog curve per order, followed by one Digital curve
// per order when cfg.Digital is set.
func Compute(cfg Config) ([]Curve, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	freqs := FrequencyGrid(cfg.SampleRate, cfg.DFTLen)
	wp := 2 * math.Pi * cfg.Cutoff / cfg.SampleRate

	curves := make([]Curve, 0, 2*len(cfg.Orders))
	for _, order := range cfg.Orders {
		mag := make([]float64, len(freqs))
		for i, f := range freqs {
			h := pass.ButterworthMagnitude(2*math.Pi*f/cfg.SampleRate, wp, order)
			mag[i] = h * h
		}
		curves = append(curves, Curve{Order: order, Kind: Analog, FreqHz: freqs, Magnitude: mag})
	}

	if cfg.Digital {
		for _, order := range cfg.Orders {
			c, err := digitalCurve(cfg, order, freqs)
			if err != nil {
				return nil, err
			}
			curves = append(curves, c)
		}
	}

	return curves, nil
}

func digitalCurve(cfg Config, order int, freqs []float64) (Curve, error) {
	sections := pass.ButterworthLP(cfg.Cutoff, order, cfg.SampleRate)
	if sections == nil {
		return Curve{}, fmt.Errorf("response: cannot design order %d at %g Hz", order, cfg.Cutoff)
	}
	chain := biquad.NewChain(sections)

	mag := make([]float64, len(freqs))
	for i, f := range freqs {
		// One pass contributes |H|, the reverse pass the same again.
		mag[i] = chain.MagnitudeSquared(f, cfg.SampleRate)
	}
	return Curve{Order: order, Kind: Digital, FreqHz: freqs, Magnitude: mag}, nil
}
