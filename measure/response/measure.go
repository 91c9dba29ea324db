package response

import (
	"fmt"
	"math"

	"github.com/cwbudde/dspcheck/dsp/filter/design/pass"
	"github.com/cwbudde/dspcheck/dsp/filter/zerophase"
	"github.com/cwbudde/dspcheck/dsp/spectrum"
	"gonum.org/v1/gonum/floats"
)

// Measure runs a centred unit impulse of cfg.DFTLen samples through the
// zero-phase digital cascade of the given order and returns the magnitude
// of its DFT. cfg.DFTLen must be a power of two and long enough to hold the
// two-sided impulse response; cfg.Orders and cfg.Digital are ignored.
func Measure(cfg Config, order int) (Curve, error) {
	cfg.Orders = []int{order}
	if err := cfg.Validate(); err != nil {
		return Curve{}, err
	}

	sections := pass.ButterworthLP(cfg.Cutoff, order, cfg.SampleRate)
	if sections == nil {
		return Curve{}, fmt.Errorf("response: cannot design order %d at %g Hz", order, cfg.Cutoff)
	}

	an, err := spectrum.NewAnalyzer(cfg.DFTLen, cfg.SampleRate)
	if err != nil {
		return Curve{}, fmt.Errorf("response: %w", err)
	}

	x := make([]float64, cfg.DFTLen)
	x[cfg.DFTLen/2] = 1

	y, err := zerophase.Filter(sections, x)
	if err != nil {
		return Curve{}, fmt.Errorf("response: order %d: %w", order, err)
	}

	mag, err := an.Amplitude(y)
	if err != nil {
		return Curve{}, fmt.Errorf("response: %w", err)
	}
	// Amplitude divides by N; an impulse needs the unnormalized DFT.
	floats.Scale(float64(cfg.DFTLen), mag)

	return Curve{
		Order:     order,
		Kind:      Measured,
		FreqHz:    FrequencyGrid(cfg.SampleRate, cfg.DFTLen),
		Magnitude: mag,
	}, nil
}

// MaxDeviationDB returns the largest absolute dB difference between a and b
// over grid points where both are above floorDB.
func MaxDeviationDB(a, b Curve, floorDB float64) (float64, error) {
	if len(a.Magnitude) != len(b.Magnitude) {
		return 0, fmt.Errorf("response: curve lengths differ: %d vs %d", len(a.Magnitude), len(b.Magnitude))
	}

	da, db := a.DB(), b.DB()
	worst := 0.0
	for i := range da {
		if da[i] < floorDB || db[i] < floorDB {
			continue
		}
		worst = math.Max(worst, math.Abs(da[i]-db[i]))
	}
	return worst, nil
}
