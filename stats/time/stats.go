// Package time summarizes time-domain signals.
package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/dspcheck/dsp/core"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int // first index reaching Peak
	CrestFactor    float64
	CrestFactor_dB float64
	Energy         float64 // sum of squares
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	nf := float64(n)
	energy := vecmath.DotProduct(signal, signal)
	rms := math.Sqrt(energy / nf)
	peak := vecmath.MaxAbs(signal)

	s := Stats{
		Length:         n,
		DC:             vecmath.Sum(signal) / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           peak,
		Peak_dB:        core.LinearToDB(peak),
		PeakPos:        peakPos(signal, peak),
		Energy:         energy,
		CrestFactor_dB: math.Inf(-1),
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = core.LinearToDB(s.CrestFactor)
	}
	return s
}

func peakPos(signal []float64, peak float64) int {
	for i, x := range signal {
		if math.Abs(x) == peak {
			return i
		}
	}
	return 0
}
