// Package frequency summarizes magnitude spectra and frequency responses
// sampled on an ascending frequency grid.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds shape descriptors of a linear magnitude curve.
//
//nolint:revive
type Stats struct {
	Points    int
	Peak      float64
	PeakFreq  float64
	Peak_dB   float64
	Centroid  float64 // Hz
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // Hz below which 85% of the energy lies
	Bandwidth float64 // -3 dB width around the peak, Hz
}

const (
	// DefaultRolloff is the energy fraction used by Calculate.
	DefaultRolloff = 0.85
	// HalfPowerDB is 20*log10(sqrt(2)), the level drop that defines
	// Bandwidth.
	HalfPowerDB = 3.010299956639812
)

// Calculate computes all descriptors. freqs and magnitude must have equal
// length; an empty or mismatched input yields a zero Stats with Peak_dB at
// -Inf.
func Calculate(freqs, magnitude []float64) Stats {
	if len(freqs) == 0 || len(freqs) != len(magnitude) {
		return Stats{Peak_dB: math.Inf(-1)}
	}

	i := floats.MaxIdx(magnitude)
	return Stats{
		Points:    len(magnitude),
		Peak:      magnitude[i],
		PeakFreq:  freqs[i],
		Peak_dB:   toDB(magnitude[i]),
		Centroid:  Centroid(freqs, magnitude),
		Flatness:  Flatness(magnitude),
		Rolloff:   Rolloff(freqs, magnitude, DefaultRolloff),
		Bandwidth: Bandwidth(freqs, magnitude),
	}
}

// Centroid returns the magnitude-weighted mean frequency.
func Centroid(freqs, magnitude []float64) float64 {
	sum := floats.Sum(magnitude)
	if sum == 0 || len(freqs) != len(magnitude) {
		return 0
	}
	return floats.Dot(freqs, magnitude) / sum
}

// Flatness returns the ratio of geometric to arithmetic mean of the power
// spectrum. A zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}

	logSum, sum := 0.0, 0.0
	for _, v := range magnitude {
		p := v * v
		if p == 0 {
			return 0
		}
		logSum += math.Log(p)
		sum += p
	}

	n := float64(len(magnitude))
	return math.Exp(logSum/n) / (sum / n)
}

// Rolloff returns the frequency below which fraction (0..1) of the energy
// lies.
func Rolloff(freqs, magnitude []float64, fraction float64) float64 {
	if len(magnitude) == 0 || len(freqs) != len(magnitude) {
		return 0
	}
	total := floats.Dot(magnitude, magnitude)
	if total == 0 {
		return 0
	}

	threshold := fraction * total
	acc := 0.0
	for i, v := range magnitude {
		acc += v * v
		if acc >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// EdgeFrequency returns the first frequency above the peak where magnitude
// falls levelDB below it, linearly interpolated between grid points.
// It reports false if the curve never falls that far.
func EdgeFrequency(freqs, magnitude []float64, levelDB float64) (float64, bool) {
	if len(magnitude) < 2 || len(freqs) != len(magnitude) {
		return 0, false
	}

	peak := floats.MaxIdx(magnitude)
	threshold := magnitude[peak] * math.Pow(10, -math.Abs(levelDB)/20)
	for i := peak; i < len(magnitude)-1; i++ {
		if magnitude[i] > threshold && magnitude[i+1] <= threshold {
			return interp(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold), true
		}
	}
	return 0, false
}

// Bandwidth returns the -3 dB width around the peak. Edges that are never
// crossed fall back to the ends of the grid.
func Bandwidth(freqs, magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 || len(freqs) != n {
		return 0
	}

	peak := floats.MaxIdx(magnitude)
	if magnitude[peak] == 0 {
		return 0
	}
	threshold := magnitude[peak] / math.Sqrt2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interp(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	if f, ok := EdgeFrequency(freqs, magnitude, HalfPowerDB); ok {
		upper = f
	}

	return max(upper-lower, 0)
}

func interp(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
