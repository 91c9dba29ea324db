package pass

import (
	"math"

	"github.com/cwbudde/dspcheck/dsp/filter/biquad"
)

// ButterworthMagnitude returns 1/sqrt(1 + (omega/omegaP)^(2*order)).
//
// omega and omegaP are normalized angular frequencies in rad/sample.
// The result is 1 at omega 0 and 1/sqrt(2) at omegaP for every order.
// A non-positive omegaP or order yields NaN.
func ButterworthMagnitude(omega, omegaP float64, order int) float64 {
	if omegaP <= 0 || order <= 0 {
		return math.NaN()
	}

	r := math.Abs(omega) / omegaP
	return 1 / math.Sqrt(1+math.Pow(r, float64(2*order)))
}

// ButterworthMagnitudeHz evaluates ButterworthMagnitude at freqHz for a
// cutoff of cutoffHz at sampleRate.
func ButterworthMagnitudeHz(freqHz, cutoffHz, sampleRate float64, order int) float64 {
	if sampleRate <= 0 {
		return math.NaN()
	}

	return ButterworthMagnitude(2*math.Pi*freqHz/sampleRate, 2*math.Pi*cutoffHz/sampleRate, order)
}

// ButterworthLP designs a digital low-pass Butterworth cascade.
//
// Sections are ordered from the lowest Q to the highest. For odd orders the
// final section is first-order (B2=A2=0). Invalid parameters return nil.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := bilinearK(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}

	return sections
}
