// Package biquad runs cascades of second-order IIR sections.
//
// A [Section] is Direct Form II Transposed. A [Chain] feeds the sections in
// series and is what the Butterworth designer in dsp/filter/design/pass
// returns coefficients for. [Chain.MagnitudeSquared] evaluates the cascade
// analytically, which is also the zero-phase (forward-backward) magnitude
// of the same cascade before squaring.
package biquad
