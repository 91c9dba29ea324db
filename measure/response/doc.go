// Package response computes zero-phase low-pass magnitude curves for
// display.
//
// The analog Butterworth formula is evaluated on the one-sided DFT grid of
// a given length and squared, which is what forward-backward filtering
// applies. Optional digital curves come from the bilinear biquad cascade of
// the same order, and [Measure] recovers such a curve from an actual
// zero-phase filtering run.
package response
