// Package spectrum provides the frequency-domain checks used to confirm that
// a synthesized test signal contains the tones it was built from.
//
// [Analyzer] wraps an algo-fft plan and returns amplitude-calibrated
// one-sided spectra. [Goertzel] evaluates single frequencies exactly, even
// when they fall between FFT bins. [VerifyTones] combines both into a
// per-tone report plus the strongest off-tone component.
package spectrum
