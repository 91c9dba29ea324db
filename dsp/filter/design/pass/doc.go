// Package pass designs Butterworth low-pass responses.
//
// [ButterworthMagnitude] is the analog prototype evaluated on a normalized
// digital frequency axis, the formula used for plotting theoretical
// responses. [ButterworthLP] is the realizable counterpart: a bilinear
// biquad cascade for dsp/filter/biquad whose magnitude is -3.01 dB at the
// cutoff.
package pass
