// Package design produces full-polynomial recursive filter coefficients.
//
// Butterworth designs a maximally-flat lowpass, highpass or bandpass filter
// as a single transfer-function polynomial pair (B, A) consumable by
// dsp/filter/iir for streaming processing. The design path is the classic
// one: analog prototype poles, frequency pre-warping, the lowpass-to-target
// analog transform, the bilinear transform into the z-domain, and expansion
// of the pole/zero sets into real polynomials.
//
// Designs that come out numerically unstable are rejected with
// ErrIllConditioned rather than returned in degraded form.
package design
