// Package zerophase applies IIR biquad cascades forward and backward so the
// result has no phase distortion.
//
// The signal is extended at both ends by odd reflection, each pass starts
// from the steady-state delay line matching its first sample, and the
// extension is stripped afterwards. The effective magnitude response is the
// square of the cascade's response.
package zerophase
