// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections are
// cascaded via [Chain] for higher-order filters such as the Butterworth
// low-pass designed in dsp/filter/design/pass.
//
// Besides running samples through a cascade, a Chain can be primed with the
// steady-state delay line of a constant input, which the zero-phase filter in
// dsp/filter/zerophase uses to suppress start-up transients.
package biquad
