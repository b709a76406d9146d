// Package spectrum computes one-sided magnitude spectra of real traces.
//
// An Analyzer owns a fixed-size FFT plan, a periodic window, and scratch
// buffers. Traces shorter than the plan are zero-padded; longer traces are
// truncated to the plan size.
package spectrum
