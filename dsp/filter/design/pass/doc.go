// Package pass designs low-pass IIR filters as cascades of biquad sections.
//
// The Butterworth design places the analog prototype poles evenly on the
// unit circle in the left half s-plane, pairs them into second-order
// sections with Q = 1/(2*sin(theta)), and maps each section to the z-plane
// with the bilinear transform prewarped at the cutoff frequency.
package pass
