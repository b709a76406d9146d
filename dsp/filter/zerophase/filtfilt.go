package zerophase

import (
	"fmt"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/filter/biquad"
	"github.com/innabyinna/ad-labs/dsp/filter/design/pass"
)

// PadLen returns the number of reflected samples added to each end of the
// input for a cascade of numSections sections.
func PadLen(numSections int) int {
	return 3 * (2*numSections + 1)
}

// LowPass designs a Butterworth low-pass of the given order and applies it
// with Filter. x is not modified.
func LowPass(x []float64, sampleRate, cutoff float64, order int) ([]float64, error) {
	sections, err := pass.ButterworthLowpass(cutoff, order, sampleRate)
	if err != nil {
		return nil, err
	}

	return Filter(sections, x)
}

// Filter runs the cascade over x forward then backward and returns a new
// slice of len(x). x is not modified.
//
// x must be longer than PadLen(len(sections)). Sections without a finite DC
// gain, sections with poles on or outside the unit circle, and non-finite
// output all wrap core.ErrUnstable.
func Filter(sections []biquad.Coefficients, x []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: zerophase: no filter sections", core.ErrInvalidParameter)
	}
	padLen := PadLen(len(sections))
	if len(x) <= padLen {
		return nil, fmt.Errorf("%w: zerophase: input length %d must exceed pad length %d",
			core.ErrInvalidParameter, len(x), padLen)
	}
	if !core.AllFinite(x) {
		return nil, fmt.Errorf("%w: zerophase: input contains non-finite samples", core.ErrInvalidParameter)
	}

	chain := biquad.NewChain(sections)
	for i := 0; i < chain.NumSections(); i++ {
		s := chain.Section(i)
		if _, ok := s.DCGain(); !ok {
			return nil, fmt.Errorf("%w: zerophase: section %d has no finite DC gain", core.ErrUnstable, i)
		}
		if !s.IsStable() {
			return nil, fmt.Errorf("%w: zerophase: section %d has poles outside the unit circle", core.ErrUnstable, i)
		}
	}

	ext := oddExtend(x, padLen)

	runPass(chain, ext)
	core.Reverse(ext)
	runPass(chain, ext)
	core.Reverse(ext)

	out := core.Clone(ext[padLen : padLen+len(x)])
	if !core.AllFinite(out) {
		return nil, fmt.Errorf("%w: zerophase: output contains non-finite samples", core.ErrUnstable)
	}

	return out, nil
}

// runPass filters buf in place starting from the steady state for buf[0].
func runPass(chain *biquad.Chain, buf []float64) {
	chain.Reset()
	chain.PrimeSteadyState(buf[0])
	chain.ProcessBlock(buf)
}

// oddExtend returns x with padLen samples mirrored through each endpoint:
// 2*x[0]-x[padLen..1] before and 2*x[n-1]-x[n-2..n-1-padLen] after.
func oddExtend(x []float64, padLen int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*padLen)

	first, last := x[0], x[n-1]
	for i := 0; i < padLen; i++ {
		ext[i] = 2*first - x[padLen-i]
		ext[padLen+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[padLen:], x)

	return ext
}
