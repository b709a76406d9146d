package pass

import (
	"fmt"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/filter/biquad"
)

// DefaultOrder is the Butterworth order used by the lab filter stage.
const DefaultOrder = 4

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0). It returns nil
// for invalid input; use ButterworthLowpass to learn why.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, secondOrderLP(k, butterworthQ(order, i)))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderLP(k))
	}
	return sections
}

// ButterworthLowpass validates the design request and returns the cascade.
//
// The normalized cutoff cutoff/(sampleRate/2) must lie in (0, 1) and order
// must be >= 1; violations wrap core.ErrInvalidParameter. A design whose
// sections end up non-finite or with poles on or outside the unit circle
// wraps core.ErrUnstable.
func ButterworthLowpass(cutoff float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: butterworth order must be >= 1: %d", core.ErrInvalidParameter, order)
	}
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, sampleRate)
	}
	wn := NormalizedCutoff(cutoff, sampleRate)
	if !core.IsFinite(wn) || wn <= 0 || wn >= 1 {
		return nil, fmt.Errorf("%w: normalized cutoff must be in (0, 1): %f (cutoff %f Hz, sample rate %f Hz)",
			core.ErrInvalidParameter, wn, cutoff, sampleRate)
	}

	sections := ButterworthLP(cutoff, order, sampleRate)
	for i := range sections {
		c := sections[i]
		if !core.AllFinite([]float64{c.B0, c.B1, c.B2, c.A1, c.A2}) || !c.IsStable() {
			return nil, fmt.Errorf("%w: butterworth section %d ill-conditioned at normalized cutoff %g",
				core.ErrUnstable, i, wn)
		}
	}
	return sections, nil
}

// NormalizedCutoff returns cutoff/(sampleRate/2), the cutoff as a fraction
// of the Nyquist frequency.
func NormalizedCutoff(cutoff, sampleRate float64) float64 {
	return cutoff / (sampleRate / 2)
}
