package signal

import (
	"fmt"
	"math"

	"github.com/innabyinna/ad-labs/dsp/core"
)

// Params describes a harmonic y(t) = A*sin(2*pi*f*t + phi) with optional
// additive Gaussian noise of the given mean and variance.
type Params struct {
	Amplitude     float64 `json:"amplitude"`
	Frequency     float64 `json:"frequency"`
	Phase         float64 `json:"phase"`
	NoiseMean     float64 `json:"noiseMean"`
	NoiseVariance float64 `json:"noiseVariance"`
	NoiseEnabled  bool    `json:"noiseEnabled"`
}

// DefaultParams returns the initial lab values restored on reset.
func DefaultParams() Params {
	return Params{
		Amplitude:     1,
		Frequency:     1,
		Phase:         0,
		NoiseMean:     0,
		NoiseVariance: 0.1,
		NoiseEnabled:  true,
	}
}

// Validate checks p against the harmonic parameter ranges. The phase upper
// bound is inclusive because the UI slider can reach 2*pi.
func (p Params) Validate() error {
	for _, v := range [...]float64{p.Amplitude, p.Frequency, p.Phase, p.NoiseMean, p.NoiseVariance} {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: harmonic parameters must be finite: %+v", core.ErrInvalidParameter, p)
		}
	}
	if p.Amplitude <= 0 {
		return fmt.Errorf("%w: amplitude must be > 0: %f", core.ErrInvalidParameter, p.Amplitude)
	}
	if p.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be > 0: %f", core.ErrInvalidParameter, p.Frequency)
	}
	if p.Phase < 0 || p.Phase > 2*math.Pi {
		return fmt.Errorf("%w: phase must be in [0, 2*pi]: %f", core.ErrInvalidParameter, p.Phase)
	}
	if p.NoiseVariance < 0 {
		return fmt.Errorf("%w: noise variance must be >= 0: %f", core.ErrInvalidParameter, p.NoiseVariance)
	}
	return nil
}

// Generate evaluates the harmonic at every instant of axis and, when noise
// is enabled, adds NoiseMean + sqrt(NoiseVariance)*noise[i]. The noise
// buffer must match the axis length when noise is enabled and is ignored
// otherwise.
func Generate(axis TimeAxis, p Params, noise NoiseBuffer) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.NoiseEnabled && len(noise) != len(axis) {
		return nil, fmt.Errorf("%w: noise buffer length %d does not match time axis length %d",
			core.ErrInvalidParameter, len(noise), len(axis))
	}

	out := make([]float64, len(axis))
	w := 2 * math.Pi * p.Frequency
	for i, t := range axis {
		out[i] = p.Amplitude * math.Sin(w*t+p.Phase)
	}

	if p.NoiseEnabled {
		sigma := math.Sqrt(p.NoiseVariance)
		for i := range out {
			out[i] += p.NoiseMean + sigma*noise[i]
		}
	}
	return out, nil
}
