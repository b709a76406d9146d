package signal

import (
	"fmt"

	"github.com/innabyinna/ad-labs/dsp/core"
)

const (
	// DefaultSamples is the number of samples on the lab time axis.
	DefaultSamples = 1000
	// DefaultDuration is the span of the lab time axis in seconds.
	DefaultDuration = 10.0
)

// TimeAxis is an ordered sequence of sample instants in seconds.
type TimeAxis []float64

// NewTimeAxis returns n evenly spaced instants over [start, stop], both
// endpoints included. A single-sample axis holds only start.
func NewTimeAxis(start, stop float64, n int) (TimeAxis, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: time axis samples must be > 0: %d", core.ErrInvalidParameter, n)
	}
	if !core.IsFinite(start) || !core.IsFinite(stop) {
		return nil, fmt.Errorf("%w: time axis bounds must be finite: [%f, %f]", core.ErrInvalidParameter, start, stop)
	}

	axis := make(TimeAxis, n)
	if n == 1 {
		axis[0] = start
		return axis, nil
	}

	step := (stop - start) / float64(n-1)
	for i := range axis {
		axis[i] = start + float64(i)*step
	}
	axis[n-1] = stop
	return axis, nil
}

// DefaultTimeAxis returns the lab axis: 1000 samples over [0, 10] seconds.
func DefaultTimeAxis() TimeAxis {
	axis, _ := NewTimeAxis(0, DefaultDuration, DefaultSamples)
	return axis
}

// SampleRate returns the number of samples per second implied by the axis
// spacing, or 0 when the axis has fewer than two samples or zero span.
func (a TimeAxis) SampleRate() float64 {
	if len(a) < 2 {
		return 0
	}
	span := a[len(a)-1] - a[0]
	if span == 0 {
		return 0
	}
	return float64(len(a)-1) / span
}
