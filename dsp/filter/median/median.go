package median

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/innabyinna/ad-labs/dsp/core"
)

// DefaultWindowSize is the window length used by the lab filter stage.
const DefaultWindowSize = 5

// ValidateWindowSize reports whether windowSize is a positive odd number.
func ValidateWindowSize(windowSize int) error {
	if windowSize <= 0 || windowSize%2 == 0 {
		return fmt.Errorf("%w: median window size must be a positive odd number: %d",
			core.ErrInvalidParameter, windowSize)
	}
	return nil
}

// Filter returns a new slice of len(x) where out[i] is the median of
// x[i-h..i+h] for h = windowSize/2 and h <= i < len(x)-h. Every other
// output sample is zero. x is not modified.
func Filter(x []float64, windowSize int) ([]float64, error) {
	if err := ValidateWindowSize(windowSize); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	half := windowSize / 2
	window := make([]float64, windowSize)
	for i := half; i < len(x)-half; i++ {
		copy(window, x[i-half:i+half+1])
		out[i] = Of(window)
	}

	return out, nil
}

// Of sorts data in place and returns its median. For odd lengths this is
// the middle element. It returns 0 for empty input.
func Of(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sort.Float64s(data)
	return stat.Quantile(0.5, stat.Empirical, data, nil)
}
