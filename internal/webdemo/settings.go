package webdemo

import (
	"fmt"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/filter/design/pass"
	"github.com/innabyinna/ad-labs/dsp/filter/median"
	"github.com/innabyinna/ad-labs/dsp/filter/zerophase"
	"github.com/innabyinna/ad-labs/dsp/signal"
)

// FilterKind selects the filter stage applied to the raw trace.
type FilterKind string

const (
	FilterButterworth FilterKind = filterKindButterworth
	FilterMedian      FilterKind = filterKindMedian
)

// Filter stage defaults restored on reset.
const (
	DefaultSampleRate = 1000.0
	DefaultCutoff     = 100.0

	// MaxOrder bounds the Butterworth order accepted from clients.
	MaxOrder = 8
)

// ParseFilterKind maps a filter name to its kind.
func ParseFilterKind(name string) (FilterKind, error) {
	switch FilterKind(name) {
	case FilterButterworth, FilterMedian:
		return FilterKind(name), nil
	default:
		return "", fmt.Errorf("%w: unknown filter kind %q", core.ErrInvalidParameter, name)
	}
}

// FilterConfig holds the parameters of both filter stages. Only the fields
// of the selected Kind are validated and used.
type FilterConfig struct {
	Kind       FilterKind `json:"kind"`
	Order      int        `json:"order"`
	SampleRate float64    `json:"sampleRate"`
	Cutoff     float64    `json:"cutoff"`
	WindowSize int        `json:"windowSize"`
}

// DefaultFilterConfig returns the numeric defaults for the given kind.
func DefaultFilterConfig(kind FilterKind) FilterConfig {
	return FilterConfig{
		Kind:       kind,
		Order:      pass.DefaultOrder,
		SampleRate: DefaultSampleRate,
		Cutoff:     DefaultCutoff,
		WindowSize: median.DefaultWindowSize,
	}
}

// Validate checks the parameters of the selected filter stage.
func (c FilterConfig) Validate() error {
	switch c.Kind {
	case FilterButterworth:
		if c.Order < 1 || c.Order > MaxOrder {
			return fmt.Errorf("%w: butterworth order must be in [1, %d]: %d",
				core.ErrInvalidParameter, MaxOrder, c.Order)
		}
		if !core.IsFinite(c.SampleRate) || c.SampleRate <= 0 {
			return fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrInvalidParameter, c.SampleRate)
		}
		if !core.IsFinite(c.Cutoff) || c.Cutoff <= 0 || c.Cutoff >= c.SampleRate/2 {
			return fmt.Errorf("%w: cutoff must be in (0, %f): %f",
				core.ErrInvalidParameter, c.SampleRate/2, c.Cutoff)
		}
		return nil
	case FilterMedian:
		return median.ValidateWindowSize(c.WindowSize)
	default:
		_, err := ParseFilterKind(string(c.Kind))
		return err
	}
}

// Apply runs the selected filter stage over x.
func (c FilterConfig) Apply(x []float64) ([]float64, error) {
	switch c.Kind {
	case FilterButterworth:
		return zerophase.LowPass(x, c.SampleRate, c.Cutoff, c.Order)
	case FilterMedian:
		return median.Filter(x, c.WindowSize)
	default:
		_, err := ParseFilterKind(string(c.Kind))
		return nil, err
	}
}

// Settings is the complete user-controlled state. An update event replaces
// it wholesale.
type Settings struct {
	Signal       signal.Params `json:"signal"`
	Filter       FilterConfig  `json:"filter"`
	ShowFiltered bool          `json:"showFiltered"`
}

// DefaultSettings returns the reset state for the given filter kind.
func DefaultSettings(kind FilterKind) Settings {
	return Settings{
		Signal:       signal.DefaultParams(),
		Filter:       DefaultFilterConfig(kind),
		ShowFiltered: true,
	}
}

// Validate checks the signal parameters and the selected filter stage.
func (s Settings) Validate() error {
	if err := s.Signal.Validate(); err != nil {
		return err
	}
	return s.Filter.Validate()
}
