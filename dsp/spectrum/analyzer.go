package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/window"
)

const (
	// DefaultSize is the FFT length used for 1000-sample lab traces.
	DefaultSize = 1024
	// DefaultFloorDB clamps silent bins.
	DefaultFloorDB = -130.0
)

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	window  window.Type
	floorDB float64
}

// WithWindow selects the taper applied before the FFT. Hann by default.
func WithWindow(t window.Type) Option {
	return func(c *analyzerConfig) {
		c.window = t
	}
}

// WithFloorDB sets the lowest level reported for any bin.
func WithFloorDB(db float64) Option {
	return func(c *analyzerConfig) {
		if core.IsFinite(db) {
			c.floorDB = db
		}
	}
}

// Analyzer turns real traces into one-sided amplitude spectra in dB.
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	size    int
	cfg     analyzerConfig
	plan    *algofft.Plan[complex128]
	in, out []complex128
	re, im  []float64
	mag     []float64
}

// NewAnalyzer builds an analyzer with an FFT plan of the given size.
func NewAnalyzer(size int, opts ...Option) (*Analyzer, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: spectrum size must be >= 2: %d", core.ErrInvalidParameter, size)
	}

	cfg := analyzerConfig{window: window.TypeHann, floorDB: DefaultFloorDB}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	bins := size/2 + 1
	return &Analyzer{
		size: size,
		cfg:  cfg,
		plan: plan,
		in:   make([]complex128, size),
		out:  make([]complex128, size),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
		mag:  make([]float64, bins),
	}, nil
}

// Window returns the taper applied before the FFT.
func (a *Analyzer) Window() window.Type { return a.cfg.window }

// NoiseBandwidth returns the equivalent noise bandwidth in Hz of one bin for
// an input of n samples. Inputs longer than Size are truncated, shorter ones
// are zero-padded and keep the resolution of their own length.
func (a *Analyzer) NoiseBandwidth(n int, sampleRate float64) (float64, error) {
	if n <= 0 || sampleRate <= 0 {
		return 0, fmt.Errorf("%w: noise bandwidth needs n > 0 and sample rate > 0: %d, %f",
			core.ErrInvalidParameter, n, sampleRate)
	}
	if n > a.size {
		n = a.size
	}

	bins, err := window.EquivalentNoiseBandwidth(window.Generate(a.cfg.window, n, window.WithPeriodic()))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
	}
	return bins * sampleRate / float64(n), nil
}

// Size returns the FFT length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of one-sided bins, Size()/2+1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// Frequencies returns the centre frequency of each one-sided bin.
func (a *Analyzer) Frequencies(sampleRate float64) []float64 {
	out := make([]float64, a.Bins())
	binHz := sampleRate / float64(a.size)
	for i := range out {
		out[i] = float64(i) * binHz
	}
	return out
}

// MagnitudeDB returns the windowed one-sided amplitude spectrum of x in dB.
// A sinusoid of amplitude A centred on a bin reads 20*log10(A).
func (a *Analyzer) MagnitudeDB(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("%w: spectrum input is empty", core.ErrInvalidParameter)
	}
	if n > a.size {
		n = a.size
	}
	if !core.AllFinite(x[:n]) {
		return nil, fmt.Errorf("%w: spectrum input contains non-finite samples", core.ErrInvalidParameter)
	}

	win := window.Generate(a.cfg.window, n, window.WithPeriodic())
	gain, err := window.CoherentGain(win)
	if err != nil || gain == 0 {
		return nil, fmt.Errorf("%w: spectrum window has zero coherent gain", core.ErrInvalidParameter)
	}
	framed, err := window.ApplyCoefficients(x[:n], win)
	if err != nil {
		return nil, err
	}

	for i := range a.in {
		if i < n {
			a.in[i] = complex(framed[i], 0)
		} else {
			a.in[i] = 0
		}
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}
	MagnitudeFromParts(a.mag, a.re, a.im)

	scale := 2 / (float64(n) * gain)
	last := len(a.mag) - 1
	out := make([]float64, len(a.mag))
	for i, m := range a.mag {
		s := scale
		if i == 0 || (i == last && a.size%2 == 0) {
			s = scale / 2
		}
		db := core.LinearToDB(m * s)
		out[i] = math.Max(db, a.cfg.floorDB)
	}

	return out, nil
}
