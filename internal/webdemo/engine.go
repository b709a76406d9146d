package webdemo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/signal"
	"github.com/innabyinna/ad-labs/dsp/spectrum"
	"github.com/innabyinna/ad-labs/dsp/window"
	"github.com/innabyinna/ad-labs/internal/logging"
	"github.com/innabyinna/ad-labs/stats/trace"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	seed     int64
	axis     signal.TimeAxis
	logger   *zap.Logger
	spectrum bool
	window   window.Type
	kind     FilterKind
}

// WithSeed seeds the noise source.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) {
		c.seed = seed
	}
}

// WithTimeAxis replaces the default 1000-sample axis.
func WithTimeAxis(axis signal.TimeAxis) Option {
	return func(c *engineConfig) {
		c.axis = axis
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSpectrum enables magnitude spectra in every frame.
func WithSpectrum(enabled bool) Option {
	return func(c *engineConfig) {
		c.spectrum = enabled
	}
}

// WithSpectrumWindow selects the taper used for spectra. Hann by default.
func WithSpectrumWindow(t window.Type) Option {
	return func(c *engineConfig) {
		c.window = t
	}
}

// WithFilterKind selects the initial filter stage.
func WithFilterKind(kind FilterKind) Option {
	return func(c *engineConfig) {
		c.kind = kind
	}
}

// Engine owns the lab state and recomputes a Frame for every event.
// It is not safe for concurrent use; callers serialize events.
type Engine struct {
	logger   *zap.Logger
	axis     signal.TimeAxis
	noiseGen *signal.Generator
	analyzer *spectrum.Analyzer

	noise    signal.NoiseBuffer
	settings Settings
	frame    Frame
	seq      uint64
}

// NewEngine draws the initial noise buffer and computes the first frame
// from the default settings.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := engineConfig{
		seed:   1,
		axis:   signal.DefaultTimeAxis(),
		logger: zap.NewNop(),
		window: window.TypeHann,
		kind:   FilterButterworth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(cfg.axis) == 0 {
		return nil, fmt.Errorf("%w: time axis must not be empty", core.ErrInvalidParameter)
	}
	if _, err := ParseFilterKind(string(cfg.kind)); err != nil {
		return nil, err
	}

	e := &Engine{
		logger:   cfg.logger,
		axis:     cfg.axis,
		noiseGen: signal.NewGenerator(signal.WithSeed(cfg.seed)),
	}

	if cfg.spectrum {
		if err := e.initSpectrumAnalyzer(cfg.window); err != nil {
			return nil, err
		}
	}

	noise, err := e.noiseGen.Noise(len(e.axis))
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings(cfg.kind)
	frame, err := e.compute(settings, noise)
	if err != nil {
		return nil, fmt.Errorf("initial frame: %w", err)
	}

	e.commit(settings, noise, frame)
	return e, nil
}

// OnEvent applies ev and returns the new frame. On failure the previous
// settings, noise buffer and frame stay in place.
func (e *Engine) OnEvent(ev Event) (Frame, error) {
	if err := ev.validate(); err != nil {
		err = fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
		e.reject(ev, err)
		return Frame{}, err
	}

	var (
		next  Settings
		noise signal.NoiseBuffer
	)
	switch ev.Type {
	case EventUpdate:
		next = *ev.Settings
		noise = e.noise
	case EventReset:
		next = DefaultSettings(e.settings.Filter.Kind)
		next.ShowFiltered = e.settings.ShowFiltered
		var err error
		if noise, err = e.noiseGen.Noise(len(e.axis)); err != nil {
			e.reject(ev, err)
			return Frame{}, err
		}
	}

	frame, err := e.compute(next, noise)
	if err != nil {
		e.reject(ev, err)
		return Frame{}, err
	}

	e.commit(next, noise, frame)
	e.logger.Debug("frame computed",
		zap.String(logging.FieldEvent, string(ev.Type)),
		zap.Uint64(logging.FieldSeq, frame.Seq),
		zap.String("filter", string(next.Filter.Kind)),
	)
	return frame, nil
}

// Frame returns the last successfully computed frame.
func (e *Engine) Frame() Frame { return e.frame }

// Settings returns the committed settings.
func (e *Engine) Settings() Settings { return e.settings }

// Noise returns a copy of the current noise buffer.
func (e *Engine) Noise() signal.NoiseBuffer { return e.noise.Clone() }

// Axis returns the time axis shared by every frame.
func (e *Engine) Axis() signal.TimeAxis { return e.axis }

func (e *Engine) compute(s Settings, noise signal.NoiseBuffer) (Frame, error) {
	if err := s.Validate(); err != nil {
		return Frame{}, err
	}

	raw, err := signal.Generate(e.axis, s.Signal, noise)
	if err != nil {
		return Frame{}, err
	}

	filtered := make([]float64, len(raw))
	if s.ShowFiltered {
		if filtered, err = s.Filter.Apply(raw); err != nil {
			return Frame{}, err
		}
	}

	if !core.AllFinite(raw) || !core.AllFinite(filtered) {
		return Frame{}, fmt.Errorf("%w: traces overflow for amplitude %g", core.ErrInvalidParameter, s.Signal.Amplitude)
	}

	frame := Frame{
		Seq:             e.seq + 1,
		Time:            e.axis,
		Raw:             raw,
		Filtered:        filtered,
		Settings:        s,
		RawSummary:      trace.Calculate(raw),
		FilteredSummary: trace.Calculate(filtered),
	}

	if !frame.RawSummary.IsFinite() || !frame.FilteredSummary.IsFinite() {
		return Frame{}, fmt.Errorf("%w: trace statistics overflow for amplitude %g", core.ErrInvalidParameter, s.Signal.Amplitude)
	}

	if e.analyzer != nil {
		if err := e.fillSpectra(&frame); err != nil {
			return Frame{}, err
		}
	}

	if !core.AllFinite(frame.RawSpectrum) || !core.AllFinite(frame.FilteredSpectrum) {
		return Frame{}, fmt.Errorf("%w: spectrum overflow for amplitude %g", core.ErrInvalidParameter, s.Signal.Amplitude)
	}

	return frame, nil
}

func (e *Engine) commit(s Settings, noise signal.NoiseBuffer, frame Frame) {
	e.settings = s
	e.noise = noise
	e.frame = frame
	e.seq = frame.Seq
}

func (e *Engine) reject(ev Event, err error) {
	e.logger.Warn("event rejected",
		zap.String(logging.FieldEvent, string(ev.Type)),
		zap.Uint64(logging.FieldSeq, e.seq),
		zap.Bool("invalidParameter", errors.Is(err, core.ErrInvalidParameter)),
		zap.Error(err),
	)
}
