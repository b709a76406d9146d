package webdemo

import (
	"fmt"

	"github.com/innabyinna/ad-labs/dsp/spectrum"
	"github.com/innabyinna/ad-labs/dsp/window"
)

func (e *Engine) initSpectrumAnalyzer(win window.Type) error {
	size := spectrumSize(len(e.axis))

	a, err := spectrum.NewAnalyzer(size, spectrum.WithWindow(win))
	if err != nil {
		return fmt.Errorf("spectrum init: %w", err)
	}

	e.analyzer = a
	return nil
}

func (e *Engine) fillSpectra(f *Frame) error {
	rawDB, err := e.analyzer.MagnitudeDB(f.Raw)
	if err != nil {
		return fmt.Errorf("raw spectrum: %w", err)
	}

	filteredDB, err := e.analyzer.MagnitudeDB(f.Filtered)
	if err != nil {
		return fmt.Errorf("filtered spectrum: %w", err)
	}

	sampleRate := e.axis.SampleRate()
	if sampleRate > 0 {
		if f.NoiseBandwidth, err = e.analyzer.NoiseBandwidth(len(f.Raw), sampleRate); err != nil {
			return fmt.Errorf("noise bandwidth: %w", err)
		}
	}

	f.SpectrumWindow = e.analyzer.Window().String()
	f.Frequencies = e.analyzer.Frequencies(sampleRate)
	f.RawSpectrum = rawDB
	f.FilteredSpectrum = filteredDB
	return nil
}

// spectrumSize returns the smallest power of two >= n, at least 2.
func spectrumSize(n int) int {
	size := 2
	for size < n {
		size <<= 1
	}
	return size
}
