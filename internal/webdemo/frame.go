package webdemo

import "github.com/innabyinna/ad-labs/stats/trace"

// Frame is everything the display needs after one event. Time is the
// engine's axis and must not be modified.
type Frame struct {
	Seq             uint64        `json:"seq"`
	Time            []float64     `json:"t"`
	Raw             []float64     `json:"raw"`
	Filtered        []float64     `json:"filtered"`
	Settings        Settings      `json:"settings"`
	RawSummary      trace.Summary `json:"rawSummary"`
	FilteredSummary trace.Summary `json:"filteredSummary"`

	SpectrumWindow   string    `json:"spectrumWindow,omitempty"`
	NoiseBandwidth   float64   `json:"noiseBandwidth,omitempty"`
	Frequencies      []float64 `json:"frequencies,omitempty"`
	RawSpectrum      []float64 `json:"rawSpectrum,omitempty"`
	FilteredSpectrum []float64 `json:"filteredSpectrum,omitempty"`
}
