// Package trace summarises a sampled trace for display next to the plot.
package trace

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds time-domain statistics of one trace.
type Summary struct {
	Length        int     `json:"length"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"stdDev"` // population
	RMS           float64 `json:"rms"`
	RMSdB         float64 `json:"rmsDb"`
	Min           float64 `json:"min"`
	MinPos        int     `json:"minPos"`
	Max           float64 `json:"max"`
	MaxPos        int     `json:"maxPos"`
	Peak          float64 `json:"peak"` // max(|max|, |min|)
	CrestFactor   float64 `json:"crestFactor"`
	ZeroCrossings int     `json:"zeroCrossings"`
}

// Calculate computes the summary of x. An empty trace yields a zero Summary
// with RMSdB at the dB floor.
func Calculate(x []float64) Summary {
	n := len(x)
	if n == 0 {
		return Summary{RMSdB: FloorDB}
	}

	mean, std := stat.PopMeanStdDev(x, nil)
	rms := floats.Norm(x, 2) / math.Sqrt(float64(n))
	minPos, maxPos := floats.MinIdx(x), floats.MaxIdx(x)
	peak := math.Max(math.Abs(x[minPos]), math.Abs(x[maxPos]))

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Summary{
		Length:        n,
		Mean:          mean,
		StdDev:        std,
		RMS:           rms,
		RMSdB:         ampToDB(rms),
		Min:           x[minPos],
		MinPos:        minPos,
		Max:           x[maxPos],
		MaxPos:        maxPos,
		Peak:          peak,
		CrestFactor:   crest,
		ZeroCrossings: ZeroCrossings(x),
	}
}

// IsFinite reports whether every float field of s is finite. Summaries of
// traces near the float64 range can overflow in the variance.
func (s Summary) IsFinite() bool {
	for _, v := range [...]float64{s.Mean, s.StdDev, s.RMS, s.RMSdB, s.Min, s.Max, s.Peak, s.CrestFactor} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FloorDB is reported in place of -Inf so summaries stay JSON-encodable.
const FloorDB = -300.0

func ampToDB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return FloorDB
	}

	return math.Max(20*math.Log10(a), FloorDB)
}

// ZeroCrossings counts strict sign changes between adjacent samples.
func ZeroCrossings(x []float64) int {
	count := 0
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}
	return count
}
