package testutil

import (
	"math"
	"math/rand"
)

// SampledSine evaluates amplitude*sin(2*pi*freqHz*t + phase) at every instant of times.
func SampledSine(times []float64, amplitude, freqHz, phase float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*t+phase)
	}
	return out
}

// DeterministicSine generates a sine wave on an integer sample grid.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// GaussianNoise draws length standard-normal samples from a fixed seed.
func GaussianNoise(seed int64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// StdDev returns the population standard deviation of data.
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	acc := 0.0
	for _, v := range data {
		d := v - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(data)))
}
