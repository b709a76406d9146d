package signal

import (
	"fmt"
	"math/rand"

	"github.com/innabyinna/ad-labs/dsp/core"
)

// NoiseBuffer is a fixed draw of standard-normal samples. Generate reads it
// and never writes it; a fresh draw is a new buffer.
type NoiseBuffer []float64

// Generator draws noise buffers from a seeded random source.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a noise generator. Without WithSeed the seed is 1.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Noise draws a new buffer of n standard-normal samples. Successive calls
// continue the same random stream, so each call yields a different buffer.
func (g *Generator) Noise(n int) (NoiseBuffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: noise samples must be > 0: %d", core.ErrInvalidParameter, n)
	}
	out := make(NoiseBuffer, n)
	for i := range out {
		out[i] = g.rng.NormFloat64()
	}
	return out, nil
}

// Clone returns an independent copy of the buffer.
func (b NoiseBuffer) Clone() NoiseBuffer {
	return NoiseBuffer(core.Clone(b))
}
