package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/innabyinna/ad-labs/dsp/filter/biquad/internal/kernel"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	blockImpl     kernel.BlockFn
	blockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	blockInitOnce.Do(initBlockKernel)

	c := kernel.Coefficients{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
	s.d0, s.d1 = blockImpl(c, s.d0, s.d1, buf)
}

func initBlockKernel() {
	entry := kernel.Default.Select(cpu.DetectFeatures())
	if entry == nil || entry.Block == nil {
		panic("biquad: no block kernel registered")
	}

	blockImpl = entry.Block
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}

// DCGain returns H(1) = (B0+B1+B2)/(1+A1+A2). ok is false when the
// denominator is too close to zero for the gain to be meaningful.
func (c *Coefficients) DCGain() (gain float64, ok bool) {
	const minDen = 1e-12

	den := 1 + c.A1 + c.A2
	if den > -minDen && den < minDen {
		return 0, false
	}

	return (c.B0 + c.B1 + c.B2) / den, true
}

// SteadyState returns the delay line a section settles into after an
// unbounded run of the constant input x. Feeding x into a section primed
// with this state yields the constant output DCGain()*x.
func (c *Coefficients) SteadyState(x float64) ([2]float64, bool) {
	g, ok := c.DCGain()
	if !ok {
		return [2]float64{}, false
	}

	y := g * x
	return [2]float64{y - c.B0*x, c.B2*x - c.A2*y}, true
}
