// Package kernel holds the block-processing kernels for a single biquad
// section and selects one per CPU feature set.
package kernel

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn processes buf in-place with one biquad section and returns the
// updated delay line.
type BlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Entry is one registered kernel.
type Entry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Block     BlockFn
}

// Registry stores available kernels ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Default is the registry populated by this package's init.
var Default = &Registry{}

func init() {
	Default.Register(Entry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0, Block: processGeneric})
	Default.Register(Entry{Name: "unrolled4", SIMDLevel: cpu.SIMDAVX2, Priority: 20, Block: processUnrolled4})
}

// Register adds a kernel, keeping entries sorted by descending priority.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	for i := len(r.entries) - 1; i > 0 && r.entries[i-1].Priority < r.entries[i].Priority; i-- {
		r.entries[i-1], r.entries[i] = r.entries[i], r.entries[i-1]
	}
}

// Select returns the highest-priority kernel supported by features, or nil.
func (r *Registry) Select(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			e := r.entries[i]
			return &e
		}
	}
	return nil
}

// Names lists registered kernels in selection order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}
