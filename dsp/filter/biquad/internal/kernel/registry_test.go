package kernel

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestSelectPrefersHigherPriority(t *testing.T) {
	reg := &Registry{}
	reg.Register(Entry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Entry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	if e := reg.Select(cpu.Features{HasSSE2: true, HasAVX2: true}); e == nil || e.Name != "avx2" {
		t.Fatalf("expected avx2, got %#v", e)
	}
	if e := reg.Select(cpu.Features{}); e == nil || e.Name != "generic" {
		t.Fatalf("expected generic, got %#v", e)
	}
	if e := reg.Select(cpu.Features{HasAVX2: true, ForceGeneric: true}); e == nil || e.Name != "generic" {
		t.Fatalf("expected generic with ForceGeneric, got %#v", e)
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	names := Default.Names()
	if len(names) != 2 || names[0] != "unrolled4" || names[1] != "generic" {
		t.Fatalf("Names() = %v, want [unrolled4 generic]", names)
	}
}

func TestKernelsAgree(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.6, A2: 0.25}
	for _, n := range []int{0, 1, 3, 4, 7, 64, 1001} {
		a := make([]float64, n)
		for i := range a {
			a[i] = math.Sin(0.37*float64(i)) + 0.1*float64(i%5)
		}
		b := append([]float64(nil), a...)

		ad0, ad1 := processGeneric(c, 0.1, -0.05, a)
		bd0, bd1 := processUnrolled4(c, 0.1, -0.05, b)

		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-12 {
				t.Fatalf("n=%d index %d: generic %v, unrolled %v", n, i, a[i], b[i])
			}
		}
		if math.Abs(ad0-bd0) > 1e-12 || math.Abs(ad1-bd1) > 1e-12 {
			t.Fatalf("n=%d state mismatch: generic (%v,%v) unrolled (%v,%v)", n, ad0, ad1, bd0, bd1)
		}
	}
}
