package pass

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestButterworthLP_SectionCount(t *testing.T) {
	sr := 1000.0
	for order := 1; order <= 8; order++ {
		want := (order + 1) / 2
		got := ButterworthLP(100, order, sr)
		if len(got) != want {
			t.Fatalf("order %d: sections=%d, want %d", order, len(got), want)
		}
	}
}

func TestButterworth_OddOrder_HasFirstOrderSection(t *testing.T) {
	for _, order := range []int{1, 3, 5, 7} {
		sections := ButterworthLP(100, order, 1000)
		last := sections[len(sections)-1]
		if last.B2 != 0 || last.A2 != 0 {
			t.Fatalf("order %d: last section not first-order: %+v", order, last)
		}
	}
	for _, order := range []int{2, 4, 6} {
		for i, s := range ButterworthLP(100, order, 1000) {
			if s.A2 == 0 {
				t.Fatalf("order %d: section %d unexpectedly first-order", order, i)
			}
		}
	}
}

func TestButterworthLP_UnityDCGain(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 6} {
		chain := biquad.NewChain(ButterworthLP(100, order, 1000))
		if g := cmplx.Abs(chain.Response(0, 1000)); !almostEqual(g, 1, 1e-9) {
			t.Fatalf("order %d: DC gain = %v, want 1", order, g)
		}
	}
}

func TestButterworthLP_ImpulseResponseSettles(t *testing.T) {
	for _, order := range []int{1, 2, 4, 7} {
		chain := biquad.NewChain(ButterworthLP(100, order, 1000))
		ir := chain.ImpulseResponse(2000)

		sum := 0.0
		for _, v := range ir {
			sum += v
		}
		if !almostEqual(sum, 1, 1e-9) {
			t.Fatalf("order %d: impulse response sum = %v, want 1", order, sum)
		}
		if tail := math.Abs(ir[len(ir)-1]); tail > 1e-12 {
			t.Fatalf("order %d: impulse response has not decayed: %v", order, tail)
		}
	}
}

func TestButterworthLP_Minus3dBAtCutoff(t *testing.T) {
	for _, fc := range []float64{10, 100, 300} {
		for _, order := range []int{1, 2, 4, 5} {
			chain := biquad.NewChain(ButterworthLP(fc, order, 1000))
			if db := chain.MagnitudeDB(fc, 1000); !almostEqual(db, -3.0103, 0.01) {
				t.Fatalf("fc=%v order=%d: %.4f dB at cutoff, want -3.01", fc, order, db)
			}
		}
	}
}

func TestButterworthLP_HigherOrderSteeperRolloff(t *testing.T) {
	prev := 0.0
	for _, order := range []int{1, 2, 4, 6, 8} {
		chain := biquad.NewChain(ButterworthLP(50, order, 1000))
		atten := -chain.MagnitudeDB(200, 1000)
		if atten <= prev {
			t.Fatalf("order %d: attenuation %.2f dB not steeper than %.2f dB", order, atten, prev)
		}
		prev = atten
	}
}

func TestButterworthLP_MaximallyFlat(t *testing.T) {
	// |H|^2 = 1/(1+(wa/wc)^(2n)) with wa the prewarped analog frequency.
	chain := biquad.NewChain(ButterworthLP(100, 4, 1000))
	for _, f := range []float64{5, 50, 150, 400} {
		ratio := math.Tan(math.Pi*f/1000) / math.Tan(math.Pi*100/1000)
		want := 1 / math.Sqrt(1+math.Pow(ratio, 8))
		if got := cmplx.Abs(chain.Response(f, 1000)); !almostEqual(got, want, 1e-9) {
			t.Fatalf("f=%v: |H| = %v, want %v", f, got, want)
		}
	}
}

func TestButterworthQ_KnownValues(t *testing.T) {
	if got := butterworthQ(2, 0); !almostEqual(got, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("order=2: Q=%.10f, want %.10f", got, 1/math.Sqrt2)
	}
	// Order 4 pole pairs at 22.5 and 67.5 degrees.
	if got := butterworthQ(4, 0); !almostEqual(got, 1/(2*math.Sin(math.Pi/8)), 1e-12) {
		t.Fatalf("order=4 index=0: Q=%v", got)
	}
	if got := butterworthQ(4, 1); !almostEqual(got, 1/(2*math.Sin(3*math.Pi/8)), 1e-12) {
		t.Fatalf("order=4 index=1: Q=%v", got)
	}
}

func TestButterworthLowpass_Valid(t *testing.T) {
	sections, err := ButterworthLowpass(100, DefaultOrder, 1000)
	if err != nil {
		t.Fatalf("ButterworthLowpass() error = %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	for i, s := range sections {
		if !s.IsStable() {
			t.Fatalf("section %d unstable: %+v", i, s)
		}
	}
}

func TestButterworthLowpass_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		order  int
		sr     float64
	}{
		{name: "zero order", cutoff: 100, order: 0, sr: 1000},
		{name: "zero sample rate", cutoff: 100, order: 4, sr: 0},
		{name: "negative sample rate", cutoff: 100, order: 4, sr: -1000},
		{name: "zero cutoff", cutoff: 0, order: 4, sr: 1000},
		{name: "cutoff at nyquist", cutoff: 500, order: 4, sr: 1000},
		{name: "cutoff above nyquist", cutoff: 100, order: 4, sr: 150},
		{name: "nan cutoff", cutoff: math.NaN(), order: 4, sr: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ButterworthLowpass(tt.cutoff, tt.order, tt.sr)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
	if ButterworthLP(100, -1, 1000) != nil || ButterworthLP(600, 4, 1000) != nil {
		t.Fatal("expected nil for invalid ButterworthLP input")
	}
}

func TestNormalizedCutoff(t *testing.T) {
	if got := NormalizedCutoff(100, 1000); got != 0.2 {
		t.Fatalf("NormalizedCutoff(100, 1000) = %v, want 0.2", got)
	}
}
