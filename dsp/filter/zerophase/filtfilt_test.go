package zerophase

import (
	"errors"
	"math"
	"testing"

	"github.com/innabyinna/ad-labs/dsp/core"
	"github.com/innabyinna/ad-labs/dsp/filter/biquad"
	"github.com/innabyinna/ad-labs/dsp/signal"
	"github.com/innabyinna/ad-labs/internal/testutil"
)

func defaultSine(t *testing.T, freq float64) []float64 {
	t.Helper()
	axis := signal.DefaultTimeAxis()
	return testutil.SampledSine(axis, 1, freq, 0)
}

func TestPadLen(t *testing.T) {
	if got := PadLen(2); got != 15 {
		t.Fatalf("PadLen(2) = %d, want 15", got)
	}
	if got := PadLen(1); got != 9 {
		t.Fatalf("PadLen(1) = %d, want 9", got)
	}
}

func TestOddExtend(t *testing.T) {
	x := []float64{1, 2, 4, 7, 11}
	got := oddExtend(x, 2)
	want := []float64{-3, 0, 1, 2, 4, 7, 11, 15, 18}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestLowPass_PassbandSineUnchanged(t *testing.T) {
	x := defaultSine(t, 1)
	y, err := LowPass(x, 1000, 490, 4)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	if len(y) != len(x) {
		t.Fatalf("len = %d, want %d", len(y), len(x))
	}
	diff, err := testutil.MaxAbsDiff(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if diff >= 1e-2 {
		t.Fatalf("max abs diff = %v, want < 1e-2", diff)
	}
}

func TestLowPass_NoPhaseShift(t *testing.T) {
	// One period per 100 samples is 10 Hz at fs=1000, deep in the passband.
	x := defaultSine(t, 1)
	y, err := LowPass(x, 1000, 200, 4)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	diff, _ := testutil.MaxAbsDiff(x[100:900], y[100:900])
	if diff > 1e-3 {
		t.Fatalf("interior max abs diff = %v, want <= 1e-3", diff)
	}
}

func TestLowPass_AttenuatesNoise(t *testing.T) {
	x := testutil.GaussianNoise(7, 4000)
	y, err := LowPass(x, 1000, 10, 4)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	testutil.RequireFinite(t, y)
	sy, sx := testutil.StdDev(y[200:3800]), testutil.StdDev(x[200:3800])
	if sy >= 0.25*sx {
		t.Fatalf("std(y) = %v, want < %v", sy, 0.25*sx)
	}
}

func peakToPeak(x []float64) float64 {
	lo, hi := x[0], x[0]
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}

func TestLowPass_VeryLowCutoffFlattensLabSine(t *testing.T) {
	x := defaultSine(t, 1)
	y, err := LowPass(x, 1000, 0.05, 4)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	testutil.RequireFinite(t, y)

	in, out := peakToPeak(x[100:900]), peakToPeak(y[100:900])
	if out >= 0.05*in {
		t.Fatalf("interior peak-to-peak = %v, want < %v", out, 0.05*in)
	}
}

func TestLowPass_ConstantInput(t *testing.T) {
	x := testutil.DC(3.5, 200)
	y, err := LowPass(x, 1000, 50, 4)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	for i, v := range y {
		if math.Abs(v-3.5) > 1e-9 {
			t.Fatalf("index %d: got %v, want 3.5", i, v)
		}
	}
}

func TestLowPass_OddOrder(t *testing.T) {
	x := testutil.DC(-1, 100)
	y, err := LowPass(x, 1000, 100, 3)
	if err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y, x, 1e-9)
}

func TestLowPass_DoesNotModifyInput(t *testing.T) {
	x := defaultSine(t, 3)
	orig := core.Clone(x)
	if _, err := LowPass(x, 1000, 100, 4); err != nil {
		t.Fatalf("LowPass() error = %v", err)
	}
	testutil.RequireSliceIdentical(t, x, orig)
}

func TestLowPass_Deterministic(t *testing.T) {
	x := testutil.GaussianNoise(3, 500)
	a, err := LowPass(x, 1000, 100, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LowPass(x, 1000, 100, 4)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceIdentical(t, a, b)
}

func TestLowPass_InvalidParameters(t *testing.T) {
	x := defaultSine(t, 1)
	nonFinite := make([]float64, 18)
	nonFinite[0] = math.NaN()

	tests := []struct {
		name   string
		x      []float64
		fs     float64
		cutoff float64
		order  int
	}{
		{name: "cutoff at nyquist", x: x, fs: 1000, cutoff: 500, order: 4},
		{name: "cutoff above nyquist", x: x, fs: 100, cutoff: 100, order: 4},
		{name: "zero cutoff", x: x, fs: 1000, cutoff: 0, order: 4},
		{name: "zero order", x: x, fs: 1000, cutoff: 100, order: 0},
		{name: "input too short", x: x[:15], fs: 1000, cutoff: 100, order: 4},
		{name: "non-finite input", x: nonFinite, fs: 1000, cutoff: 100, order: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LowPass(tt.x, tt.fs, tt.cutoff, tt.order)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestFilter_MinimumLength(t *testing.T) {
	sections := []biquad.Coefficients{{B0: 0.5, B1: 0.5, A1: 0}}
	if _, err := Filter(sections, make([]float64, PadLen(1))); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("len == padlen: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Filter(sections, make([]float64, PadLen(1)+1)); err != nil {
		t.Fatalf("len == padlen+1: error = %v", err)
	}
}

func TestFilter_UnstableSections(t *testing.T) {
	x := defaultSine(t, 1)
	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{name: "integrator pole at dc", c: biquad.Coefficients{B0: 1, A1: -2, A2: 1}},
		{name: "pole outside unit circle", c: biquad.Coefficients{B0: 1, A1: -0.5, A2: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter([]biquad.Coefficients{tt.c}, x)
			if !errors.Is(err, core.ErrUnstable) {
				t.Fatalf("error = %v, want ErrUnstable", err)
			}
		})
	}
}

func TestFilter_NoSections(t *testing.T) {
	if _, err := Filter(nil, defaultSine(t, 1)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}
