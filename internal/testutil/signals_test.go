package testutil

import (
	"math"
	"testing"
)

func TestSampledSine(t *testing.T) {
	times := []float64{0, 0.25, 0.5, 0.75}
	s := SampledSine(times, 2, 1, 0)
	want := []float64{0, 2, 0, -2}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}
}

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(10, 1000, 1.0, 100)
	if len(s) != 100 {
		t.Fatalf("len = %d, want 100", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestGaussianNoiseReproducible(t *testing.T) {
	a := GaussianNoise(42, 64)
	b := GaussianNoise(42, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestGaussianNoiseUnitVariance(t *testing.T) {
	sd := StdDev(GaussianNoise(7, 20000))
	if math.Abs(sd-1) > 0.05 {
		t.Fatalf("std dev = %v, want ~1", sd)
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
	for i, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatalf("out-of-bounds impulse: imp[%d] = %v", i, v)
		}
	}
}

func TestDCAndStdDev(t *testing.T) {
	dc := DC(3, 10)
	for i, v := range dc {
		if v != 3 {
			t.Fatalf("dc[%d] = %v, want 3", i, v)
		}
	}
	if StdDev(dc) != 0 {
		t.Fatalf("StdDev(dc) = %v, want 0", StdDev(dc))
	}
	if StdDev(nil) != 0 {
		t.Fatal("StdDev(nil) should be 0")
	}
}
