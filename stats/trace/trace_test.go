package trace

import (
	"encoding/json"
	"math"
	"testing"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// generateSine creates exactly numCycles full cycles of a sine wave.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	n := samplesPerCycle * numCycles
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestCalculate_DCSignal(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = 1
	}
	s := Calculate(x)

	if s.Length != 1000 {
		t.Errorf("Length: got %d, want 1000", s.Length)
	}
	if !almostEqual(s.Mean, 1.0, tolerance) {
		t.Errorf("Mean: got %g, want 1.0", s.Mean)
	}
	if !almostEqual(s.StdDev, 0, tolerance) {
		t.Errorf("StdDev: got %g, want 0", s.StdDev)
	}
	if !almostEqual(s.RMS, 1.0, tolerance) {
		t.Errorf("RMS: got %g, want 1.0", s.RMS)
	}
	if !almostEqual(s.RMSdB, 0, tolerance) {
		t.Errorf("RMSdB: got %g, want 0", s.RMSdB)
	}
	if !almostEqual(s.CrestFactor, 1.0, tolerance) {
		t.Errorf("CrestFactor: got %g, want 1.0", s.CrestFactor)
	}
	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings: got %d, want 0", s.ZeroCrossings)
	}
}

func TestCalculate_Sine(t *testing.T) {
	x := generateSine(2, 10, 1000, 5)
	s := Calculate(x)

	if !almostEqual(s.Mean, 0, 1e-12) {
		t.Errorf("Mean: got %g, want 0", s.Mean)
	}
	if !almostEqual(s.RMS, 2/math.Sqrt2, 1e-9) {
		t.Errorf("RMS: got %g, want %g", s.RMS, 2/math.Sqrt2)
	}
	if !almostEqual(s.StdDev, s.RMS, 1e-9) {
		t.Errorf("StdDev: got %g, want RMS %g", s.StdDev, s.RMS)
	}
	if !almostEqual(s.Peak, 2, 1e-9) {
		t.Errorf("Peak: got %g, want 2", s.Peak)
	}
	if !almostEqual(s.CrestFactor, math.Sqrt2, 1e-9) {
		t.Errorf("CrestFactor: got %g, want sqrt(2)", s.CrestFactor)
	}
}

func TestCalculate_KnownValues(t *testing.T) {
	s := Calculate([]float64{3, -1, 4, -1, 5})

	if s.Min != -1 || s.MinPos != 1 {
		t.Errorf("Min: got %g at %d, want -1 at 1", s.Min, s.MinPos)
	}
	if s.Max != 5 || s.MaxPos != 4 {
		t.Errorf("Max: got %g at %d, want 5 at 4", s.Max, s.MaxPos)
	}
	if !almostEqual(s.Mean, 2, tolerance) {
		t.Errorf("Mean: got %g, want 2", s.Mean)
	}
	// population variance: (1+9+4+9+9)/5
	if !almostEqual(s.StdDev, math.Sqrt(32.0/5), tolerance) {
		t.Errorf("StdDev: got %g, want %g", s.StdDev, math.Sqrt(32.0/5))
	}
	if s.ZeroCrossings != 4 {
		t.Errorf("ZeroCrossings: got %d, want 4", s.ZeroCrossings)
	}
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || s.RMS != 0 || s.RMSdB != FloorDB {
		t.Fatalf("empty summary = %+v", s)
	}
}

func TestCalculate_SilenceIsJSONEncodable(t *testing.T) {
	s := Calculate(make([]float64, 16))
	if s.RMSdB != FloorDB {
		t.Fatalf("RMSdB = %v, want %v", s.RMSdB, FloorDB)
	}
	if _, err := json.Marshal(s); err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
}

func TestZeroCrossings_TouchingZeroIsNotACrossing(t *testing.T) {
	if got := ZeroCrossings([]float64{1, 0, -1, 0, 1}); got != 0 {
		t.Fatalf("ZeroCrossings = %d, want 0", got)
	}
	if got := ZeroCrossings([]float64{1, -1, 1, -1}); got != 3 {
		t.Fatalf("ZeroCrossings = %d, want 3", got)
	}
}

func TestSummary_IsFinite(t *testing.T) {
	if s := Calculate(generateSine(1, 10, 1000, 3)); !s.IsFinite() {
		t.Fatalf("unit sine summary not finite: %+v", s)
	}
	if s := Calculate(nil); !s.IsFinite() {
		t.Fatalf("empty summary not finite: %+v", s)
	}

	huge := Calculate(generateSine(1e200, 10, 1000, 3))
	if huge.IsFinite() {
		t.Fatalf("summary of a 1e200 sine reported finite: %+v", huge)
	}
	if _, err := json.Marshal(huge); err == nil {
		t.Fatal("expected json.Marshal to reject a non-finite summary")
	}

	if (Summary{CrestFactor: math.Inf(1)}).IsFinite() {
		t.Fatal("infinite crest factor reported finite")
	}
}
