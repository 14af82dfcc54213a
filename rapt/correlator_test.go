package rapt

import (
	"math"
	"testing"
)

func sineSamples(rate int, freq float64, seconds float64) []float64 {
	n := int(float64(rate) * seconds)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}
	return out
}

func TestNCCFSelfCorrelationAtZeroLagIsOne(t *testing.T) {
	cfg := NewDefaultConfig()
	samples := sineSamples(16000, 200, 1.0)
	geo, err := deriveGeometry(16000, len(samples), cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}
	corr := newCorrelator(samples, geo, cfg, passFirst)
	v := corr.nccf(0, 0)
	if math.Abs(v-1.0) > 1e-9 {
		t.Errorf("theta(i,0) = %v, want ~1.0", v)
	}
}

func TestNCCFOutOfRangeWindowIsZero(t *testing.T) {
	cfg := NewDefaultConfig()
	samples := sineSamples(16000, 200, 0.02) // short buffer
	geo, err := deriveGeometry(16000, 16000, cfg, passFirst) // geometry sized for a full second
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}
	corr := newCorrelator(samples, geo, cfg, passFirst)
	v := corr.nccf(0, geo.k-1)
	if v != 0 {
		t.Errorf("out-of-range nccf = %v, want 0", v)
	}
}

func TestNCCFBoundedInRange(t *testing.T) {
	cfg := NewDefaultConfig()
	samples := sineSamples(16000, 200, 1.0)
	geo, err := deriveGeometry(16000, len(samples), cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}
	corr := newCorrelator(samples, geo, cfg, passFirst)
	for k := geo.kMin; k < geo.k; k++ {
		v := corr.nccf(5, k)
		if v < -1.0-1e-9 || v > 1.0+1e-9 {
			t.Fatalf("theta(5,%d) = %v out of [-1,1]", k, v)
		}
	}
}

func TestNCCFAmplitudeInvariance(t *testing.T) {
	cfg := NewDefaultConfig()
	samples := sineSamples(16000, 200, 1.0)
	scaled := make([]float64, len(samples))
	for i, s := range samples {
		scaled[i] = s * 3.5
	}
	geo, err := deriveGeometry(16000, len(samples), cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}

	corrA := newCorrelator(samples, geo, cfg, passFirst)
	corrB := newCorrelator(scaled, geo, cfg, passFirst)

	for k := 0; k < geo.lagSpan; k += 7 {
		a := corrA.nccf(3, k)
		b := corrB.nccf(3, k)
		if math.Abs(a-b) > 1e-6 {
			t.Fatalf("amplitude scaling changed theta at k=%d: %v vs %v", k, a, b)
		}
	}
}
