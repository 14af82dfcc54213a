package audio

import (
	"math"
	"testing"

	"github.com/cwbudde/rapt/rapt"
)

func TestDownsampleNoOpWhenTargetMatchesOriginalRate(t *testing.T) {
	// maximumAllowedFreq chosen so original.Rate / (4*maxFreq) rounds to 1,
	// i.e. the derived target rate equals the original rate exactly.
	original := rapt.Buffer{Rate: 8000, Samples: make([]float64, 8000)}
	out, err := Downsample(original, 2000)
	if err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	if out.Rate != original.Rate {
		t.Fatalf("Rate = %d, want %d (no-op path)", out.Rate, original.Rate)
	}
	if len(out.Samples) != len(original.Samples) {
		t.Fatalf("len(Samples) = %d, want %d (no-op path)", len(out.Samples), len(original.Samples))
	}
}

func TestDownsampleRejectsNonPositiveRate(t *testing.T) {
	original := rapt.Buffer{Rate: 0, Samples: make([]float64, 100)}
	if _, err := Downsample(original, 500); err == nil {
		t.Fatal("expected error for non-positive sample rate")
	}
}

func TestDownsampleProducesLowerRate(t *testing.T) {
	original := rapt.Buffer{Rate: 16000, Samples: make([]float64, 16000)}
	out, err := Downsample(original, 500) // divisor = round(16000/2000) = 8
	if err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	if out.Rate != 2000 {
		t.Fatalf("Rate = %d, want 2000", out.Rate)
	}
}

func TestLowpassFilterPreservesLength(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 300 * float64(i) / 16000)
	}
	out := lowpassFilter(samples, 2000, 16000)
	if len(out) != len(samples) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(samples))
	}
}

func TestLowpassFilterAttenuatesHighFrequency(t *testing.T) {
	rate := float32(16000)
	n := 4000
	highFreq := make([]float64, n)
	for i := range highFreq {
		highFreq[i] = math.Sin(2 * math.Pi * 6000 * float64(i) / float64(rate))
	}
	filtered := lowpassFilter(highFreq, 500, rate)

	rmsIn := rms(highFreq[1000:])
	rmsOut := rms(filtered[1000:])
	if rmsOut >= rmsIn {
		t.Fatalf("expected lowpass to attenuate a 6kHz tone with a 500Hz cutoff: in=%v out=%v", rmsIn, rmsOut)
	}
}

func rms(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
