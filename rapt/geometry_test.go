package rapt

import "testing"

func TestDeriveGeometryDefaultsAtSixteenK(t *testing.T) {
	cfg := NewDefaultConfig()
	geo, err := deriveGeometry(16000, 16000, cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}
	if geo.n != int(16000*cfg.CorrelationWindowSize) {
		t.Errorf("n = %d, want %d", geo.n, int(16000*cfg.CorrelationWindowSize))
	}
	if geo.z != int(16000*cfg.FrameStepSize) {
		t.Errorf("z = %d, want %d", geo.z, int(16000*cfg.FrameStepSize))
	}
	if geo.kMin != int(16000/cfg.MaximumAllowedFreq) {
		t.Errorf("kMin = %d, want %d", geo.kMin, int(16000/cfg.MaximumAllowedFreq))
	}
	if geo.k != int(16000/cfg.MinimumAllowedFreq) {
		t.Errorf("k = %d, want %d", geo.k, int(16000/cfg.MinimumAllowedFreq))
	}
}

func TestDeriveGeometrySecondPassHasZeroKMin(t *testing.T) {
	cfg := NewDefaultConfig()
	geo, err := deriveGeometry(16000, 16000, cfg, passSecond)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}
	if geo.kMin != 0 {
		t.Errorf("kMin = %d, want 0 on second pass", geo.kMin)
	}
}

func TestDeriveGeometryFrameCountScalesWithStep(t *testing.T) {
	cfg := NewDefaultConfig()
	numSamples := 32000

	geoA, err := deriveGeometry(16000, numSamples, cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}

	cfg.FrameStepSize = cfg.FrameStepSize * 2
	geoB, err := deriveGeometry(16000, numSamples, cfg, passFirst)
	if err != nil {
		t.Fatalf("deriveGeometry: %v", err)
	}

	wantA := numSamples/geoA.z - 1
	wantB := numSamples/geoB.z - 1
	if geoA.m != wantA {
		t.Errorf("geoA.m = %d, want %d", geoA.m, wantA)
	}
	if geoB.m != wantB {
		t.Errorf("geoB.m = %d, want %d", geoB.m, wantB)
	}
	if geoB.m >= geoA.m {
		t.Errorf("doubling frame_step_size should reduce frame count: got %d >= %d", geoB.m, geoA.m)
	}
}

func TestDeriveGeometryRejectsShortBuffer(t *testing.T) {
	cfg := NewDefaultConfig()
	if _, err := deriveGeometry(16000, 10, cfg, passFirst); err == nil {
		t.Fatal("expected ConfigError for too-short buffer, got nil")
	}
}

func TestDeriveGeometryRejectsDegenerateLagSpan(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.MaximumAllowedFreq = cfg.MinimumAllowedFreq // collapses K - k_min to <= 0
	if _, err := deriveGeometry(16000, 16000, cfg, passFirst); err == nil {
		t.Fatal("expected ConfigError for degenerate lag span, got nil")
	}
}
