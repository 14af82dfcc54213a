package rapt

import "testing"

func constSeries(n int) seriesInput {
	s := make([]float64, n)
	rr := make([]float64, n)
	for i := range rr {
		rr[i] = 1.0
	}
	return seriesInput{S: s, RR: rr}
}

func TestTrackOutputLengthMatchesFrameCount(t *testing.T) {
	cfg := NewDefaultConfig()
	frames := [][]Hypothesis{
		{{Lag: 80, Correlation: 0.8}, unvoicedHypothesis},
		{{Lag: 82, Correlation: 0.7}, unvoicedHypothesis},
		{unvoicedHypothesis},
	}
	path := track(frames, cfg, 16000, constSeries(len(frames)))
	if len(path) != len(frames) {
		t.Fatalf("len(path) = %d, want %d", len(path), len(frames))
	}
}

func TestTrackPrefersStrongVoicedOverUnvoiced(t *testing.T) {
	cfg := NewDefaultConfig()
	frames := [][]Hypothesis{
		{{Lag: 80, Correlation: 0.95}, unvoicedHypothesis},
		{{Lag: 81, Correlation: 0.95}, unvoicedHypothesis},
		{{Lag: 80, Correlation: 0.95}, unvoicedHypothesis},
	}
	path := track(frames, cfg, 16000, constSeries(len(frames)))
	for i, h := range path {
		if h.isUnvoiced() {
			t.Errorf("frame %d: expected voiced hypothesis for a strong, stable candidate, got unvoiced", i)
		}
	}
}

func TestTrackAllUnvoicedWhenOnlySentinelPresent(t *testing.T) {
	cfg := NewDefaultConfig()
	frames := [][]Hypothesis{
		{unvoicedHypothesis},
		{unvoicedHypothesis},
		{unvoicedHypothesis},
	}
	path := track(frames, cfg, 16000, constSeries(len(frames)))
	for i, h := range path {
		if !h.isUnvoiced() {
			t.Errorf("frame %d: expected unvoiced, got %+v", i, h)
		}
	}
}

func TestTransitionCostPenalizesOctaveJumpMoreThanSteadyLag(t *testing.T) {
	cfg := NewDefaultConfig()
	steady := transitionCost(Hypothesis{Lag: 107, Correlation: 0.7}, Hypothesis{Lag: 107, Correlation: 0.7}, cfg, 0, 1)
	doubled := transitionCost(Hypothesis{Lag: 107, Correlation: 0.7}, Hypothesis{Lag: 53, Correlation: 0.7}, cfg, 0, 1)
	if doubled <= steady {
		t.Fatalf("expected octave jump to cost more than steady lag: doubled=%v steady=%v", doubled, steady)
	}
}

func TestTransitionCostUnvoicedToUnvoicedIsZero(t *testing.T) {
	cfg := NewDefaultConfig()
	got := transitionCost(unvoicedHypothesis, unvoicedHypothesis, cfg, 1.0, 2.0)
	if got != 0 {
		t.Fatalf("U->U transition cost = %v, want 0", got)
	}
}

func TestTransitionCostVoicingChangeIncludesStationarityTerms(t *testing.T) {
	cfg := NewDefaultConfig()
	base := transitionCost(Hypothesis{Lag: 100, Correlation: 0.7}, unvoicedHypothesis, cfg, 0, 1)
	withS := transitionCost(Hypothesis{Lag: 100, Correlation: 0.7}, unvoicedHypothesis, cfg, 1.0, 1)
	if withS <= base {
		t.Fatalf("expected higher S_i to raise V->U cost: base=%v withS=%v", base, withS)
	}
}
