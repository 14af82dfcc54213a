// Package rapt implements David Talkin's Robust Algorithm for Pitch
// Tracking: a two-pass Normalized Cross-Correlation Function candidate
// generator feeding a Viterbi-style dynamic-programming voicing/pitch
// tracker. It is a pure function of two audio buffers and a Config; it
// performs no I/O and holds no state between calls.
package rapt

import "github.com/cwbudde/rapt/internal/stationarity"

// Track estimates F0 (Hz) per frame for a monophonic signal. original is the
// full-rate buffer; downsampled is a decimated buffer of the same audio
// satisfying downsampled.Rate ~= original.Rate / round(original.Rate / (4 *
// cfg.MaximumAllowedFreq)) (see spec.md section 6). Both buffers are treated
// as read-only. The returned slice has one entry per frame; 0.0 marks an
// unvoiced frame.
func Track(original, downsampled Buffer, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if original.Rate <= 0 {
		return nil, &ConfigError{"original.Rate", "must be >= 1"}
	}
	if downsampled.Rate <= 0 {
		return nil, &ConfigError{"downsampled.Rate", "must be >= 1"}
	}
	if len(original.Samples) == 0 || len(downsampled.Samples) == 0 {
		return nil, &ConfigError{"audio", "buffer is empty"}
	}

	geoDown, err := deriveGeometry(downsampled.Rate, len(downsampled.Samples), cfg, passFirst)
	if err != nil {
		return nil, err
	}
	geoOrig, err := deriveGeometry(original.Rate, len(original.Samples), cfg, passSecond)
	if err != nil {
		return nil, err
	}

	sampleRateRatio := float64(original.Rate) / float64(downsampled.Rate)

	firstPass := firstPassScan(downsampled, cfg, geoDown, sampleRateRatio)
	secondPass := secondPassRefine(original, cfg, geoOrig, firstPass)

	frames := withUnvoicedSentinel(secondPass)

	series := stationarity.Compute(original.Samples, original.Rate, geoOrig.z, len(frames))

	path := track(frames, cfg, original.Rate, seriesInput{S: series.S, RR: series.RR})

	return toF0(path, original.Rate), nil
}

// withUnvoicedSentinel appends the unvoiced (0, 0.0) hypothesis to every
// frame exactly once, per spec.md section 3 — this guarantees DP is always
// well-defined even for a frame whose candidate list came back empty.
func withUnvoicedSentinel(frames [][]Hypothesis) [][]Hypothesis {
	out := make([][]Hypothesis, len(frames))
	for i, f := range frames {
		withSentinel := make([]Hypothesis, len(f), len(f)+1)
		copy(withSentinel, f)
		out[i] = append(withSentinel, unvoicedHypothesis)
	}
	return out
}

// toF0 converts the selected hypothesis per frame to Hz: r_orig / lag_h for
// a voiced frame, 0.0 for unvoiced. The integer lag (not the real-valued
// parabolic intermediate) is used, keeping output deterministic across
// platforms per spec.md section 9.
func toF0(path []Hypothesis, rateOrig int) []float64 {
	out := make([]float64, len(path))
	for i, h := range path {
		if h.isUnvoiced() || h.Lag <= 0 {
			out[i] = 0.0
			continue
		}
		out[i] = float64(rateOrig) / float64(h.Lag)
	}
	return out
}
