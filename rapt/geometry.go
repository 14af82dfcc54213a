package rapt

// pass distinguishes the two NCCF passes: the first pass scans the
// downsampled buffer over the full [k_min, K) lag range; the second pass
// re-scans a narrow neighbourhood of each candidate on the original-rate
// buffer with k_min pinned to 0 and an additive denominator regulariser.
type pass int

const (
	passFirst pass = iota
	passSecond
)

// geometry holds the frame layout derived from a buffer's sample rate and
// length, the config, and which pass is running.
type geometry struct {
	n       int // samples correlated per lag (window length)
	z       int // frame advance
	kMin    int // shortest lag per frame
	k       int // longest lag per frame (exclusive upper bound)
	m       int // frame count
	lagSpan int // k - kMin
}

// deriveGeometry computes (n, z, k_min, K, M) for a buffer at the given pass.
// It fails with ConfigError if any derived quantity collapses to a
// non-positive value, matching spec.md section 4.1.
func deriveGeometry(rate int, numSamples int, cfg Config, p pass) (geometry, error) {
	r := float64(rate)

	n := int(r * cfg.CorrelationWindowSize)
	z := int(r * cfg.FrameStepSize)

	var kMin int
	if p == passFirst {
		kMin = int(r / cfg.MaximumAllowedFreq)
	}
	k := int(r / cfg.MinimumAllowedFreq)

	if n <= 0 {
		return geometry{}, &ConfigError{"CorrelationWindowSize", "derived window length n <= 0"}
	}
	if z <= 0 {
		return geometry{}, &ConfigError{"FrameStepSize", "derived frame advance z <= 0"}
	}
	if k-kMin <= 0 {
		return geometry{}, &ConfigError{"MinimumAllowedFreq/MaximumAllowedFreq", "derived lag span K - k_min <= 0"}
	}

	m := numSamples/z - 1
	if m <= 0 {
		return geometry{}, &ConfigError{"buffer", "too short: derived frame count M <= 0"}
	}

	return geometry{n: n, z: z, kMin: kMin, k: k, m: m, lagSpan: k - kMin}, nil
}
