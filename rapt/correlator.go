package rapt

import (
	"math"

	"github.com/cwbudde/rapt/internal/numeric"
)

// correlator computes mean-subtracted NCCF values theta(i, k) for a fixed
// frame geometry over a single audio buffer. The frame mean depends only on
// the reference window; nccf recomputes it on every call, so it is not
// shared across the lags scanned for a frame.
type correlator struct {
	audio []float64
	geo   geometry
	cfg   Config
	p     pass
}

func newCorrelator(audio []float64, geo geometry, cfg Config, p pass) *correlator {
	return &correlator{audio: audio, geo: geo, cfg: cfg, p: p}
}

// nccf returns theta(i, k) in [-1, 1] for frame i and lag k. Out-of-range
// windows (the lagged window would run past the end of the buffer) return
// 0, per spec.md section 4.2 — this is a value-level convention, not an
// error. First pass uses the plain sqrt(e0*ek) denominator; second pass
// regularises it with the configured additive constant.
func (c *correlator) nccf(i, k int) float64 {
	n := c.geo.n
	m := i * c.geo.z

	if m+k+n-1 >= len(c.audio) {
		return 0
	}

	var frameSum float64
	for j := 0; j < n; j++ {
		frameSum += c.audio[m+j]
	}
	mean := frameSum / float64(n)

	var numerator, e0, ek float64
	for j := 0; j < n; j++ {
		ref := c.audio[m+j] - mean
		lag := c.audio[m+k+j] - mean
		numerator += ref * lag
		e0 += ref * ref
		ek += lag * lag
	}

	product := e0 * ek
	if c.p == passSecond {
		product += c.cfg.AdditiveConstant
	}
	if product <= 0 {
		return 0
	}
	// Mathematically theta is bounded in [-1, 1]; float rounding in the
	// summed products can push it a hair outside that range.
	return numeric.Clamp(numerator/math.Sqrt(product), -1.0, 1.0)
}
