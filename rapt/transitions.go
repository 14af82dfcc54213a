package rapt

import "math"

// transitionCost is delta(h_prev, h_curr) from spec.md section 4.5's table.
// sCur and rrCur are the current frame's spectral-stationarity scalar S_i
// and RMS-ratio rr_i (both computed from the original-rate buffer by
// internal/stationarity, or supplied as constants by a caller that wants
// the spec's stub behaviour).
func transitionCost(prev, cur Hypothesis, cfg Config, sCur, rrCur float64) float64 {
	prevVoiced := !prev.isUnvoiced()
	curVoiced := !cur.isUnvoiced()

	switch {
	case !prevVoiced && !curVoiced:
		return 0
	case prevVoiced && curVoiced:
		jump := math.Log(float64(cur.Lag)/float64(prev.Lag)) - math.Log(2.0)
		return cfg.FreqWeight * (cfg.DoublingCost + math.Abs(jump))
	case prevVoiced && !curVoiced:
		return cfg.TransitionCost + cfg.SpecModTransitionCost*sCur + cfg.AmpModTransitionCost*rrCur
	default: // !prevVoiced && curVoiced
		return cfg.TransitionCost + cfg.SpecModTransitionCost*sCur + cfg.AmpModTransitionCost/rrCur
	}
}
