package rapt

import "math"

// dpNode is one Frame-State Node: a hypothesis together with the minimum
// cumulative cost of any path reaching it, and a backpointer into the
// previous frame's node slice.
type dpNode struct {
	hypothesis Hypothesis
	cost       float64
	back       int // index into the previous frame's node slice, -1 at frame 0
}

// track runs the Viterbi search described in spec.md section 4.5 over the
// per-frame hypothesis sets (each already carrying the unvoiced sentinel)
// and returns one Hypothesis per frame: the minimum-cost path.
func track(frames [][]Hypothesis, cfg Config, rateOrig int, stationary seriesInput) []Hypothesis {
	m := len(frames)
	if m == 0 {
		return nil
	}

	beta := cfg.LagWeight / (float64(rateOrig) / cfg.MinimumAllowedFreq)

	nodes := make([][]dpNode, m)
	nodes[0] = initialFrame(frames[0], cfg, beta)

	for i := 1; i < m; i++ {
		nodes[i] = stepFrame(frames[i], nodes[i-1], cfg, beta, stationary.S[i], stationary.RR[i])
	}

	return recoverPath(nodes)
}

// seriesInput is the per-frame (S_i, rr_i) pair feed for the DP tracker's
// voicing-transition costs. Keeping this as plain slices (rather than
// threading a Buffer through dp.go) keeps the tracker a pure numeric
// consumer: it's exercised with real spectra via internal/stationarity and
// testable in isolation with constant stand-in slices.
type seriesInput struct {
	S  []float64
	RR []float64
}

func initialFrame(frame []Hypothesis, cfg Config, beta float64) []dpNode {
	thetaMax := maxVoicedCorrelation(frame)
	nodes := make([]dpNode, len(frame))
	for j, h := range frame {
		nodes[j] = dpNode{hypothesis: h, cost: localCost(h, thetaMax, cfg, beta), back: -1}
	}
	return nodes
}

func stepFrame(frame []Hypothesis, prevNodes []dpNode, cfg Config, beta, sCur, rrCur float64) []dpNode {
	thetaMax := maxVoicedCorrelation(frame)
	nodes := make([]dpNode, len(frame))

	for j, h := range frame {
		d := localCost(h, thetaMax, cfg, beta)

		bestCost := math.Inf(1)
		bestBack := 0
		for pIdx, prev := range prevNodes {
			delta := transitionCost(prev.hypothesis, h, cfg, sCur, rrCur)
			total := prev.cost + delta
			if total < bestCost {
				bestCost = total
				bestBack = pIdx
			}
		}

		nodes[j] = dpNode{hypothesis: h, cost: d + bestCost, back: bestBack}
	}
	return nodes
}

func maxVoicedCorrelation(frame []Hypothesis) float64 {
	max := 0.0
	for _, h := range frame {
		if !h.isUnvoiced() && h.Correlation > max {
			max = h.Correlation
		}
	}
	return max
}

// localCost is d(h) from spec.md section 4.5: voicing_bias + theta_max for
// the unvoiced sentinel, or 1 - theta_h*(1 - beta*lag_h) for a voiced
// hypothesis, where beta = lag_weight / (r_orig / minimum_allowed_freq).
func localCost(h Hypothesis, thetaMaxForFrame float64, cfg Config, beta float64) float64 {
	if h.isUnvoiced() {
		return cfg.VoicingBias + thetaMaxForFrame
	}
	return 1.0 - h.Correlation*(1.0-beta*float64(h.Lag))
}

// recoverPath traces backpointers from the lowest-cost node of the final
// frame back to frame 0, returning one Hypothesis per frame in forward
// order, per spec.md section 4.5.
func recoverPath(nodes [][]dpNode) []Hypothesis {
	m := len(nodes)
	path := make([]Hypothesis, m)

	last := nodes[m-1]
	bestIdx := 0
	bestCost := last[0].cost
	for idx, n := range last {
		if n.cost < bestCost {
			bestCost = n.cost
			bestIdx = idx
		}
	}

	idx := bestIdx
	for i := m - 1; i >= 0; i-- {
		path[i] = nodes[i][idx].hypothesis
		idx = nodes[i][idx].back
	}
	return path
}
