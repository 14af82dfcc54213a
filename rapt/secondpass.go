package rapt

// secondPassRefine re-scans a +/-3 sample neighbourhood of each first-pass
// candidate lag on the original-rate buffer, per spec.md section 4.4. Lags
// are already in original-rate samples from the rescale in firstPassFrame,
// so no further unit conversion happens here.
func secondPassRefine(original Buffer, cfg Config, geo geometry, firstPass [][]Hypothesis) [][]Hypothesis {
	corr := newCorrelator(original.Samples, geo, cfg, passSecond)
	out := make([][]Hypothesis, len(firstPass))
	for i := range firstPass {
		out[i] = secondPassFrame(corr, i, cfg, geo, firstPass[i])
	}
	return out
}

// secondPassFrame re-scans the +/-3 neighbourhood of every first-pass lag,
// deduping overlapping ranges with a seen/theta pair of slices indexed by
// lag rather than a map: map iteration order is randomized per range in Go,
// and building cands from an unordered walk would make capAndSort's
// correlation-tie-break (sort.Slice, not stable) pick a different subset of
// hypotheses across runs on identical input whenever two lags tie exactly —
// common on low-energy frames. Walking k in ascending order keeps the input
// to capAndSort, and so its output, deterministic.
func secondPassFrame(corr *correlator, i int, cfg Config, geo geometry, firstPassFrame []Hypothesis) []Hypothesis {
	seen := make([]bool, geo.lagSpan)
	theta := make([]float64, geo.lagSpan)
	thetaMax := 0.0
	any := false

	for _, h := range firstPassFrame {
		p := h.Lag
		if p <= 3 || p >= geo.lagSpan-3 {
			continue
		}
		for k := p - 3; k <= p+3; k++ {
			if seen[k] {
				continue
			}
			v := corr.nccf(i, k)
			seen[k] = true
			theta[k] = v
			any = true
			if v > thetaMax {
				thetaMax = v
			}
		}
	}

	if !any {
		return capAndSort(nil, cfg.MaxHypothesesPerFrame)
	}

	tau := thetaMax * cfg.MinAcceptablePeakVal

	var cands []Hypothesis
	for k := 0; k < geo.lagSpan; k++ {
		if seen[k] && theta[k] >= tau {
			cands = append(cands, Hypothesis{Lag: k, Correlation: theta[k]})
		}
	}

	return capAndSort(cands, cfg.MaxHypothesesPerFrame)
}
