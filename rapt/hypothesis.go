package rapt

import "sort"

// Hypothesis is a (lag, correlation) pair produced by the NCCF passes, or
// the distinguished unvoiced sentinel (lag == 0 && correlation == 0).
type Hypothesis struct {
	Lag         int
	Correlation float64
}

// unvoicedHypothesis is the sentinel appended once per frame before DP runs.
var unvoicedHypothesis = Hypothesis{Lag: 0, Correlation: 0.0}

func (h Hypothesis) isUnvoiced() bool {
	return h.Lag == 0 && h.Correlation == 0.0
}

// frameCandidates names an ordered-by-lag-ascending, capped candidate list
// for one frame; both NCCF passes return such lists as plain []Hypothesis.
type frameCandidates []Hypothesis

// capAndSort enforces max (including the later-appended unvoiced slot) by
// retaining the highest-correlation entries, then re-sorting by lag
// ascending, per spec.md section 4.3 step 5 / section 9.
func capAndSort(cands []Hypothesis, max int) []Hypothesis {
	limit := max - 1 // one slot reserved for the unvoiced sentinel
	if limit < 0 {
		limit = 0
	}
	if len(cands) <= limit {
		sortByLag(cands)
		return cands
	}

	kept := append([]Hypothesis(nil), cands...)
	sortByCorrelationDesc(kept)
	kept = kept[:limit]
	sortByLag(kept)
	return kept
}

func sortByLag(h []Hypothesis) {
	sort.Slice(h, func(i, j int) bool { return h[i].Lag < h[j].Lag })
}

func sortByCorrelationDesc(h []Hypothesis) {
	sort.Slice(h, func(i, j int) bool { return h[i].Correlation > h[j].Correlation })
}
