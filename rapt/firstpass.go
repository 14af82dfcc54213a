package rapt

import (
	"runtime"
	"sync"
)

// firstPassScan runs the downsampled-rate NCCF scan across every frame and
// returns, for each frame, a lag-ascending candidate list in original-rate
// samples (rescaled via sampleRateRatio), per spec.md section 4.3. Frames are
// independent of one another, so the scan is spread across a bounded worker
// pool (each worker holding its own correlator, since correlator carries no
// mutable state, only a read-only view of the buffer); the DP stage that
// consumes the result stays strictly sequential.
func firstPassScan(downsampled Buffer, cfg Config, geo geometry, sampleRateRatio float64) [][]Hypothesis {
	out := make([][]Hypothesis, geo.m)

	workers := runtime.GOMAXPROCS(0)
	if workers > geo.m {
		workers = geo.m
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, geo.m)
	for i := 0; i < geo.m; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			corr := newCorrelator(downsampled.Samples, geo, cfg, passFirst)
			for i := range jobs {
				out[i] = firstPassFrame(corr, i, cfg, geo, sampleRateRatio)
			}
		}()
	}
	wg.Wait()

	return out
}

func firstPassFrame(corr *correlator, i int, cfg Config, geo geometry, sampleRateRatio float64) []Hypothesis {
	theta := make([]float64, geo.lagSpan)
	thetaMax := 0.0
	for k := 0; k < geo.lagSpan; k++ {
		v := corr.nccf(i, k+geo.kMin)
		theta[k] = v
		if v > thetaMax {
			thetaMax = v
		}
	}

	tau := thetaMax * cfg.MinAcceptablePeakVal

	var cands []Hypothesis
	for k := 0; k < geo.lagSpan; k++ {
		if theta[k] < tau {
			continue
		}
		refinedLag := parabolicPeakLag(theta, k, geo.kMin)
		lagOut := int(roundHalfAwayFromZero(refinedLag * sampleRateRatio))
		cands = append(cands, Hypothesis{Lag: lagOut, Correlation: theta[k]})
	}

	return capAndSort(cands, cfg.MaxHypothesesPerFrame)
}

// parabolicPeakLag fits a parabola through the three nearest lag-indexed
// NCCF samples around peak index k (clamped at array endpoints to the
// nearest triplet, per spec.md section 9) and returns the interpolated lag
// x* = -b/(2a), computed in the equivalent, numerically simpler form
// x* = x1 - B/(2A) for the quadratic re-centred at x1. If the fit
// degenerates (A == 0), it falls back to the uninterpolated integer lag
// rather than dividing by zero — the NumericError escape hatch from
// spec.md section 7 is never reached because this fallback always applies.
func parabolicPeakLag(theta []float64, k, kMin int) float64 {
	lagPeak := float64(k + kMin)

	var x0, x1, x2 int
	switch {
	case k == 0:
		x0, x1, x2 = 0, 1, 2
	case k == len(theta)-1:
		x0, x1, x2 = k-2, k-1, k
	default:
		x0, x1, x2 = k-1, k, k+1
	}
	if x0 < 0 || x2 >= len(theta) {
		return lagPeak
	}

	y0, y1, y2 := theta[x0], theta[x1], theta[x2]
	h := float64(x1 - x0)
	if h == 0 || x2-x1 != x1-x0 {
		return lagPeak
	}

	a := (y0 - 2*y1 + y2) / (2 * h * h)
	if a == 0 {
		return lagPeak
	}
	b := (y2 - y0) / (2 * h)
	center := float64(x1 + kMin)
	return center - b/(2*a)
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}
