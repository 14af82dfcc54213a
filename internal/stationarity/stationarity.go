// Package stationarity computes the two frame-local audio descriptors the
// RAPT voicing-transition costs need: a spectral-stationarity scalar S_i
// (an Itakura distortion between consecutive analysis windows) and an
// RMS-ratio rr_i between consecutive frames. spec.md section 9 leaves both
// as optional constants in the reference implementation; this package
// supplies the real computation it invites, using the same FFT-plan-caching
// shape as the teacher's analysis package.
package stationarity

import (
	"errors"
	"math"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/rapt/internal/numeric"
)

// Series holds one S_i/rr_i pair per frame, indexed the same way as the DP
// tracker's frames (frame 0 has no predecessor, so both entries are neutral
// defaults: S_0 = 0, rr_0 = 1).
type Series struct {
	S  []float64
	RR []float64
}

var fftPlanCache sync.Map // map[int]*fftPlan

type fftPlan struct {
	mu   sync.Mutex
	fast *algofft.FastPlanReal64
	safe *algofft.PlanRealT[float64, complex128]
}

// Compute derives S_i and rr_i for every frame of an original-rate buffer,
// using a Hann window of length windowLen = floor(0.03 * rate) (at least 8,
// rounded down to an even length) that begins at each frame's start sample.
func Compute(samples []float64, rate int, frameStep int, frameCount int) Series {
	windowLen := numeric.MaxInt(int(0.03*float64(rate)), 8)
	windowLen &^= 1 // even length simplifies the FFT plan

	hann := hannWindow(windowLen)

	s := Series{
		S:  make([]float64, frameCount),
		RR: make([]float64, frameCount),
	}
	if frameCount == 0 {
		return s
	}
	s.RR[0] = 1.0

	prevMag, prevOK := windowedSpectrum(samples, 0, hann)
	prevRMS := windowedRMS(samples, 0, windowLen)

	for i := 1; i < frameCount; i++ {
		start := i * frameStep
		curMag, curOK := windowedSpectrum(samples, start, hann)
		curRMS := windowedRMS(samples, start, windowLen)

		if prevOK && curOK {
			s.S[i] = itakuraStationarity(prevMag, curMag)
		}
		s.RR[i] = rmsRatio(curRMS, prevRMS)

		prevMag, prevOK = curMag, curOK
		prevRMS = curRMS
	}
	return s
}

// itakuraStationarity maps an Itakura-style log-spectral-distortion between
// two magnitude spectra to the S_i scale pyrapt's stub used
// (0.2 / (distortion - 0.8)), clamped away from the distortion ~= 0.8
// singularity pyrapt's own constant-distortion stub sat exactly on.
func itakuraStationarity(prevMag, curMag []float64) float64 {
	n := len(prevMag)
	if len(curMag) < n {
		n = len(curMag)
	}
	if n == 0 {
		return 0
	}

	var ratioSum float64
	var bins int
	for k := 0; k < n; k++ {
		p := prevMag[k]*prevMag[k] + 1e-12
		c := curMag[k]*curMag[k] + 1e-12
		ratioSum += c / p
		bins++
	}
	if bins == 0 {
		return 0
	}
	distortion := math.Log(ratioSum / float64(bins))
	denom := distortion - 0.8
	if math.Abs(denom) < 1e-3 {
		denom = math.Copysign(1e-3, denom)
	}
	return 0.2 / denom
}

func rmsRatio(cur, prev float64) float64 {
	const floor = 1e-9
	if prev <= floor && cur <= floor {
		return 1.0
	}
	if prev <= floor {
		prev = floor
	}
	if cur <= floor {
		cur = floor
	}
	return cur / prev
}

func windowedRMS(samples []float64, start, windowLen int) float64 {
	end := numeric.MinInt(start+windowLen, len(samples))
	if start >= end {
		return 0
	}
	var sum float64
	count := 0
	for i := start; i < end; i++ {
		sum += samples[i] * samples[i]
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(count))
}

func windowedSpectrum(samples []float64, start int, hann []float64) ([]float64, bool) {
	n := len(hann)
	end := start + n
	if end > len(samples) {
		return nil, false
	}

	windowed := make([]float64, n)
	for i := 0; i < n; i++ {
		windowed[i] = samples[start+i] * hann[i]
	}

	plan, err := getFFTPlan(n)
	if err != nil {
		return naiveMagnitude(windowed), true
	}
	spec := make([]complex128, n/2+1)
	if err := plan.forward(spec, windowed); err != nil {
		return naiveMagnitude(windowed), true
	}
	mag := make([]float64, len(spec))
	for k, c := range spec {
		mag[k] = math.Hypot(real(c), imag(c))
	}
	return mag, true
}

func naiveMagnitude(x []float64) []float64 {
	n := len(x)
	bins := n/2 + 1
	mag := make([]float64, bins)
	for k := 0; k < bins; k++ {
		var re, im float64
		for i := 0; i < n; i++ {
			phi := -2.0 * math.Pi * float64(k*i) / float64(n)
			re += x[i] * math.Cos(phi)
			im += x[i] * math.Sin(phi)
		}
		mag[k] = math.Hypot(re, im)
	}
	return mag
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n <= 1 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func getFFTPlan(n int) (*fftPlan, error) {
	if v, ok := fftPlanCache.Load(n); ok {
		return v.(*fftPlan), nil
	}
	p := &fftPlan{}

	fast, err := algofft.NewFastPlanReal64(n)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		// Ignore fast-plan setup errors and rely on the safe plan.
	}

	safe, err := algofft.NewPlanReal64(n)
	if err != nil {
		if p.fast == nil {
			return nil, err
		}
	} else {
		p.safe = safe
	}

	actual, _ := fftPlanCache.LoadOrStore(n, p)
	return actual.(*fftPlan), nil
}

func (p *fftPlan) forward(dst []complex128, src []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("stationarity: missing FFT plan")
}
