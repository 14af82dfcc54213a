// Package dsp provides the small signal-processing primitives the audio
// ingestion layer needs ahead of the rapt core: a cascaded anti-alias
// low-pass filter run before decimation.
package dsp

import "math"

// Biquad implements a second-order IIR filter (no heap allocations in Process)
type Biquad struct {
	// Coefficients
	b0, b1, b2 float32
	a1, a2     float32

	// State (previous samples)
	x1, x2 float32 // input history
	y1, y2 float32 // output history
}

// NewBiquad creates a new biquad filter with the given coefficients
func NewBiquad(b0, b1, b2, a1, a2 float32) *Biquad {
	return &Biquad{
		b0: b0,
		b1: b1,
		b2: b2,
		a1: a1,
		a2: a2,
	}
}

// Process processes one sample through the biquad filter
func (b *Biquad) Process(input float32) float32 {
	// Direct Form I implementation
	output := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	// Update state
	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = output

	return output
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// NewLowpass creates a simple lowpass biquad filter
func NewLowpass(cutoff, sampleRate, q float32) *Biquad {
	w0 := 2.0 * math.Pi * float64(cutoff) / float64(sampleRate)
	alpha := math.Sin(w0) / (2.0 * float64(q))
	cosw0 := math.Cos(w0)

	b0 := (1.0 - cosw0) / 2.0
	b1 := 1.0 - cosw0
	b2 := (1.0 - cosw0) / 2.0
	a0 := 1.0 + alpha
	a1 := -2.0 * cosw0
	a2 := 1.0 - alpha

	// Normalize by a0
	return NewBiquad(
		float32(b0/a0),
		float32(b1/a0),
		float32(b2/a0),
		float32(a1/a0),
		float32(a2/a0),
	)
}

// butterworthCascadeQs are the per-stage Q factors for a 4th-order
// Butterworth lowpass built from two cascaded 2nd-order sections:
// 1/(2*cos(pi/8)) and 1/(2*cos(3*pi/8)), the standard pole-pair Qs for a
// 4-pole Butterworth response.
var butterworthCascadeQs = [2]float32{0.5411961, 1.3065630}

// AntiAliasFilter cascades two Biquad lowpass sections (each built by
// NewLowpass at the Butterworth-cascade Qs above) into a 4th-order, 24
// dB/octave response. A single biquad section only rolls off at 12
// dB/octave, which leaves too much energy above the new Nyquist once the
// decimation ratio gets past a couple of octaves — exactly the case RAPT's
// downsample step needs, since maximum_allowed_freq/4 commonly decimates by
// 6-10x (see audio.Downsample).
type AntiAliasFilter struct {
	stages [2]*Biquad
}

// NewAntiAliasFilter builds a 4th-order Butterworth lowpass at cutoff for a
// signal sampled at sampleRate.
func NewAntiAliasFilter(cutoff, sampleRate float32) *AntiAliasFilter {
	return &AntiAliasFilter{
		stages: [2]*Biquad{
			NewLowpass(cutoff, sampleRate, butterworthCascadeQs[0]),
			NewLowpass(cutoff, sampleRate, butterworthCascadeQs[1]),
		},
	}
}

// Process runs one sample through both cascaded sections in series.
func (f *AntiAliasFilter) Process(input float32) float32 {
	out := input
	for _, s := range f.stages {
		out = s.Process(out)
	}
	return out
}

// Reset clears both cascaded sections' state.
func (f *AntiAliasFilter) Reset() {
	for _, s := range f.stages {
		s.Reset()
	}
}
