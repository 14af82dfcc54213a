// Package audio is the ambient I/O layer around the rapt core: WAV
// decoding, mono mixdown, and downsampling. None of this is part of the
// pitch-estimation algorithm itself (spec.md section 1 calls these out as
// external collaborators) — the rapt package never imports this one.
package audio

import (
	"fmt"
	"os"

	"github.com/cwbudde/rapt/dsp"
	"github.com/cwbudde/rapt/internal/numeric"
	"github.com/cwbudde/rapt/rapt"
	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
)

// ReadWAVMono decodes a WAV file and mixes it down to mono, returning a
// rapt.Buffer tagged with the file's sample rate.
func ReadWAVMono(path string) (rapt.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return rapt.Buffer{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return rapt.Buffer{}, fmt.Errorf("audio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return rapt.Buffer{}, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return rapt.Buffer{}, fmt.Errorf("audio: invalid wav buffer: %s", path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		samples[i] = sum / float64(ch)
	}

	return rapt.Buffer{Rate: buf.Format.SampleRate, Samples: samples}, nil
}

// WriteMonoWAV writes a mono float64 buffer as 16-bit PCM.
func WriteMonoWAV(path string, buf rapt.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.Rate, 16, 1, 1)
	defer enc.Close()

	data := make([]float32, len(buf.Samples))
	for i, s := range buf.Samples {
		data[i] = float32(s)
	}

	out := &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			SampleRate:  buf.Rate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(out)
}

// Downsample derives the decimated buffer Track's first pass needs, per
// spec.md section 6: rate_d ~= rate_o / round(rate_o / (4 *
// maximumAllowedFreq)). pyrapt's own downsampler left a TODO admitting it
// never low-pass-filtered before resampling; this one runs a cascaded
// anti-alias filter (cutoff at the new Nyquist) first to suppress aliasing,
// supplementing that gap per spec.md section 9's invitation to enrich
// ambient audio handling.
func Downsample(original rapt.Buffer, maximumAllowedFreq float64) (rapt.Buffer, error) {
	if original.Rate <= 0 {
		return rapt.Buffer{}, fmt.Errorf("audio: original sample rate must be > 0")
	}
	ratio := float64(original.Rate) / (4 * maximumAllowedFreq)
	divisor := numeric.MaxInt(int(ratio+0.5), 1)
	targetRate := original.Rate / divisor
	if targetRate < 1 {
		return rapt.Buffer{}, fmt.Errorf("audio: derived downsample rate <= 0")
	}
	if targetRate == original.Rate {
		return original, nil
	}

	filtered := lowpassFilter(original.Samples, float32(targetRate)/2.0, float32(original.Rate))

	r, err := dspresample.NewForRates(
		float64(original.Rate),
		float64(targetRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return rapt.Buffer{}, err
	}
	return rapt.Buffer{Rate: targetRate, Samples: r.Process(filtered)}, nil
}

func lowpassFilter(samples []float64, cutoff, sampleRate float32) []float64 {
	lp := dsp.NewAntiAliasFilter(cutoff, sampleRate)
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(lp.Process(float32(s)))
	}
	return out
}
