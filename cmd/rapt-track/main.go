// Command rapt-track estimates F0 over time for a mono WAV file using RAPT.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/rapt/audio"
	"github.com/cwbudde/rapt/config"
	"github.com/cwbudde/rapt/rapt"
)

func main() {
	wavPath := flag.String("wav", "", "Input mono WAV path (required)")
	configPath := flag.String("config", "", "Optional JSON config file overriding RAPT defaults")
	minFreq := flag.Float64("min-freq", 0, "Override minimum_allowed_freq (Hz); 0 keeps config/default")
	maxFreq := flag.Float64("max-freq", 0, "Override maximum_allowed_freq (Hz); 0 keeps config/default")
	jsonOut := flag.Bool("json", false, "Print results as a JSON array of {time_sec, f0_hz, voiced}")
	flag.Parse()

	if *wavPath == "" {
		die("missing -wav")
	}

	cfg := rapt.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadJSON(*configPath)
		if err != nil {
			die("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *minFreq > 0 {
		cfg.MinimumAllowedFreq = *minFreq
	}
	if *maxFreq > 0 {
		cfg.MaximumAllowedFreq = *maxFreq
	}

	original, err := audio.ReadWAVMono(*wavPath)
	if err != nil {
		die("failed to read wav: %v", err)
	}

	downsampled, err := audio.Downsample(original, cfg.MaximumAllowedFreq)
	if err != nil {
		die("failed to downsample: %v", err)
	}

	f0, err := rapt.Track(original, downsampled, cfg)
	if err != nil {
		die("pitch tracking failed: %v", err)
	}

	if *jsonOut {
		printJSON(f0, cfg)
		return
	}
	printPlain(f0)
}

type frameResult struct {
	TimeSec float64 `json:"time_sec"`
	F0Hz    float64 `json:"f0_hz"`
	Voiced  bool    `json:"voiced"`
}

func printJSON(f0 []float64, cfg rapt.Config) {
	results := make([]frameResult, len(f0))
	for i, v := range f0 {
		results[i] = frameResult{
			TimeSec: float64(i) * cfg.FrameStepSize,
			F0Hz:    v,
			Voiced:  v > 0,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		die("failed to encode output: %v", err)
	}
}

func printPlain(f0 []float64) {
	for _, v := range f0 {
		fmt.Println(v)
	}
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "rapt-track: "+format+"\n", args...)
	os.Exit(1)
}
