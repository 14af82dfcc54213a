// Package config loads a rapt.Config from a JSON file on top of
// rapt.NewDefaultConfig, following the teacher's preset-loading shape:
// pointer fields record which options the caller actually set, and each is
// range-checked before being applied.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/rapt/rapt"
)

// File is the JSON schema for a rapt config file. Every field is optional;
// omitted fields keep rapt.NewDefaultConfig's value.
type File struct {
	MaximumAllowedFreq    *float64 `json:"maximum_allowed_freq"`
	MinimumAllowedFreq    *float64 `json:"minimum_allowed_freq"`
	FrameStepSize         *float64 `json:"frame_step_size"`
	CorrelationWindowSize *float64 `json:"correlation_window_size"`
	MinAcceptablePeakVal  *float64 `json:"min_acceptable_peak_val"`
	MaxHypothesesPerFrame *int     `json:"max_hypotheses_per_frame"`
	AdditiveConstant      *float64 `json:"additive_constant"`
	VoicingBias           *float64 `json:"voicing_bias"`
	LagWeight             *float64 `json:"lag_weight"`
	FreqWeight            *float64 `json:"freq_weight"`
	DoublingCost          *float64 `json:"doubling_cost"`
	TransitionCost        *float64 `json:"transition_cost"`
	SpecModTransitionCost *float64 `json:"spec_mod_transition_cost"`
	AmpModTransitionCost  *float64 `json:"amp_mod_transition_cost"`
}

// LoadJSON loads a config JSON file and applies it on top of
// rapt.NewDefaultConfig.
func LoadJSON(path string) (rapt.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return rapt.Config{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return rapt.Config{}, err
	}

	cfg := rapt.NewDefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return rapt.Config{}, err
	}
	return cfg, nil
}

// ApplyFile overlays the set fields of f onto an existing Config, returning
// an error (without mutating dst) if an overridden field is out of range.
func ApplyFile(dst *rapt.Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("config: nil destination")
	}
	if f == nil {
		return nil
	}

	next := *dst

	if f.MaximumAllowedFreq != nil {
		if *f.MaximumAllowedFreq <= 0 {
			return fmt.Errorf("config: maximum_allowed_freq must be > 0")
		}
		next.MaximumAllowedFreq = *f.MaximumAllowedFreq
	}
	if f.MinimumAllowedFreq != nil {
		if *f.MinimumAllowedFreq <= 0 {
			return fmt.Errorf("config: minimum_allowed_freq must be > 0")
		}
		next.MinimumAllowedFreq = *f.MinimumAllowedFreq
	}
	if f.FrameStepSize != nil {
		if *f.FrameStepSize <= 0 {
			return fmt.Errorf("config: frame_step_size must be > 0")
		}
		next.FrameStepSize = *f.FrameStepSize
	}
	if f.CorrelationWindowSize != nil {
		if *f.CorrelationWindowSize <= 0 {
			return fmt.Errorf("config: correlation_window_size must be > 0")
		}
		next.CorrelationWindowSize = *f.CorrelationWindowSize
	}
	if f.MinAcceptablePeakVal != nil {
		if *f.MinAcceptablePeakVal <= 0 || *f.MinAcceptablePeakVal > 1 {
			return fmt.Errorf("config: min_acceptable_peak_val must be in (0, 1]")
		}
		next.MinAcceptablePeakVal = *f.MinAcceptablePeakVal
	}
	if f.MaxHypothesesPerFrame != nil {
		if *f.MaxHypothesesPerFrame < 2 {
			return fmt.Errorf("config: max_hypotheses_per_frame must be >= 2")
		}
		next.MaxHypothesesPerFrame = *f.MaxHypothesesPerFrame
	}
	if f.AdditiveConstant != nil {
		if *f.AdditiveConstant < 0 {
			return fmt.Errorf("config: additive_constant must be >= 0")
		}
		next.AdditiveConstant = *f.AdditiveConstant
	}
	if f.VoicingBias != nil {
		next.VoicingBias = *f.VoicingBias
	}
	if f.LagWeight != nil {
		if *f.LagWeight < 0 {
			return fmt.Errorf("config: lag_weight must be >= 0")
		}
		next.LagWeight = *f.LagWeight
	}
	if f.FreqWeight != nil {
		if *f.FreqWeight < 0 {
			return fmt.Errorf("config: freq_weight must be >= 0")
		}
		next.FreqWeight = *f.FreqWeight
	}
	if f.DoublingCost != nil {
		if *f.DoublingCost < 0 {
			return fmt.Errorf("config: doubling_cost must be >= 0")
		}
		next.DoublingCost = *f.DoublingCost
	}
	if f.TransitionCost != nil {
		if *f.TransitionCost < 0 {
			return fmt.Errorf("config: transition_cost must be >= 0")
		}
		next.TransitionCost = *f.TransitionCost
	}
	if f.SpecModTransitionCost != nil {
		if *f.SpecModTransitionCost < 0 {
			return fmt.Errorf("config: spec_mod_transition_cost must be >= 0")
		}
		next.SpecModTransitionCost = *f.SpecModTransitionCost
	}
	if f.AmpModTransitionCost != nil {
		if *f.AmpModTransitionCost < 0 {
			return fmt.Errorf("config: amp_mod_transition_cost must be >= 0")
		}
		next.AmpModTransitionCost = *f.AmpModTransitionCost
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*dst = next
	return nil
}
