package rapt

// Config is the immutable bag of tunable parameters for one Track call.
// Construct it with NewDefaultConfig and adjust the exported fields before
// use; nothing in this package mutates a Config after validation.
type Config struct {
	MaximumAllowedFreq float64 // Hz, upper F0 bound; sets k_min
	MinimumAllowedFreq float64 // Hz, lower F0 bound; sets K

	FrameStepSize          float64 // seconds, frame advance z
	CorrelationWindowSize  float64 // seconds, window n
	MinAcceptablePeakVal   float64 // (0,1], threshold factor tau/theta_max
	MaxHypothesesPerFrame  int     // >= 2, includes the unvoiced slot
	AdditiveConstant       float64 // >= 0, denominator regulariser C, 2nd pass

	VoicingBias           float64 // offset applied to unvoiced local cost
	LagWeight             float64 // >= 0, controls normalised beta
	FreqWeight            float64 // >= 0, scales V->V cost
	DoublingCost          float64 // >= 0, baseline V->V cost
	TransitionCost        float64 // >= 0, baseline voicing-change cost
	SpecModTransitionCost float64 // >= 0, weights S_i
	AmpModTransitionCost  float64 // >= 0, weights rr_i
}

// NewDefaultConfig returns the parameter set recommended by spec.md section 6.
func NewDefaultConfig() Config {
	return Config{
		MaximumAllowedFreq:    500,
		MinimumAllowedFreq:    50,
		FrameStepSize:         0.01,
		CorrelationWindowSize: 0.0075,
		MinAcceptablePeakVal:  0.3,
		MaxHypothesesPerFrame: 20,
		AdditiveConstant:      10000,
		VoicingBias:           0.0,
		LagWeight:             0.3,
		FreqWeight:            0.02,
		DoublingCost:          0.35,
		TransitionCost:        0.005,
		SpecModTransitionCost: 0.5,
		AmpModTransitionCost:  100,
	}
}

// Validate checks range constraints that don't depend on a specific audio
// buffer. Geometry-dependent checks (window/lag derivations) happen in
// deriveGeometry, which returns a ConfigError of its own when the combination
// of this Config and a buffer's sample rate yields a degenerate frame count.
func (c Config) Validate() error {
	switch {
	case c.MaximumAllowedFreq <= 0:
		return &ConfigError{"MaximumAllowedFreq", "must be > 0"}
	case c.MinimumAllowedFreq <= 0:
		return &ConfigError{"MinimumAllowedFreq", "must be > 0"}
	case c.MinimumAllowedFreq >= c.MaximumAllowedFreq:
		return &ConfigError{"MinimumAllowedFreq", "must be < MaximumAllowedFreq"}
	case c.FrameStepSize <= 0:
		return &ConfigError{"FrameStepSize", "must be > 0"}
	case c.CorrelationWindowSize <= 0:
		return &ConfigError{"CorrelationWindowSize", "must be > 0"}
	case c.MinAcceptablePeakVal <= 0 || c.MinAcceptablePeakVal > 1:
		return &ConfigError{"MinAcceptablePeakVal", "must be in (0, 1]"}
	case c.MaxHypothesesPerFrame < 2:
		return &ConfigError{"MaxHypothesesPerFrame", "must be >= 2"}
	case c.AdditiveConstant < 0:
		return &ConfigError{"AdditiveConstant", "must be >= 0"}
	case c.LagWeight < 0:
		return &ConfigError{"LagWeight", "must be >= 0"}
	case c.FreqWeight < 0:
		return &ConfigError{"FreqWeight", "must be >= 0"}
	case c.DoublingCost < 0:
		return &ConfigError{"DoublingCost", "must be >= 0"}
	case c.TransitionCost < 0:
		return &ConfigError{"TransitionCost", "must be >= 0"}
	case c.SpecModTransitionCost < 0:
		return &ConfigError{"SpecModTransitionCost", "must be >= 0"}
	case c.AmpModTransitionCost < 0:
		return &ConfigError{"AmpModTransitionCost", "must be >= 0"}
	}
	return nil
}
