package rapt

import "fmt"

// ConfigError reports an invalid configuration or a buffer/geometry
// combination that cannot produce at least one frame.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rapt: invalid config field %q: %s", e.Field, e.Reason)
}

// NumericError reports a numerically degenerate intermediate result. It
// exists for the case where a fallback cannot be chosen safely; the
// parabolic-interpolation fallback this package actually needs (an
// uninterpolated integer lag when the fit degenerates) never reaches this
// type, since that fallback is always well-defined. Kept for callers that
// add their own numeric steps on top of this package.
type NumericError struct {
	Op     string
	Reason string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("rapt: numeric fallback in %s: %s", e.Op, e.Reason)
}
