package advisor

// Thresholds configure the dual-threshold gate
type Thresholds struct {
	Confidence  float64 `json:"confidence_threshold"`
	Uncertainty float64 `json:"uncertainty_threshold"`
}

var (
	// DefaultThresholds gate automatic skill routing
	DefaultThresholds = Thresholds{Confidence: 0.80, Uncertainty: 0.35}
	// ReadinessThresholds gate whether a task is ready to start
	ReadinessThresholds = Thresholds{Confidence: 0.70, Uncertainty: 0.35}
)

// Passes reports whether confidence is at least the confidence threshold
// and uncertainty at most the uncertainty threshold. Both bounds are inclusive.
func (t Thresholds) Passes(confidence, uncertainty float64) bool {
	return confidence >= t.Confidence && uncertainty <= t.Uncertainty
}

// PassesDualThreshold applies the gate with explicit thresholds.
// High confidence alone is not enough when uncertainty is also high.
func PassesDualThreshold(confidence, uncertainty, confThreshold, uncertThreshold float64) bool {
	return Thresholds{Confidence: confThreshold, Uncertainty: uncertThreshold}.Passes(confidence, uncertainty)
}

// UncertaintyLevel buckets uncertainty into an action
type UncertaintyLevel string

const (
	// UncertaintyLow means proceed
	UncertaintyLow UncertaintyLevel = "LOW"
	// UncertaintyMedium means verify before proceeding
	UncertaintyMedium UncertaintyLevel = "MEDIUM"
	// UncertaintyHigh means ask for clarification
	UncertaintyHigh UncertaintyLevel = "HIGH"
)

// LevelOf classifies an uncertainty value
func LevelOf(uncertainty float64) UncertaintyLevel {
	switch {
	case uncertainty <= 0.35:
		return UncertaintyLow
	case uncertainty <= 0.60:
		return UncertaintyMedium
	default:
		return UncertaintyHigh
	}
}
