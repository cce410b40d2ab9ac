package advisor

import (
	"math"
	"strconv"
)

// Confidence curve parameters. An intent boost shifts the whole curve up.
const (
	boostedConfidenceBase   = 0.50
	unboostedConfidenceBase = 0.25
	confidencePerScore      = 0.15
	maxScoreConfidence      = 0.95
)

// Uncertainty parameters
const (
	noIntentPenalty     = 0.15
	ambiguityPenalty    = 0.10
	maxAmbiguityPenalty = 0.30
)

// CalculateConfidence maps a raw score onto [0, 1]. weight discounts a skill
// globally and is clamped to [0, 1].
func CalculateConfidence(score float64, hasIntentBoost bool, weight float64) float64 {
	base := unboostedConfidenceBase
	if hasIntentBoost {
		base = boostedConfidenceBase
	}

	confidence := math.Min(base+math.Max(score, 0)*confidencePerScore, maxScoreConfidence)
	confidence = math.Min(confidence*clamp01(weight), 1.0)
	return round2(confidence)
}

// CalculateUncertainty combines three signals: how many matches were found,
// whether an intent booster fired, and how many matches were ambiguous.
// Negative counts are treated as zero.
func CalculateUncertainty(numMatches int, hasIntentBoost bool, numAmbiguous int) float64 {
	var u float64
	switch {
	case numMatches >= 5:
		u = 0.15
	case numMatches >= 3:
		u = 0.25
	case numMatches >= 1:
		u = 0.40
	default:
		u = 0.70
	}

	if !hasIntentBoost {
		u += noIntentPenalty
	}

	if numAmbiguous > 0 {
		u += math.Min(float64(numAmbiguous)*ambiguityPenalty, maxAmbiguityPenalty)
	}

	return round2(math.Min(u, 1.0))
}

// UncertaintyForMatches derives uncertainty from a skill's match list.
// A nil list is treated as no matches.
func UncertaintyForMatches(matches []Match, hasIntentBoost bool) float64 {
	return CalculateUncertainty(len(matches), hasIntentBoost, CountAmbiguous(matches))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 1))
}

// round2 rounds the exact binary value of v to two decimals in one step,
// so 0.47499999 becomes 0.47.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
