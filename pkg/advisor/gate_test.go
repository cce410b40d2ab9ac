package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassesDualThreshold(t *testing.T) {
	tests := []struct {
		name        string
		confidence  float64
		uncertainty float64
		confT       float64
		uncT        float64
		expected    bool
	}{
		{"exactly at defaults", 0.80, 0.35, 0.80, 0.35, true},
		{"confident but uncertain", 0.90, 0.50, 0.80, 0.35, false},
		{"certain but not confident", 0.79, 0.10, 0.80, 0.35, false},
		{"both failing", 0.30, 0.90, 0.80, 0.35, false},
		{"custom readiness", 0.72, 0.30, 0.70, 0.35, true},
		{"zero thresholds", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PassesDualThreshold(tt.confidence, tt.uncertainty, tt.confT, tt.uncT))
		})
	}
}

func TestThresholdsPassesIsConjunction(t *testing.T) {
	for c := 0.0; c <= 1.0; c += 0.05 {
		for u := 0.0; u <= 1.0; u += 0.05 {
			expected := c >= DefaultThresholds.Confidence && u <= DefaultThresholds.Uncertainty
			assert.Equal(t, expected, DefaultThresholds.Passes(c, u))
		}
	}
}

func TestNamedThresholds(t *testing.T) {
	assert.Equal(t, Thresholds{Confidence: 0.80, Uncertainty: 0.35}, DefaultThresholds)
	assert.Equal(t, Thresholds{Confidence: 0.70, Uncertainty: 0.35}, ReadinessThresholds)

	assert.False(t, DefaultThresholds.Passes(0.75, 0.30))
	assert.True(t, ReadinessThresholds.Passes(0.75, 0.30))
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		uncertainty float64
		expected    UncertaintyLevel
	}{
		{0, UncertaintyLow},
		{0.35, UncertaintyLow},
		{0.36, UncertaintyMedium},
		{0.60, UncertaintyMedium},
		{0.61, UncertaintyHigh},
		{1, UncertaintyHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelOf(tt.uncertainty), "uncertainty %v", tt.uncertainty)
	}
}
