package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWeightConfig_Validate covers the sum-to-100 invariant and the
// rejection (never renormalization) of violating configurations.
func TestWeightConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightConfig
		valid   bool
	}{
		{
			name:    "default weights are valid",
			weights: DefaultWeights(),
			valid:   true,
		},
		{
			name:    "uniform weights summing to 100",
			weights: WeightConfig{TechnicalSkills: 25, Experience: 25, Training: 25, Context: 25},
			valid:   true,
		},
		{
			name:    "single criterion carrying all weight",
			weights: WeightConfig{TechnicalSkills: 100},
			valid:   true,
		},
		{
			name:    "sum of 95 is rejected",
			weights: WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 5},
		},
		{
			name:    "sum of 105 is rejected",
			weights: WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 15},
		},
		{
			name:    "negative weight is rejected even when the sum is 100",
			weights: WeightConfig{TechnicalSkills: 110, Experience: -10, Training: 0, Context: 0},
		},
		{
			name:    "zero value is rejected",
			weights: WeightConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidWeights)
			}
		})
	}
}

// TestComputeScore pins the weighted composite computation, including
// the rounding convention at the .5 boundary: half rounds away from
// zero, so 71.5 becomes 72, and values just under the boundary round
// down.
func TestComputeScore(t *testing.T) {
	tests := []struct {
		name      string
		breakdown ScoreBreakdown
		weights   WeightConfig
		expected  int
	}{
		{
			name:      "reference example rounds 71.5 up to 72",
			breakdown: ScoreBreakdown{TechnicalSkills: 70, Experience: 80, Training: 60, Context: 75},
			weights:   WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 10},
			expected:  72, // 28 + 24 + 12 + 7.5 = 71.5
		},
		{
			name:      "value below the half boundary rounds down",
			breakdown: ScoreBreakdown{TechnicalSkills: 70, Experience: 80, Training: 60, Context: 74},
			weights:   WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 10},
			expected:  71, // 71.4
		},
		{
			name:      "exact half at another boundary also rounds up",
			breakdown: ScoreBreakdown{TechnicalSkills: 85, Experience: 80, Training: 80, Context: 85},
			weights:   WeightConfig{TechnicalSkills: 25, Experience: 25, Training: 25, Context: 25},
			expected:  83, // 82.5
		},
		{
			name:      "all zero breakdown",
			breakdown: ScoreBreakdown{},
			weights:   DefaultWeights(),
			expected:  0,
		},
		{
			name:      "perfect breakdown",
			breakdown: ScoreBreakdown{TechnicalSkills: 100, Experience: 100, Training: 100, Context: 100},
			weights:   DefaultWeights(),
			expected:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ComputeScore(tt.breakdown, tt.weights)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score)

			// Determinism: repeated computation yields the same integer.
			again, err := ComputeScore(tt.breakdown, tt.weights)
			require.NoError(t, err)
			assert.Equal(t, score, again)
		})
	}
}

// TestComputeScore_RejectsInvalidWeights verifies that a violating
// configuration yields an error instead of a silently normalized
// score.
func TestComputeScore_RejectsInvalidWeights(t *testing.T) {
	breakdown := ScoreBreakdown{TechnicalSkills: 70, Experience: 80, Training: 60, Context: 75}

	_, err := ComputeScore(breakdown, WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 5})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = ComputeScore(breakdown, WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 15})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

// TestSimulateWeights verifies the what-if recomputation over a result
// set without any oracle involvement.
func TestSimulateWeights(t *testing.T) {
	breakdowns := map[string]ScoreBreakdown{
		"Alice": {TechnicalSkills: 90, Experience: 80, Training: 70, Context: 60},
		"Bob":   {TechnicalSkills: 50, Experience: 90, Training: 40, Context: 80},
	}

	scores, err := SimulateWeights(breakdowns, WeightConfig{TechnicalSkills: 70, Experience: 10, Training: 10, Context: 10})
	require.NoError(t, err)
	assert.Equal(t, 84, scores["Alice"]) // 63 + 8 + 7 + 6
	assert.Equal(t, 56, scores["Bob"])   // 35 + 9 + 4 + 8

	_, err = SimulateWeights(breakdowns, WeightConfig{TechnicalSkills: 50})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

// TestExperienceYears covers the leading-integer parse used by the
// experience sort key.
func TestExperienceYears(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"8 years", 8},
		{"12", 12},
		{"über 10 Jahre", 10},
		{"none", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExperienceYears(tt.raw), "raw %q", tt.raw)
	}
}
