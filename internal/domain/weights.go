package domain

import (
	"fmt"
	"math"
)

// WeightSum is the exact total the four scoring weights must reach
// before a composite score is considered authoritative.
const WeightSum = 100

// WeightConfig holds the relative importance of the four scoring
// sub-criteria as integer percentages. A configuration is only valid
// when the four weights sum to exactly WeightSum; invalid
// configurations are rejected, never renormalized, because
// renormalizing would silently change user intent.
type WeightConfig struct {
	TechnicalSkills int `json:"technical_skills" yaml:"technical_skills" mapstructure:"technical_skills" validate:"min=0,max=100"`
	Experience      int `json:"experience" yaml:"experience" mapstructure:"experience" validate:"min=0,max=100"`
	Training        int `json:"training" yaml:"training" mapstructure:"training" validate:"min=0,max=100"`
	Context         int `json:"context" yaml:"context" mapstructure:"context" validate:"min=0,max=100"`
}

// DefaultWeights returns the standard weight distribution used when the
// caller does not supply one.
func DefaultWeights() WeightConfig {
	return WeightConfig{TechnicalSkills: 40, Experience: 30, Training: 20, Context: 10}
}

// Sum returns the total of the four weights.
func (w WeightConfig) Sum() int {
	return w.TechnicalSkills + w.Experience + w.Training + w.Context
}

// Validate checks the weight invariant. It returns an error wrapping
// ErrInvalidWeights when any weight is negative or the sum differs
// from WeightSum.
func (w WeightConfig) Validate() error {
	if w.TechnicalSkills < 0 || w.Experience < 0 || w.Training < 0 || w.Context < 0 {
		return fmt.Errorf("%w: weights must be non-negative, got %+v", ErrInvalidWeights, w)
	}
	if s := w.Sum(); s != WeightSum {
		return fmt.Errorf("%w: weights sum to %d, want %d", ErrInvalidWeights, s, WeightSum)
	}
	return nil
}

// ScoreBreakdown holds the four independently scored sub-criteria for
// one candidate on a 0-100 scale. It feeds the weight simulation and is
// independent of any particular WeightConfig.
type ScoreBreakdown struct {
	TechnicalSkills int `json:"technical_skills" yaml:"technical_skills" mapstructure:"technical_skills" validate:"min=0,max=100"`
	Experience      int `json:"experience" yaml:"experience" mapstructure:"experience" validate:"min=0,max=100"`
	Training        int `json:"training" yaml:"training" mapstructure:"training" validate:"min=0,max=100"`
	Context         int `json:"context" yaml:"context" mapstructure:"context" validate:"min=0,max=100"`
}

// ComputeScore derives the weighted composite score for one breakdown.
// The result is rounded half away from zero, so a raw value of 71.5
// yields 72. The computation is pure and deterministic, which lets
// callers re-derive scores for alternate weight configurations without
// another oracle call.
//
// Weights that do not satisfy the sum invariant produce an error; the
// score is never clamped or renormalized.
func ComputeScore(b ScoreBreakdown, w WeightConfig) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	raw := float64(b.TechnicalSkills)*float64(w.TechnicalSkills)/100 +
		float64(b.Experience)*float64(w.Experience)/100 +
		float64(b.Training)*float64(w.Training)/100 +
		float64(b.Context)*float64(w.Context)/100
	return int(math.Round(raw)), nil
}

// SimulateWeights recomputes composite scores for a set of candidate
// breakdowns under an alternate weight configuration. The returned map
// is keyed by the same candidate names as the input.
func SimulateWeights(breakdowns map[string]ScoreBreakdown, w WeightConfig) (map[string]int, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	scores := make(map[string]int, len(breakdowns))
	for name, b := range breakdowns {
		score, err := ComputeScore(b, w)
		if err != nil {
			return nil, err
		}
		scores[name] = score
	}
	return scores, nil
}
