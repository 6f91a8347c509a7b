package config

import (
	"github.com/cymond/educhat/entity"
)

type BehaviorConfig struct {
	// Deltas maps each non-neutral emotion to the additive adjustment applied
	// on detection. Exact magnitudes are tuning, not contract; tests assert
	// bounds and monotonicity only.
	Deltas map[entity.Emotion]entity.BehaviorVector `json:"deltas,omitempty"`

	// DecayFactor multiplies the active delta on every neutral turn, easing
	// the pair back to baseline instead of snapping.
	// Default: 0.7
	DecayFactor float64 `json:"decayFactor,omitempty"`

	// Epsilon is the magnitude under which a decayed delta snaps to zero.
	// Default: 0.01
	Epsilon float64 `json:"epsilon,omitempty"`
}

// NewBehaviorConfig returns the default adaptation table. Frustration and
// overwhelm raise patience and cut verbosity; confusion asks for more
// step-by-step detail; boredom reaches for humor, energy and a topic switch.
func NewBehaviorConfig() *BehaviorConfig {
	return &BehaviorConfig{
		Deltas: map[entity.Emotion]entity.BehaviorVector{
			entity.EmotionFrustrated: {
				Patience:  0.30,
				Formality: -0.10,
				Humor:     -0.10,
				Verbosity: -0.15,
			},
			entity.EmotionOverwhelmed: {
				Patience:   0.50,
				Enthusiasm: -0.10,
				Verbosity:  -0.30,
			},
			entity.EmotionConfused: {
				Patience:  0.20,
				Verbosity: 0.25,
			},
			entity.EmotionBored: {
				Humor:      0.25,
				Enthusiasm: 0.40,
				Verbosity:  -0.10,
			},
			entity.EmotionExcited: {
				Enthusiasm: 0.20,
				Verbosity:  0.15,
			},
			entity.EmotionEngaged: {
				Enthusiasm: 0.10,
			},
		},
		DecayFactor: 0.7,
		Epsilon:     0.01,
	}
}
