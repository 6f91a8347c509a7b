package entity

import (
	"time"
)

// AdaptedState is the mutable emotional-adaptation overlay for one
// (character, user) pair. A zero delta vector means the pair is at baseline.
// It is created on first contact, updated every turn, and only deleted with
// the pair itself.
type AdaptedState struct {
	CharacterID string `json:"characterId" gorm:"primaryKey"`
	UserID      string `json:"userId" gorm:"primaryKey"`

	Delta BehaviorVector `json:"delta" gorm:"embedded;embeddedPrefix:delta_"`

	// NeutralTurns counts turns since the last non-neutral detection.
	NeutralTurns int `json:"neutralTurns"`

	// TopicNovelty is set when the detected boredom calls for a topic switch
	// and cleared on the next non-bored detection.
	TopicNovelty bool `json:"topicNovelty"`

	LastEmotion Emotion   `json:"lastEmotion"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Effective applies the delta to a baseline and clamps every dimension to its
// declared [0,1] range. This is the invariant that keeps adaptation from ever
// producing an out-of-range vector.
func (s *AdaptedState) Effective(baseline BehaviorVector) BehaviorVector {
	base := baseline.Slice()
	delta := s.Delta.Slice()
	for i := range base {
		base[i] += delta[i]
	}
	return VectorFromSlice(base).Clamped(0, 1)
}
