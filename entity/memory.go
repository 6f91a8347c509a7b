package entity

import (
	"time"

	"gorm.io/datatypes"
)

type (
	// MemoryCategory classifies what kind of durable observation a memory is.
	MemoryCategory string

	// Memory is one durable fact or observation a character holds about a
	// user. Importance is computed once at write time and is the explicit
	// retrieval key; it is never re-derived from storage order.
	Memory struct {
		ID          string `json:"id" gorm:"primaryKey"`
		CharacterID string `json:"characterId" gorm:"index:idx_memory_pair"`
		UserID      string `json:"userId" gorm:"index:idx_memory_pair"`

		Content    string         `json:"content"`
		Category   MemoryCategory `json:"category"`
		Importance float64        `json:"importance" gorm:"index"`

		// Emotional context active when the memory was recorded.
		Emotion           Emotion `json:"emotion"`
		EmotionConfidence float64 `json:"emotionConfidence"`

		Topics datatypes.JSONSlice[string] `json:"topics,omitempty"`

		CreatedAt      time.Time `json:"createdAt"`
		LastAccessedAt time.Time `json:"lastAccessedAt" gorm:"index"`
	}

	// ScoredMemory pairs a memory with its composite retrieval score for one
	// query.
	ScoredMemory struct {
		Memory *Memory `json:"memory"`
		Score  float64 `json:"score"`
	}
)

const (
	MemoryCategoryPreference     MemoryCategory = "preference"
	MemoryCategoryFact           MemoryCategory = "fact"
	MemoryCategoryGoal           MemoryCategory = "goal"
	MemoryCategoryEmotionalEvent MemoryCategory = "emotional-event"
)
