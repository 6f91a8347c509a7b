package config

import (
	"time"

	"github.com/cymond/educhat/entity"
)

type MemoryConfig struct {
	// Capacity caps stored memories per (character, user) pair. The lowest
	// composite-score memories are evicted first when exceeded.
	// Default: 100
	Capacity int `json:"capacity,omitempty"`

	// RetrieveLimit is the default top-K for the knowledge layer.
	// Default: 5
	RetrieveLimit int `json:"retrieveLimit,omitempty"`

	// Composite retrieval score weights.
	// Default: 0.7 importance, 0.3 recency, 0.1 topic-overlap bonus.
	ImportanceWeight float64 `json:"importanceWeight,omitempty"`
	RecencyWeight    float64 `json:"recencyWeight,omitempty"`
	TopicBonus       float64 `json:"topicBonus,omitempty"`

	// RecencyHalfLife controls the exponential decay of the recency weight
	// with time since last access.
	// Default: 72h
	RecencyHalfLife time.Duration `json:"recencyHalfLife,omitempty"`

	// NoveltyThreshold is the token-overlap ratio above which a new candidate
	// is merged into an existing memory instead of inserted.
	// Default: 0.8
	NoveltyThreshold float64 `json:"noveltyThreshold,omitempty"`

	// CategoryBase is the write-time base importance per category. Goals and
	// explicit preferences outrank transient facts.
	CategoryBase map[entity.MemoryCategory]float64 `json:"categoryBase,omitempty"`

	// EmotionBoost is added when the memory is recorded under a non-neutral
	// emotional state.
	// Default: 0.1
	EmotionBoost float64 `json:"emotionBoost,omitempty"`

	// SqliteEnabled activates the sqlite storage collaborator; when disabled
	// the in-memory store is used.
	// Default: false
	SqliteEnabled bool `json:"sqliteEnabled,omitempty"`

	// SqlitePath is the sqlite database file path.
	SqlitePath string `json:"sqlitePath,omitempty"`
}

func NewMemoryConfig() *MemoryConfig {
	return &MemoryConfig{
		Capacity:         100,
		RetrieveLimit:    5,
		ImportanceWeight: 0.7,
		RecencyWeight:    0.3,
		TopicBonus:       0.1,
		RecencyHalfLife:  72 * time.Hour,
		NoveltyThreshold: 0.8,
		CategoryBase: map[entity.MemoryCategory]float64{
			entity.MemoryCategoryGoal:           0.9,
			entity.MemoryCategoryPreference:     0.75,
			entity.MemoryCategoryFact:           0.6,
			entity.MemoryCategoryEmotionalEvent: 0.5,
		},
		EmotionBoost: 0.1,
	}
}
