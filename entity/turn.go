package entity

import (
	"time"
)

// Turn is one message of the running session: either the user's message or the
// character's reply. The emotional tag is only set on user turns.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	FromUser  bool      `json:"fromUser"`
	Emotion   Emotion   `json:"emotion,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
