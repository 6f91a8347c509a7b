package config

type EmotionConfig struct {
	// Threshold is the minimum aggregate score a category must reach before
	// it beats the neutral fallback.
	// Default: 0.3
	Threshold float64 `json:"threshold,omitempty"`

	// HistoryWindow is how many recent turns the detector may consult for
	// disambiguation.
	// Default: 3
	HistoryWindow int `json:"historyWindow,omitempty"`

	// FollowUpBoost is added to the previous turn's non-neutral category when
	// the current message is a short follow-up. The default clears Threshold
	// on its own, so a terse "and this?" keeps the prior turn's reading.
	// Default: 0.3
	FollowUpBoost float64 `json:"followUpBoost,omitempty"`

	// ShortMessageRunes is the length under which a message counts as short
	// for the follow-up and boredom heuristics.
	// Default: 12
	ShortMessageRunes int `json:"shortMessageRunes,omitempty"`
}

func NewEmotionConfig() *EmotionConfig {
	return &EmotionConfig{
		Threshold:         0.3,
		HistoryWindow:     3,
		FollowUpBoost:     0.3,
		ShortMessageRunes: 12,
	}
}
