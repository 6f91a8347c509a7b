package config

type ContextConfig struct {
	// SessionLimit bounds the session layer to the most recent N turns.
	// Default: 8
	SessionLimit int `json:"sessionLimit,omitempty"`

	// TurnContentRunes caps the rendered content of a single session turn.
	// Default: 200
	TurnContentRunes int `json:"turnContentRunes,omitempty"`

	// BudgetRunes bounds the whole rendered context handed to the generation
	// collaborator. Session is trimmed first, then knowledge; the system and
	// user layers are never trimmed.
	// Default: 6000
	BudgetRunes int `json:"budgetRunes,omitempty"`
}

func NewContextConfig() *ContextConfig {
	return &ContextConfig{
		SessionLimit:     8,
		TurnContentRunes: 200,
		BudgetRunes:      6000,
	}
}
