package entity

import (
	"github.com/cymond/educhat/errors"
)

type (
	// Character is the immutable personality profile of one synthetic persona.
	// Runtime adaptation never mutates it; only administrative edits do.
	Character struct {
		ID                 string `json:"id"`
		Name               string `json:"name"`
		Archetype          string `json:"archetype,omitempty"`
		Age                int    `json:"age,omitempty"`
		Occupation         string `json:"occupation,omitempty"`
		CulturalBackground string `json:"culturalBackground,omitempty"`

		Baseline BehaviorVector `json:"baseline"`

		KnowledgeDomains     []string `json:"knowledgeDomains,omitempty"`
		TeachingSpecialties  []string `json:"teachingSpecialties,omitempty"`
		ConversationStarters []string `json:"conversationStarters,omitempty"`

		// AdaptationHints are per-emotion style instructions rendered into the
		// system layer while that emotion's adaptation is active.
		AdaptationHints map[Emotion]string `json:"adaptationHints,omitempty"`
	}
)

func errInvalidDimension(d Dimension, v float64) error {
	return errors.Wrapf(errors.ErrInvalidParams, "dimension %q out of range: %f", d, v)
}

// Validate checks identity and baseline bounds. Call at construction and after
// every administrative edit.
func (c *Character) Validate() error {
	if c.ID == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "character id is required")
	}
	if c.Name == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "character name is required")
	}
	if err := c.Baseline.Validate(); err != nil {
		return errors.Wrapf(err, "character %q baseline", c.ID)
	}
	return nil
}

// PatienceLevel presents the baseline patience as its ordinal.
func (c *Character) PatienceLevel() PatienceLevel {
	return PatienceLevelOf(c.Baseline.Patience)
}
