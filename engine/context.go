package engine

import (
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/internal/sliceutils"
	"github.com/cymond/educhat/internal/stringutils"
)

type (
	// SystemLayer carries the persona identity and the turn's effective
	// behavior vector. It is never truncated.
	SystemLayer struct {
		Character *entity.Character     `json:"character"`
		Effective entity.BehaviorVector `json:"effective"`
		State     entity.AdaptedState   `json:"state"`

		// Hint is the character's style instruction for the active emotion.
		Hint string `json:"hint,omitempty"`
	}

	// ContextBundle is the four-layer projection handed to the generation
	// collaborator: System, Session, Knowledge, User, in that order. It is
	// assembled fresh each turn, reproducible from the same inputs, and never
	// persisted.
	ContextBundle struct {
		System    SystemLayer           `json:"system"`
		Session   []entity.Turn         `json:"session"`
		Knowledge []entity.ScoredMemory `json:"knowledge"`
		User      string                `json:"user"`

		// UsedMemoryIDs records which memories made it into the bundle, for
		// access-time recency refresh.
		UsedMemoryIDs []string `json:"usedMemoryIds,omitempty"`
	}
)

// BuildBundle composes the four layers into a bundle within the configured
// rune budget. Session trims oldest-first, then knowledge drops its lowest
// composite scores; the system and user layers always survive intact.
func (e *Engine) BuildBundle(
	character *entity.Character,
	effective entity.BehaviorVector,
	state entity.AdaptedState,
	session []entity.Turn,
	knowledge []entity.ScoredMemory,
	userMessage string,
) (*ContextBundle, error) {
	if character == nil {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "character is required")
	}

	session = sliceutils.Last(session, e.conf.SessionLimit)
	trimmed := make([]entity.Turn, len(session))
	for i, turn := range session {
		turn.Content = stringutils.Truncate(turn.Content, e.conf.TurnContentRunes)
		trimmed[i] = turn
	}

	bundle := &ContextBundle{
		System: SystemLayer{
			Character: character,
			Effective: effective,
			State:     state,
			Hint:      character.AdaptationHints[state.LastEmotion],
		},
		Session:   trimmed,
		Knowledge: knowledge,
		User:      userMessage,
	}

	for {
		rendered, err := e.Render(bundle)
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(rendered) <= e.conf.BudgetRunes {
			break
		}
		if len(bundle.Session) > 0 {
			bundle.Session = bundle.Session[1:]
			continue
		}
		if len(bundle.Knowledge) > 0 {
			// Knowledge arrives score-descending; the tail is the cheapest.
			bundle.Knowledge = bundle.Knowledge[:len(bundle.Knowledge)-1]
			continue
		}
		// Only the untrimmable layers remain.
		break
	}

	bundle.UsedMemoryIDs = lo.Map(bundle.Knowledge, func(m entity.ScoredMemory, _ int) string {
		return m.Memory.ID
	})

	return bundle, nil
}
