package educhat

import (
	"context"
	"log/slog"
	"time"

	"github.com/cymond/educhat/engine"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/internal/mylog"
	"github.com/cymond/educhat/internal/sliceutils"
)

type (
	// TurnResult is the outcome of one full conversational turn.
	TurnResult struct {
		Reply         string                `json:"reply"`
		Emotion       entity.EmotionalState `json:"emotion"`
		Effective     entity.BehaviorVector `json:"effective"`
		UsedMemoryIDs []string              `json:"usedMemoryIds,omitempty"`
	}
)

// DetectEmotion classifies a single message against the recent history. Pure
// and deterministic; it never advances any state.
func (r *Runtime) DetectEmotion(text string, history []entity.Turn) entity.EmotionalState {
	return r.detector.Detect(text, history)
}

// Adapt folds a detected emotional state into the pair's adaptation state and
// returns the resulting effective behavior vector.
func (r *Runtime) Adapt(ctx context.Context, characterID, userID string, state entity.EmotionalState) (entity.BehaviorVector, error) {
	character, err := r.Character(characterID)
	if err != nil {
		return entity.BehaviorVector{}, err
	}
	return r.adapter.Adapt(ctx, character, userID, state)
}

// AdaptedState returns a copy of the pair's current adaptation state.
func (r *Runtime) AdaptedState(ctx context.Context, characterID, userID string) entity.AdaptedState {
	return r.adapter.State(ctx, characterID, userID)
}

// RecordMemory scores and stores one explicit memory for the pair.
func (r *Runtime) RecordMemory(ctx context.Context, characterID, userID, content string, category entity.MemoryCategory, state entity.EmotionalState) error {
	if _, err := r.Character(characterID); err != nil {
		return err
	}
	_, err := r.memoryService.Record(ctx, characterID, userID, content, category, state)
	return err
}

// RetrieveMemories returns the pair's most relevant memories for a query,
// best first.
func (r *Runtime) RetrieveMemories(ctx context.Context, characterID, userID, query string, limit int) ([]entity.ScoredMemory, error) {
	if _, err := r.Character(characterID); err != nil {
		return nil, err
	}
	return r.memoryService.Retrieve(ctx, characterID, userID, query, limit)
}

// BuildContext assembles the four-layer bundle for a prospective message
// without advancing the adaptation state machine or the session.
func (r *Runtime) BuildContext(ctx context.Context, characterID, userID, message string) (*engine.ContextBundle, error) {
	character, err := r.Character(characterID)
	if err != nil {
		return nil, err
	}

	sess := r.session(characterID, userID)
	sess.mu.Lock()
	history := append([]entity.Turn(nil), sess.turns...)
	sess.mu.Unlock()

	effective := r.adapter.Effective(ctx, character, userID)
	state := r.adapter.State(ctx, characterID, userID)
	knowledge := r.retrieveKnowledge(ctx, characterID, userID, message)

	return r.engine.BuildBundle(character, effective, state, history, knowledge, message)
}

// ProcessTurn runs the whole pipeline for one user message: detect, adapt,
// retrieve, assemble, generate, then feed the exchange back into the session
// and the memory service. Memories rendered into the context get their access
// time refreshed. Turns for the same (character, user) pair are serialized;
// distinct pairs proceed concurrently.
//
// Adaptation commits even when the turn is later cancelled or generation
// fails. Memory capture is skipped on a cancelled context.
func (r *Runtime) ProcessTurn(ctx context.Context, characterID, userID, message string) (*TurnResult, error) {
	character, err := r.Character(characterID)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "message is required")
	}

	sess := r.session(characterID, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	history := append([]entity.Turn(nil), sess.turns...)

	detected := r.detector.Detect(message, history)
	effective, err := r.adapter.Adapt(ctx, character, userID, detected)
	if err != nil {
		return nil, err
	}
	state := r.adapter.State(ctx, characterID, userID)
	knowledge := r.retrieveKnowledge(ctx, characterID, userID, message)

	bundle, err := r.engine.BuildBundle(character, effective, state, history, knowledge, message)
	if err != nil {
		return nil, err
	}

	reply, err := r.engine.Generate(ctx, bundle)
	if err != nil {
		// The adaptation above stays committed; only the reply is lost.
		return nil, err
	}

	now := time.Now()
	sess.turns = append(sess.turns,
		entity.Turn{Speaker: userID, Content: message, FromUser: true, Emotion: detected.Emotion, CreatedAt: now},
		entity.Turn{Speaker: character.Name, Content: reply, CreatedAt: now},
	)
	sess.turns = sliceutils.Last(sess.turns, r.contextConfig.SessionLimit)

	if len(bundle.UsedMemoryIDs) > 0 {
		r.memoryService.Touch(ctx, characterID, userID, bundle.UsedMemoryIDs)
	}

	if ctx.Err() == nil {
		r.memoryService.Capture(ctx, characterID, userID, message, reply, detected)
	}

	return &TurnResult{
		Reply:         reply,
		Emotion:       detected,
		Effective:     effective,
		UsedMemoryIDs: bundle.UsedMemoryIDs,
	}, nil
}

// retrieveKnowledge degrades to an empty layer when the memory collaborator
// is unavailable.
func (r *Runtime) retrieveKnowledge(ctx context.Context, characterID, userID, message string) []entity.ScoredMemory {
	knowledge, err := r.memoryService.Retrieve(ctx, characterID, userID, message, r.memoryConfig.RetrieveLimit)
	if err != nil {
		r.logger.Warn("memory retrieval failed, continuing without knowledge layer",
			slog.String("characterId", characterID),
			slog.String("userId", userID),
			mylog.Err(err))
		return nil
	}
	return knowledge
}
