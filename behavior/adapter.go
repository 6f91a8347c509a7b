package behavior

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/internal/mylog"
)

type (
	// StateStore is the storage collaborator boundary for adaptation state.
	// Persistence is best-effort; a failing store never fails a turn.
	StateStore interface {
		LoadState(ctx context.Context, characterID, userID string) (*entity.AdaptedState, error)
		SaveState(ctx context.Context, state *entity.AdaptedState) error
	}

	// Adapter is the behavior state machine. Each (character, user) pair is
	// either at baseline (zero delta) or adapted (non-zero delta); non-neutral
	// detections accumulate the configured delta, neutral turns decay it back
	// toward baseline.
	Adapter struct {
		conf   *config.BehaviorConfig
		logger *slog.Logger
		store  StateStore

		mu    sync.Mutex
		pairs map[pairKey]*pairState
	}

	pairKey struct {
		characterID string
		userID      string
	}

	pairState struct {
		mu    sync.Mutex
		state *entity.AdaptedState
	}
)

func NewAdapter(conf *config.BehaviorConfig, logger *slog.Logger, store StateStore) *Adapter {
	if conf == nil {
		conf = config.NewBehaviorConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		conf:   conf,
		logger: logger,
		store:  store,
		pairs:  make(map[pairKey]*pairState),
	}
}

// Adapt folds one detected emotional state into the pair's adaptation state
// and returns the effective behavior vector. The result is always within the
// declared dimension bounds; there is no error path for range violations.
func (a *Adapter) Adapt(ctx context.Context, character *entity.Character, userID string, detected entity.EmotionalState) (entity.BehaviorVector, error) {
	if character == nil {
		return entity.BehaviorVector{}, errors.Wrapf(errors.ErrInvalidParams, "character is required")
	}

	pair := a.pair(ctx, character.ID, userID)
	pair.mu.Lock()
	defer pair.mu.Unlock()

	state := pair.state
	if detected.IsNeutral() {
		a.decay(state)
	} else {
		a.accumulate(state, character.Baseline, detected.Emotion)
	}
	state.UpdatedAt = time.Now()

	if a.store != nil {
		if err := a.store.SaveState(ctx, state); err != nil {
			a.logger.Warn("failed to persist adaptation state",
				slog.String("characterId", character.ID),
				slog.String("userId", userID),
				mylog.Err(err))
		}
	}

	return state.Effective(character.Baseline), nil
}

// Effective returns the current effective vector without advancing the state
// machine.
func (a *Adapter) Effective(ctx context.Context, character *entity.Character, userID string) entity.BehaviorVector {
	pair := a.pair(ctx, character.ID, userID)
	pair.mu.Lock()
	defer pair.mu.Unlock()
	return pair.state.Effective(character.Baseline)
}

// State returns a copy of the pair's adaptation state.
func (a *Adapter) State(ctx context.Context, characterID, userID string) entity.AdaptedState {
	pair := a.pair(ctx, characterID, userID)
	pair.mu.Lock()
	defer pair.mu.Unlock()
	return *pair.state
}

// accumulate applies the configured delta for emotion, then clamps each
// dimension's delta so baseline+delta can never leave [0,1].
func (a *Adapter) accumulate(state *entity.AdaptedState, baseline entity.BehaviorVector, emotion entity.Emotion) {
	delta := state.Delta.Slice()
	add := a.conf.Deltas[emotion].Slice()
	base := baseline.Slice()

	floats.Add(delta, add)
	for i := range delta {
		delta[i] = min(max(delta[i], -base[i]), 1-base[i])
	}

	state.Delta = entity.VectorFromSlice(delta)
	state.NeutralTurns = 0
	state.TopicNovelty = emotion == entity.EmotionBored
	state.LastEmotion = emotion
}

// decay eases an active delta toward zero. Mood persists across turns rather
// than snapping back; under epsilon the delta is zeroed outright.
func (a *Adapter) decay(state *entity.AdaptedState) {
	delta := state.Delta.Slice()
	floats.Scale(a.conf.DecayFactor, delta)
	state.Delta = entity.VectorFromSlice(delta)
	if state.Delta.IsZero(a.conf.Epsilon) {
		state.Delta = entity.BehaviorVector{}
		state.TopicNovelty = false
	}
	state.NeutralTurns++
	state.LastEmotion = entity.EmotionNeutral
}

// pair returns the live state wrapper for a (character, user) pair, loading
// persisted state on first contact.
func (a *Adapter) pair(ctx context.Context, characterID, userID string) *pairState {
	key := pairKey{characterID: characterID, userID: userID}

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.pairs[key]; ok {
		return existing
	}

	state := &entity.AdaptedState{
		CharacterID: characterID,
		UserID:      userID,
		LastEmotion: entity.EmotionNeutral,
	}
	if a.store != nil {
		if loaded, err := a.store.LoadState(ctx, characterID, userID); err == nil && loaded != nil {
			state = loaded
		} else if err != nil && !errors.Is(err, errors.ErrNotFound) {
			a.logger.Warn("failed to load adaptation state",
				slog.String("characterId", characterID),
				slog.String("userId", userID),
				mylog.Err(err))
		}
	}

	created := &pairState{state: state}
	a.pairs[key] = created
	return created
}
