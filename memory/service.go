package memory

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/internal/mylog"
	"github.com/cymond/educhat/internal/stringutils"
)

type (
	// Service scores, persists and retrieves per-(character, user) memories.
	// Durability is best-effort: a failing store collaborator degrades the
	// turn, never blocks it.
	Service interface {
		Record(ctx context.Context, characterID, userID, content string, category entity.MemoryCategory, state entity.EmotionalState) (*entity.Memory, error)
		Retrieve(ctx context.Context, characterID, userID, query string, limit int) ([]entity.ScoredMemory, error)
		Capture(ctx context.Context, characterID, userID, userMessage, reply string, state entity.EmotionalState)
		Touch(ctx context.Context, characterID, userID string, ids []string)
		Close()
	}

	service struct {
		conf   *config.MemoryConfig
		logger *slog.Logger
		store  Store

		// Capture jobs run on a single worker, so writes keep their enqueue
		// order per pair.
		jobs chan captureJob
		wg   sync.WaitGroup
	}

	captureJob struct {
		characterID string
		userID      string
		content     string
		category    entity.MemoryCategory
		state       entity.EmotionalState
	}
)

var (
	_ Service = (*service)(nil)
)

// Importance modifiers applied on top of the category base.
var (
	highValueKeywords = []string{"goal", "important", "always", "never", "love", "hate", "struggling", "confused"}
	hedgePhrases      = []string{"i think", "maybe", "probably", "sometimes"}
)

func NewService(conf *config.MemoryConfig, logger *slog.Logger, store Store) Service {
	if conf == nil {
		conf = config.NewMemoryConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = NewInMemoryStore()
	}

	s := &service{
		conf:   conf,
		logger: logger,
		store:  store,
		jobs:   make(chan captureJob, 64),
	}

	s.wg.Add(1)
	go s.captureWorker()

	return s
}

// Record scores and persists one memory. Near-duplicate content is merged
// into the existing memory instead of inserted. A store failure is reported
// as a warning and swallowed: the turn proceeds without that memory.
func (s *service) Record(ctx context.Context, characterID, userID, content string, category entity.MemoryCategory, state entity.EmotionalState) (*entity.Memory, error) {
	if characterID == "" || userID == "" || strings.TrimSpace(content) == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "characterId, userId and content are required")
	}

	importance := s.scoreImportance(category, content, state)

	existing, err := s.store.List(ctx, characterID, userID)
	if err != nil {
		s.logger.Warn("memory list failed, skipping novelty and eviction checks", mylog.Err(err))
		existing = nil
	}

	// Novelty: merge near-duplicates rather than stacking copies.
	if merged := s.mergeDuplicate(ctx, existing, content, importance); merged != nil {
		return merged, nil
	}

	now := time.Now()
	memory := &entity.Memory{
		ID:                uuid.NewString(),
		CharacterID:       characterID,
		UserID:            userID,
		Content:           cleanContent(content),
		Category:          category,
		Importance:        importance,
		Emotion:           state.Emotion,
		EmotionConfidence: state.Confidence,
		Topics:            ExtractTopics(content),
		CreatedAt:         now,
		LastAccessedAt:    now,
	}

	if err := s.store.Put(ctx, memory); err != nil {
		s.logger.Warn("memory write failed, discarding candidate",
			slog.String("characterId", characterID),
			slog.String("userId", userID),
			mylog.Err(err))
		return nil, nil
	}

	s.evict(ctx, characterID, userID, append(existing, memory), memory.ID)

	return memory, nil
}

// Retrieve returns the top-limit memories by composite score. It is read-only:
// access times are refreshed by Touch, for the memories that actually make it
// into the assembled context. A failing store surfaces as
// ErrStorageUnavailable so callers can degrade to an empty knowledge layer.
func (s *service) Retrieve(ctx context.Context, characterID, userID, query string, limit int) ([]entity.ScoredMemory, error) {
	if limit <= 0 {
		limit = s.conf.RetrieveLimit
	}

	memories, err := s.store.List(ctx, characterID, userID)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStorageUnavailable, "memory retrieval: %v", err)
	}
	if len(memories) == 0 {
		return nil, nil
	}

	now := time.Now()
	queryTopics := ExtractTopics(query)

	scored := lo.Map(memories, func(memory *entity.Memory, _ int) entity.ScoredMemory {
		return entity.ScoredMemory{
			Memory: memory,
			Score:  s.composite(memory, queryTopics, now),
		}
	})

	// Stable ordering: score, then recency of creation, then id. Repeated
	// calls without intervening writes return the same top-k.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if !scored[i].Memory.CreatedAt.Equal(scored[j].Memory.CreatedAt) {
			return scored[i].Memory.CreatedAt.After(scored[j].Memory.CreatedAt)
		}
		return scored[i].Memory.ID < scored[j].Memory.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// Capture extracts memory candidates from a completed exchange, user message
// and reply both, and records them asynchronously. A cancelled turn drops its
// pending writes; adaptation for the turn has already been committed by then.
func (s *service) Capture(ctx context.Context, characterID, userID, userMessage, reply string, state entity.EmotionalState) {
	if ctx.Err() != nil {
		return
	}

	for _, candidate := range ExtractFromTurn(userMessage, reply) {
		job := captureJob{
			characterID: characterID,
			userID:      userID,
			content:     candidate.Content,
			category:    candidate.Category,
			state:       state,
		}
		select {
		case s.jobs <- job:
		default:
			s.logger.Warn("memory capture queue full, dropping candidate",
				slog.String("characterId", characterID),
				slog.String("userId", userID))
		}
	}
}

// Touch refreshes last-access times for the memories a finished turn actually
// rendered into its context.
func (s *service) Touch(ctx context.Context, characterID, userID string, ids []string) {
	if err := s.store.Touch(ctx, characterID, userID, ids, time.Now()); err != nil {
		s.logger.Warn("failed to refresh memory access time", mylog.Err(err))
	}
}

// Close drains pending capture jobs and stops the worker.
func (s *service) Close() {
	close(s.jobs)
	s.wg.Wait()
}

func (s *service) captureWorker() {
	defer s.wg.Done()

	// The turn that produced a job may be long gone; writes run on their own
	// context.
	ctx := context.Background()
	for job := range s.jobs {
		if _, err := s.Record(ctx, job.characterID, job.userID, job.content, job.category, job.state); err != nil {
			s.logger.Warn("async memory record failed", mylog.Err(err))
		}
	}
}

// scoreImportance computes the write-time importance in [0,1]: category base,
// emotional salience, high-salience keywords, hedging penalty.
func (s *service) scoreImportance(category entity.MemoryCategory, content string, state entity.EmotionalState) float64 {
	score, ok := s.conf.CategoryBase[category]
	if !ok {
		score = 0.5
	}

	if !state.IsNeutral() {
		score += s.conf.EmotionBoost
	}

	lower := strings.ToLower(content)
	for _, keyword := range highValueKeywords {
		if strings.Contains(lower, keyword) {
			score += 0.05
		}
	}
	for _, phrase := range hedgePhrases {
		if strings.Contains(lower, phrase) {
			score -= 0.05
		}
	}

	return min(max(score, 0), 1)
}

// composite is the retrieval ranking key: weighted importance plus a recency
// weight that decays exponentially with time since last access, plus a bonus
// when the memory's topics overlap the current message.
func (s *service) composite(memory *entity.Memory, queryTopics []string, now time.Time) float64 {
	accessed := memory.LastAccessedAt
	if accessed.IsZero() || memory.CreatedAt.After(accessed) {
		accessed = memory.CreatedAt
	}

	age := now.Sub(accessed)
	recency := math.Exp2(-age.Hours() / s.conf.RecencyHalfLife.Hours())

	score := s.conf.ImportanceWeight*memory.Importance + s.conf.RecencyWeight*recency
	if len(lo.Intersect([]string(memory.Topics), queryTopics)) > 0 {
		score += s.conf.TopicBonus
	}
	return score
}

// mergeDuplicate folds content into an existing near-duplicate memory: the
// higher importance wins and the access time refreshes. Returns nil when the
// content is novel.
func (s *service) mergeDuplicate(ctx context.Context, existing []*entity.Memory, content string, importance float64) *entity.Memory {
	for _, memory := range existing {
		if stringutils.JaccardOverlap(memory.Content, content) < s.conf.NoveltyThreshold {
			continue
		}

		memory.Importance = max(memory.Importance, importance)
		memory.LastAccessedAt = time.Now()
		if err := s.store.Update(ctx, memory); err != nil {
			s.logger.Warn("failed to merge duplicate memory", mylog.Err(err))
			return nil
		}
		return memory
	}
	return nil
}

// evict drops the lowest composite-score memories once the pair exceeds
// capacity, oldest first on ties. The memory written in the current turn is
// never eligible.
func (s *service) evict(ctx context.Context, characterID, userID string, memories []*entity.Memory, protectedID string) {
	overflow := len(memories) - s.conf.Capacity
	if overflow <= 0 {
		return
	}

	now := time.Now()
	candidates := lo.Filter(memories, func(memory *entity.Memory, _ int) bool {
		return memory.ID != protectedID
	})
	sort.Slice(candidates, func(i, j int) bool {
		si := s.composite(candidates[i], nil, now)
		sj := s.composite(candidates[j], nil, now)
		if si != sj {
			return si < sj
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	if overflow > len(candidates) {
		overflow = len(candidates)
	}
	ids := lo.Map(candidates[:overflow], func(memory *entity.Memory, _ int) string { return memory.ID })
	if err := s.store.Delete(ctx, characterID, userID, ids); err != nil {
		s.logger.Warn("memory eviction failed", mylog.Err(err))
		return
	}

	s.logger.Debug("evicted memories over capacity",
		slog.String("characterId", characterID),
		slog.String("userId", userID),
		slog.Int("count", len(ids)))
}
