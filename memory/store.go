package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
)

type (
	// Store is the durable-write collaborator for memories. The service owns
	// scoring, novelty and eviction; the store only persists.
	Store interface {
		Put(ctx context.Context, memory *entity.Memory) error
		Update(ctx context.Context, memory *entity.Memory) error
		List(ctx context.Context, characterID, userID string) ([]*entity.Memory, error)
		Touch(ctx context.Context, characterID, userID string, ids []string, at time.Time) error
		Delete(ctx context.Context, characterID, userID string, ids []string) error
	}

	// InMemoryStore is a simple map-backed implementation, used by default and
	// in tests.
	InMemoryStore struct {
		mu       sync.RWMutex
		memories map[string]*entity.Memory
	}
)

var (
	_ Store = (*InMemoryStore)(nil)
)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		memories: make(map[string]*entity.Memory),
	}
}

func (s *InMemoryStore) Put(ctx context.Context, memory *entity.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.memories[memory.ID]; exists {
		return errors.Errorf("memory with id '%s' already exists", memory.ID)
	}

	copied := *memory
	s.memories[memory.ID] = &copied
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, memory *entity.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.memories[memory.ID]; !exists {
		return errors.Wrapf(errors.ErrNotFound, "memory with id '%s'", memory.ID)
	}

	copied := *memory
	s.memories[memory.ID] = &copied
	return nil
}

func (s *InMemoryStore) List(ctx context.Context, characterID, userID string) ([]*entity.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*entity.Memory, 0, len(s.memories))
	for _, memory := range s.memories {
		if memory.CharacterID != characterID || memory.UserID != userID {
			continue
		}
		copied := *memory
		results = append(results, &copied)
	}
	return results, nil
}

func (s *InMemoryStore) Touch(ctx context.Context, characterID, userID string, ids []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if memory, ok := s.memories[id]; ok && memory.CharacterID == characterID && memory.UserID == userID {
			memory.LastAccessedAt = at
		}
	}
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, characterID, userID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if memory, ok := s.memories[id]; ok && memory.CharacterID == characterID && memory.UserID == userID {
			delete(s.memories, id)
		}
	}
	return nil
}
