package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/memory"
)

// failingStore simulates an unavailable storage collaborator.
type failingStore struct{}

func (failingStore) Put(context.Context, *entity.Memory) error    { return errors.New("store down") }
func (failingStore) Update(context.Context, *entity.Memory) error { return errors.New("store down") }
func (failingStore) List(context.Context, string, string) ([]*entity.Memory, error) {
	return nil, errors.New("store down")
}
func (failingStore) Touch(context.Context, string, string, []string, time.Time) error {
	return errors.New("store down")
}
func (failingStore) Delete(context.Context, string, string, []string) error {
	return errors.New("store down")
}

func engaged() entity.EmotionalState {
	return entity.EmotionalState{Emotion: entity.EmotionEngaged, Confidence: 0.5}
}

func TestService_RecordRoundTrip(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	recorded, err := service.Record(ctx, "aino", "user-1", "I want to learn Finnish for my family", entity.MemoryCategoryGoal, engaged())
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.GreaterOrEqual(t, recorded.Importance, 0.0)
	assert.LessOrEqual(t, recorded.Importance, 1.0)
	assert.Contains(t, recorded.Topics, "finnish_language")

	scored, err := service.Retrieve(ctx, "aino", "user-1", "finnish", 5)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, recorded.ID, scored[0].Memory.ID)
}

func TestService_GoalsOutrankTransientFacts(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	goal, err := service.Record(ctx, "aino", "user-1", "I want to pass the YKI exam", entity.MemoryCategoryGoal, entity.Neutral())
	require.NoError(t, err)
	fact, err := service.Record(ctx, "aino", "user-1", "I live in Tampere these days", entity.MemoryCategoryFact, entity.Neutral())
	require.NoError(t, err)

	assert.Greater(t, goal.Importance, fact.Importance)
}

func TestService_PreferencesOutrankTransientFacts(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	preference, err := service.Record(ctx, "aino", "user-1", "I prefer studying with flashcards", entity.MemoryCategoryPreference, entity.Neutral())
	require.NoError(t, err)
	fact, err := service.Record(ctx, "aino", "user-1", "I live in Tampere these days", entity.MemoryCategoryFact, entity.Neutral())
	require.NoError(t, err)

	assert.Greater(t, preference.Importance, fact.Importance)
}

func TestService_EmotionalSalienceBoostsImportance(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	calm, err := service.Record(ctx, "aino", "user-1", "I study grammar on weekdays", entity.MemoryCategoryFact, entity.Neutral())
	require.NoError(t, err)
	charged, err := service.Record(ctx, "aino", "user-2", "I study grammar on weekdays", entity.MemoryCategoryFact,
		entity.EmotionalState{Emotion: entity.EmotionFrustrated, Confidence: 0.8})
	require.NoError(t, err)

	assert.Greater(t, charged.Importance, calm.Importance)
}

func TestService_NoveltyMergesDuplicates(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	first, err := service.Record(ctx, "aino", "user-1", "I love Finnish sauna culture", entity.MemoryCategoryPreference, entity.Neutral())
	require.NoError(t, err)
	second, err := service.Record(ctx, "aino", "user-1", "I love finnish sauna culture", entity.MemoryCategoryPreference, engaged())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "near-duplicate must merge, not insert")

	scored, err := service.Retrieve(ctx, "aino", "user-1", "", 10)
	require.NoError(t, err)
	assert.Len(t, scored, 1)
}

func TestService_RetrievalOrderIsStable(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := service.Record(ctx, "aino", "user-1", fmt.Sprintf("I study topic number %d", i), entity.MemoryCategoryFact, entity.Neutral())
		require.NoError(t, err)
	}

	first, err := service.Retrieve(ctx, "aino", "user-1", "study", 5)
	require.NoError(t, err)
	require.Len(t, first, 5)

	for i := 0; i < 5; i++ {
		again, err := service.Retrieve(ctx, "aino", "user-1", "study", 5)
		require.NoError(t, err)
		require.Len(t, again, 5)
		for j := range again {
			assert.Equal(t, first[j].Memory.ID, again[j].Memory.ID, "retrieval order must be stable without writes")
		}
	}
}

func TestService_RetrievalNeverMutatesImportance(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	defer service.Close()
	ctx := context.Background()

	recorded, err := service.Record(ctx, "aino", "user-1", "I prefer evening study sessions", entity.MemoryCategoryPreference, entity.Neutral())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		scored, err := service.Retrieve(ctx, "aino", "user-1", "study", 5)
		require.NoError(t, err)
		require.Len(t, scored, 1)
		assert.Equal(t, recorded.Importance, scored[0].Memory.Importance)
	}
}

func TestService_EvictionProtectsCurrentTurn(t *testing.T) {
	conf := config.NewMemoryConfig()
	conf.Capacity = 5
	conf.NoveltyThreshold = 1.1 // disable merging for this test
	service := memory.NewService(conf, nil, nil)
	defer service.Close()
	ctx := context.Background()

	var last *entity.Memory
	for i := 0; i < 12; i++ {
		var err error
		last, err = service.Record(ctx, "aino", "user-1", fmt.Sprintf("I have a pet number %d at home", i), entity.MemoryCategoryFact, entity.Neutral())
		require.NoError(t, err)
		require.NotNil(t, last)
	}

	scored, err := service.Retrieve(ctx, "aino", "user-1", "", 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(scored), conf.Capacity)

	ids := make([]string, 0, len(scored))
	for _, m := range scored {
		ids = append(ids, m.Memory.ID)
	}
	assert.Contains(t, ids, last.ID, "the most recent write must survive eviction")
}

func TestService_StoreFailureDegrades(t *testing.T) {
	service := memory.NewService(nil, nil, failingStore{})
	defer service.Close()
	ctx := context.Background()

	recorded, err := service.Record(ctx, "aino", "user-1", "I like puzzles quite a lot", entity.MemoryCategoryPreference, entity.Neutral())
	assert.NoError(t, err, "write failure is best-effort, not an error")
	assert.Nil(t, recorded)

	_, err = service.Retrieve(ctx, "aino", "user-1", "puzzles", 5)
	assert.ErrorIs(t, err, errors.ErrStorageUnavailable)
}

func TestService_CaptureExtractsAndRecords(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	ctx := context.Background()

	service.Capture(ctx, "aino", "user-1", "I want to learn Finnish and I live in Espoo", "Hienoa! Let's start with the basics.", engaged())
	service.Close() // drains the capture queue

	scored, err := service.Retrieve(ctx, "aino", "user-1", "finnish", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, scored)
}

func TestService_CaptureRecordsReplyCorrections(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	ctx := context.Background()

	service.Capture(ctx, "aino", "user-1", "So puhua is the word for eating, right?",
		"Actually, puhua means to speak. The word for eating is syödä.", engaged())
	service.Close()

	scored, err := service.Retrieve(ctx, "aino", "user-1", "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, scored)
	assert.Contains(t, scored[0].Memory.Content, "Corrected user about:")
	assert.Equal(t, entity.MemoryCategoryFact, scored[0].Memory.Category)
}

func TestService_CancelledTurnDropsCapture(t *testing.T) {
	service := memory.NewService(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service.Capture(ctx, "aino", "user-1", "I want to learn Finnish", "Great, let's begin.", engaged())
	service.Close()

	scored, err := service.Retrieve(context.Background(), "aino", "user-1", "finnish", 10)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestExtract(t *testing.T) {
	candidates := memory.Extract("I want to learn Finnish because I live in Espoo and I love salmiakki")

	categories := make(map[entity.MemoryCategory]string)
	for _, c := range candidates {
		categories[c.Category] = c.Content
	}
	assert.Contains(t, categories, entity.MemoryCategoryGoal)
	assert.Contains(t, categories, entity.MemoryCategoryFact)
	assert.Contains(t, categories, entity.MemoryCategoryPreference)
}

func TestExtractFromTurn(t *testing.T) {
	candidates := memory.ExtractFromTurn(
		"Ohh, that makes sense now, thank you!",
		"Glad it clicked! Partitive plural takes the -ja ending.")

	require.NotEmpty(t, candidates)
	last := candidates[len(candidates)-1]
	assert.Equal(t, entity.MemoryCategoryEmotionalEvent, last.Category)
	assert.Contains(t, last.Content, "User understood:")
	assert.Contains(t, last.Content, "Glad it clicked!")
}

func TestExtractTopics(t *testing.T) {
	topics := memory.ExtractTopics("we practice finnish grammar after my gym workout")
	assert.Contains(t, topics, "finnish_language")
	assert.Contains(t, topics, "learning_methods")
	assert.Contains(t, topics, "health_fitness")
}
