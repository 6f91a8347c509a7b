package educhat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cymond/educhat/behavior"
	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/emotion"
	"github.com/cymond/educhat/engine"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
	"github.com/cymond/educhat/internal/llm"
	"github.com/cymond/educhat/internal/mylog"
	"github.com/cymond/educhat/memory"
)

type (
	// Runtime wires the detector, the behavior state machine, the memory
	// service and the context engine behind one facade. One Runtime hosts any
	// number of characters; every (character, user) pair keeps its own
	// adaptation state, memories and session history.
	Runtime struct {
		logger        *slog.Logger
		detector      emotion.Detector
		adapter       *behavior.Adapter
		memoryService memory.Service
		engine        *engine.Engine
		generator     engine.Generator
		store         memory.Store
		sqlite        *memory.SqliteStore

		mu         sync.Mutex
		characters map[string]*entity.Character
		sessions   map[sessionKey]*session

		logConfig      *config.LogConfig
		emotionConfig  *config.EmotionConfig
		behaviorConfig *config.BehaviorConfig
		memoryConfig   *config.MemoryConfig
		contextConfig  *config.ContextConfig
		modelConfig    *config.ModelConfig
	}
	Option func(*Runtime)

	sessionKey struct {
		characterID string
		userID      string
	}

	// session serializes turns for one pair and keeps its recent history.
	session struct {
		mu    sync.Mutex
		turns []entity.Turn
	}
)

func NewRuntime(ctx context.Context, optionFuncs ...Option) (*Runtime, error) {
	r := &Runtime{
		characters:     make(map[string]*entity.Character),
		sessions:       make(map[sessionKey]*session),
		logConfig:      config.NewLogConfig(),
		emotionConfig:  config.NewEmotionConfig(),
		behaviorConfig: config.NewBehaviorConfig(),
		memoryConfig:   config.NewMemoryConfig(),
		contextConfig:  config.NewContextConfig(),
		modelConfig:    config.NewModelConfig(),
	}
	for _, f := range optionFuncs {
		f(r)
	}

	if r.logger == nil {
		r.logger = mylog.NewLogger(r.logConfig.LogLevel, r.logConfig.LogHandler)
	}

	var stateStore behavior.StateStore
	if r.store == nil && r.memoryConfig.SqliteEnabled {
		sqlite, err := memory.NewSqliteStore(r.memoryConfig.SqlitePath, r.logger)
		if err != nil {
			return nil, err
		}
		r.sqlite = sqlite
		r.store = sqlite
		stateStore = sqlite
	}

	if r.detector == nil {
		r.detector = emotion.NewLexicalDetector(r.emotionConfig)
	}
	if r.adapter == nil {
		r.adapter = behavior.NewAdapter(r.behaviorConfig, r.logger, stateStore)
	}
	if r.memoryService == nil {
		r.memoryService = memory.NewService(r.memoryConfig, r.logger, r.store)
	}

	if r.generator == nil {
		generator, err := llm.NewGenerator(r.modelConfig, r.logger)
		if err != nil {
			return nil, err
		}
		r.generator = generator
	}
	r.engine = engine.NewEngine(r.logger, r.contextConfig, r.modelConfig, r.generator)

	if r.sqlite != nil {
		for _, character := range r.characters {
			if err := r.sqlite.PutProfile(ctx, character); err != nil {
				r.logger.Warn("failed to persist character profile",
					slog.String("characterId", character.ID),
					mylog.Err(err))
			}
		}
	}

	return r, nil
}

// AddCharacter registers a character profile. Registration is explicit; there
// is no ambient default roster.
func (r *Runtime) AddCharacter(ctx context.Context, character *entity.Character) error {
	if character == nil {
		return errors.Wrapf(errors.ErrInvalidParams, "character is required")
	}
	if err := character.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.characters[character.ID] = character
	r.mu.Unlock()

	if r.sqlite != nil {
		if err := r.sqlite.PutProfile(ctx, character); err != nil {
			r.logger.Warn("failed to persist character profile",
				slog.String("characterId", character.ID),
				mylog.Err(err))
		}
	}
	return nil
}

// Character looks up a registered profile by id.
func (r *Runtime) Character(id string) (*entity.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	character, ok := r.characters[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrProfileNotFound, "character %q", id)
	}
	return character, nil
}

// Characters returns all registered profiles.
func (r *Runtime) Characters() []*entity.Character {
	r.mu.Lock()
	defer r.mu.Unlock()
	characters := make([]*entity.Character, 0, len(r.characters))
	for _, character := range r.characters {
		characters = append(characters, character)
	}
	return characters
}

func (r *Runtime) Close() {
	r.memoryService.Close()
	if r.sqlite != nil {
		if err := r.sqlite.Close(); err != nil {
			r.logger.Warn("failed to close sqlite store", mylog.Err(err))
		}
	}
}

func (r *Runtime) session(characterID, userID string) *session {
	key := sessionKey{characterID: characterID, userID: userID}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[key]; ok {
		return existing
	}
	created := &session{}
	r.sessions[key] = created
	return created
}

func WithCharacter(character entity.Character) Option {
	return func(r *Runtime) {
		r.characters[character.ID] = &character
	}
}

func WithCharacters(characters ...entity.Character) Option {
	return func(r *Runtime) {
		for _, character := range characters {
			c := character
			r.characters[c.ID] = &c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

func WithLogConfig(logConfig *config.LogConfig) Option {
	return func(r *Runtime) {
		r.logConfig = logConfig
	}
}

func WithEmotionConfig(conf *config.EmotionConfig) Option {
	return func(r *Runtime) {
		r.emotionConfig = conf
	}
}

func WithBehaviorConfig(conf *config.BehaviorConfig) Option {
	return func(r *Runtime) {
		r.behaviorConfig = conf
	}
}

func WithMemoryConfig(conf *config.MemoryConfig) Option {
	return func(r *Runtime) {
		r.memoryConfig = conf
	}
}

func WithContextConfig(conf *config.ContextConfig) Option {
	return func(r *Runtime) {
		r.contextConfig = conf
	}
}

func WithModelConfig(conf *config.ModelConfig) Option {
	return func(r *Runtime) {
		r.modelConfig = conf
	}
}

func WithAnthropicAPIKey(apiKey string) Option {
	return func(r *Runtime) {
		r.modelConfig.AnthropicAPIKey = apiKey
	}
}

func WithOpenAIAPIKey(apiKey string) Option {
	return func(r *Runtime) {
		r.modelConfig.OpenAIAPIKey = apiKey
	}
}

func WithDetector(detector emotion.Detector) Option {
	return func(r *Runtime) {
		r.detector = detector
	}
}

func WithGenerator(generator engine.Generator) Option {
	return func(r *Runtime) {
		r.generator = generator
	}
}

func WithMemoryStore(store memory.Store) Option {
	return func(r *Runtime) {
		r.store = store
	}
}

func WithMemoryService(memoryService memory.Service) Option {
	return func(r *Runtime) {
		r.memoryService = memoryService
	}
}
