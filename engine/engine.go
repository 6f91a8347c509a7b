package engine

import (
	"log/slog"

	"github.com/cymond/educhat/config"
)

type (
	// Engine assembles context bundles and hands them to the generation
	// collaborator. It performs no generation itself and keeps no per-turn
	// state.
	Engine struct {
		logger    *slog.Logger
		conf      *config.ContextConfig
		modelConf *config.ModelConfig
		generator Generator
	}
)

func NewEngine(
	logger *slog.Logger,
	conf *config.ContextConfig,
	modelConf *config.ModelConfig,
	generator Generator,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if conf == nil {
		conf = config.NewContextConfig()
	}
	if modelConf == nil {
		modelConf = config.NewModelConfig()
	}
	if generator == nil {
		generator = NewFallbackGenerator()
	}
	return &Engine{
		logger:    logger,
		conf:      conf,
		modelConf: modelConf,
		generator: generator,
	}
}
