package llm

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/engine"
	"github.com/cymond/educhat/errors"
)

const (
	anthropicAPIKeyEnv      = "ANTHROPIC_API_KEY"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	defaultAnthropicTimeout = 2 * time.Minute
)

type AnthropicGenerator struct {
	client anthropic.Client
	logger *slog.Logger
}

var (
	_ engine.Generator = (*AnthropicGenerator)(nil)
)

func NewAnthropicGenerator(conf *config.ModelConfig, logger *slog.Logger) (*AnthropicGenerator, error) {
	apiKey := conf.AnthropicAPIKey
	if apiKey == "" {
		apiKey = os.Getenv(anthropicAPIKeyEnv)
		if apiKey == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "anthropic API key not found in environment variable: %s", anthropicAPIKeyEnv)
		}
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(defaultAnthropicTimeout),
	)

	return &AnthropicGenerator{
		client: client,
		logger: logger,
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req *engine.GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: req.Context},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserMessage)),
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		g.logger.Warn("anthropic generation failed", "model", model, "err", err)
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", classifyStatus(err, apiErr.StatusCode)
		}
		return "", classifyNetwork(err)
	}

	var text string
	for _, content := range resp.Content {
		switch block := content.AsAny().(type) {
		case anthropic.TextBlock:
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.Wrapf(errors.ErrGenerationFailed, "anthropic returned no text content")
	}
	return text, nil
}
