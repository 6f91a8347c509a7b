package llm

import (
	"context"
	"log/slog"
	"os"

	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/engine"
	"github.com/cymond/educhat/errors"
)

const (
	openaiAPIKeyEnv    = "OPENAI_API_KEY"
	defaultOpenAIModel = "gpt-4o-mini"
)

type OpenAIGenerator struct {
	client goopenai.Client
	logger *slog.Logger
}

var (
	_ engine.Generator = (*OpenAIGenerator)(nil)
)

func NewOpenAIGenerator(conf *config.ModelConfig, logger *slog.Logger) (*OpenAIGenerator, error) {
	apiKey := conf.OpenAIAPIKey
	if apiKey == "" {
		apiKey = os.Getenv(openaiAPIKeyEnv)
		if apiKey == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "openai API key not found in environment variable: %s", openaiAPIKeyEnv)
		}
	}

	client := goopenai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIGenerator{
		client: client,
		logger: logger,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req *engine.GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := goopenai.ChatCompletionNewParams{
		Model: goopenai.ChatModel(model),
		Messages: []goopenai.ChatCompletionMessageParamUnion{
			goopenai.SystemMessage(req.Context),
			goopenai.UserMessage(req.UserMessage),
		},
		MaxCompletionTokens: goopenai.Int(int64(maxTokens)),
	}

	res, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		g.logger.Warn("openai generation failed", "model", model, "err", err)
		var apiErr *goopenai.Error
		if errors.As(err, &apiErr) {
			return "", classifyStatus(err, apiErr.StatusCode)
		}
		return "", classifyNetwork(err)
	}

	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", errors.Wrapf(errors.ErrGenerationFailed, "openai returned no choices")
	}
	return res.Choices[0].Message.Content, nil
}
