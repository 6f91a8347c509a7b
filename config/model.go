package config

type ModelConfig struct {
	// Provider selects the generation collaborator: "anthropic", "openai" or
	// "" for the static fallback generator.
	Provider string `json:"provider,omitempty"`

	// Model is the provider model identifier.
	Model string `json:"model,omitempty"`

	// MaxTokens caps a single generation.
	// Default: 1024
	MaxTokens int `json:"maxTokens,omitempty"`

	AnthropicAPIKey string `json:"-"`
	OpenAIAPIKey    string `json:"-"`
}

func NewModelConfig() *ModelConfig {
	return &ModelConfig{
		MaxTokens: 1024,
	}
}
