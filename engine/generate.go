package engine

import (
	"context"

	"github.com/cymond/educhat/errors"
)

type (
	// GenerateRequest is the serialized bundle plus generation limits handed
	// to a collaborator.
	GenerateRequest struct {
		Context       string `json:"context"`
		UserMessage   string `json:"userMessage"`
		CharacterName string `json:"characterName"`
		Archetype     string `json:"archetype"`
		Model         string `json:"model,omitempty"`
		MaxTokens     int    `json:"maxTokens,omitempty"`
	}

	// Generator is the text-generation collaborator boundary. Failures carry
	// a transient/permanent distinction via errors.IsTransient; the engine
	// never retries on its own.
	Generator interface {
		Generate(ctx context.Context, req *GenerateRequest) (string, error)
	}
)

// Generate renders the bundle and delegates to the generation collaborator.
// The bundle is reproducible from the same inputs, so a caller retry reuses
// an identical prompt.
func (e *Engine) Generate(ctx context.Context, bundle *ContextBundle) (string, error) {
	rendered, err := e.Render(bundle)
	if err != nil {
		return "", err
	}

	req := &GenerateRequest{
		Context:       rendered,
		UserMessage:   bundle.User,
		CharacterName: bundle.System.Character.Name,
		Archetype:     bundle.System.Character.Archetype,
		Model:         e.modelConf.Model,
		MaxTokens:     e.modelConf.MaxTokens,
	}

	text, err := e.generator.Generate(ctx, req)
	if err != nil {
		// Keep the cause chain intact so errors.IsTransient still answers
		// whether the caller may retry.
		return "", errors.Wrapf(err, "generation failed")
	}
	return text, nil
}
