package engine

import (
	"context"
	"fmt"
)

// FallbackGenerator produces a canned in-character reply when no provider is
// configured or reachable. Kept deliberately dull: it exists so the engine
// degrades instead of failing.
type FallbackGenerator struct{}

var (
	_ Generator = (*FallbackGenerator)(nil)
)

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

var fallbackByArchetype = map[string]string{
	"cultural_teacher": "That's a great question about %q! Let's look at it together, one small step at a time.",
	"peer_educator":    "Huh, %q is a fun one. Here's the short version, and there's a neat detail behind it too.",
	"mentor":           "Let me share some practical thoughts on %q. In my experience the fundamentals matter most here.",
	"technical_expert": "Let's approach %q systematically: break it down, test each part, then put it back together.",
}

const fallbackDefault = "I'd love to help with %q. Tell me a bit more about what you're trying to do."

func (g *FallbackGenerator) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	format, ok := fallbackByArchetype[req.Archetype]
	if !ok {
		format = fallbackDefault
	}
	return fmt.Sprintf(format, summarize(req.UserMessage)), nil
}

func summarize(message string) string {
	const limit = 60
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + "..."
}
