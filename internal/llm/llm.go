// Package llm adapts hosted model providers to the engine's Generator
// boundary. Each adapter classifies provider failures as transient or
// permanent so callers can decide whether a retry is worth it.
package llm

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/engine"
	"github.com/cymond/educhat/errors"
)

// NewGenerator builds a Generator for the configured provider. An empty
// provider yields the engine's static fallback so the runtime keeps answering
// without credentials.
func NewGenerator(conf *config.ModelConfig, logger *slog.Logger) (engine.Generator, error) {
	if conf == nil {
		conf = config.NewModelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	switch conf.Provider {
	case "":
		return engine.NewFallbackGenerator(), nil
	case "anthropic":
		return NewAnthropicGenerator(conf, logger)
	case "openai":
		return NewOpenAIGenerator(conf, logger)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown model provider %q", conf.Provider)
	}
}

// classifyStatus marks rate limits, server faults and timeouts as transient.
// Auth and validation failures stay permanent.
func classifyStatus(err error, status int) error {
	switch {
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status >= http.StatusInternalServerError:
		return errors.Transient(err)
	}
	return err
}

func classifyNetwork(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Transient(err)
	}
	return err
}
