package ai

import (
	"context"
	"fmt"

	"relevancer/internal/config"
	"relevancer/internal/engine"
	"relevancer/internal/errors"
)

// NewEmbedder builds the engine's embedding provider from configuration.
// It returns nil when embeddings are disabled, which selects the engine's
// lexical strategy.
func NewEmbedder(ctx context.Context, cfg *config.Config, logger *errors.Logger) (engine.EmbeddingProvider, error) {
	if !cfg.AI.Enabled {
		return nil, nil
	}

	var provider Provider
	switch cfg.AI.Provider {
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.AI, logger)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown embedding provider %q", cfg.AI.Provider), nil)
	}

	if cfg.AI.CircuitBreaker.Enabled {
		provider = NewBreakerProvider(provider, cfg.AI.CircuitBreaker, logger)
	}

	return provider, nil
}
