package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// GeminiProvider embeds documents with the Gemini embedding API
type GeminiProvider struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *errors.Logger
}

// NewGeminiProvider creates a Gemini embedding provider from configuration.
func NewGeminiProvider(ctx context.Context, cfg config.AIConfig, logger *errors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"API key is required for the Gemini embedding provider", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed,
			"failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:     client,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Embed implements Provider. Transient failures are retried up to the
// configured limit with linear backoff; each attempt is bounded by the
// configured timeout.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed,
					"embedding request cancelled", ctx.Err())
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
			if p.logger != nil {
				p.logger.Debug("Retrying embedding request", "model", p.model, "attempt", attempt)
			}
		}

		vec, err := p.embedOnce(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		if !isTransientError(err) {
			break
		}
	}

	appErr := errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed, "embedding request failed", lastErr).
		WithContext("model", p.model).
		WithContext("transient", isTransientError(lastErr))
	if p.logger != nil {
		if isTransientError(lastErr) {
			p.logger.Warn("Embedding request failed", "model", p.model, "error", lastErr.Error())
		} else {
			p.logger.LogError(appErr, "Embedding request failed")
		}
	}
	return nil, appErr
}

func (p *GeminiProvider) embedOnce(ctx context.Context, text string) ([]float32, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, errors.NewEmbeddingError(errors.ErrCodeEmbeddingFailed,
			"embedding response contained no vectors", nil).WithContext("model", p.model)
	}
	return result.Embeddings[0].Values, nil
}
