package ai

import (
	"context"

	"github.com/sony/gobreaker/v2"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// BreakerProvider wraps a Provider with a circuit breaker so a failing
// embedding backend stops being called while it is down. An open breaker
// surfaces as an embedding error, which the engine degrades on.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker[[]float32]
}

// NewBreakerProvider wraps inner according to the breaker configuration.
func NewBreakerProvider(inner Provider, cfg config.CircuitBreakerConfig, logger *errors.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        "embedding-" + inner.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	}
	if logger != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		}
	}

	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[[]float32](settings),
	}
}

// Name implements Provider.
func (p *BreakerProvider) Name() string {
	return p.inner.Name()
}

// Embed implements Provider.
func (p *BreakerProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.breaker.Execute(func() ([]float32, error) {
		return p.inner.Embed(ctx, text)
	})
}

// State exposes the breaker state for health reporting.
func (p *BreakerProvider) State() gobreaker.State {
	return p.breaker.State()
}
