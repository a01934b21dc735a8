// Package ai provides the embedding providers behind the engine's semantic
// matcher, plus the resilience wrapping around them.
package ai

import (
	"context"
	"errors"
	"net"

	"google.golang.org/api/googleapi"
)

// Provider generates a dense vector embedding for a document
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
}

// isTransientError reports whether the failure is worth treating as
// temporary: network timeouts and retryable HTTP statuses. Non-transient
// failures (bad request, auth) indicate misconfiguration and are logged at
// error level.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
	}

	return false
}
