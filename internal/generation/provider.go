package generation

import (
	"context"

	"github.com/phrazzld/scriptor-api/internal/domain"
)

// Provider executes one synchronous generation call.
//
// Implementations make exactly one network request per call: no retries, no
// streaming, no caching. Credentials and endpoints are construction-time
// configuration; the model is chosen per call so different operations can
// target different models through the same client.
type Provider interface {
	// Generate sends messages to the given model and returns the generated text.
	// Failures are returned as *ProviderError, optionally wrapping
	// ErrInvalidResponse, ErrContentBlocked, or ErrTimeout.
	Generate(ctx context.Context, messages domain.Messages, model string) (domain.GenerationResult, error)

	// Name identifies the provider in logs, metrics, and error messages.
	Name() string
}
