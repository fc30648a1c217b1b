package generation

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scriptor-api/internal/domain"
)

// Common errors returned by the generation package
var (
	// ErrInvalidResponse is returned when the LLM response has no usable text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTimeout is returned when the generation call does not finish in time
	ErrTimeout = errors.New("generation call timed out")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ProviderError wraps a failed generation call. Its message embeds the raw
// provider detail so it can be surfaced to the caller unchanged.
type ProviderError struct {
	// Provider names the external service, e.g. "groq" or "gemini".
	Provider string
	// Model is the model identifier the call targeted.
	Model string
	// Err is the underlying cause as reported by the provider SDK.
	Err error
}

// NewProviderError wraps err as a failure of the named provider.
func NewProviderError(provider, model string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Model: model, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API Error: %v", DisplayName(e.Provider), e.Err)
}

var displayNames = map[string]string{
	"groq":   "Groq",
	"gemini": "Gemini",
}

// DisplayName returns the client-facing name of a provider. Unknown names are
// returned unchanged.
func DisplayName(provider string) string {
	if name, ok := displayNames[provider]; ok {
		return name
	}
	return provider
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports domain.ErrProvider for every ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == domain.ErrProvider
}
