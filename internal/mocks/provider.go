package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/generation"
)

// MockProvider implements generation.Provider for testing.
type MockProvider struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, messages domain.Messages, model string) (domain.GenerationResult, error)

	// ProviderName is returned by Name; defaults to "mock"
	ProviderName string

	// Default response values
	Text string
	Err  error

	mu       sync.Mutex
	messages []domain.Messages
	models   []string
}

var _ generation.Provider = (*MockProvider)(nil)

// Generate implements the generation.Provider interface
func (m *MockProvider) Generate(
	ctx context.Context,
	messages domain.Messages,
	model string,
) (domain.GenerationResult, error) {
	m.mu.Lock()
	m.messages = append(m.messages, messages)
	m.models = append(m.models, model)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, messages, model)
	}
	if m.Err != nil {
		return domain.GenerationResult{}, m.Err
	}
	return domain.GenerationResult{Text: m.Text}, nil
}

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// Calls returns the messages passed to each Generate call.
func (m *MockProvider) Calls() []domain.Messages {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Messages(nil), m.messages...)
}

// Models returns the model passed to each Generate call.
func (m *MockProvider) Models() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.models...)
}

// LastPrompt returns the final user message of the most recent call.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1].Prompt()
}

// Reset resets the call tracking state
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.models = nil
}

// NewMockProviderWithText creates a MockProvider that returns the given text
func NewMockProviderWithText(text string) *MockProvider {
	return &MockProvider{Text: text}
}

// NewMockProviderWithError creates a MockProvider that returns the given error
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}

// MockProviderThatFails creates a MockProvider that fails the way a provider
// rejecting its credentials does.
func MockProviderThatFails(detail string) *MockProvider {
	return &MockProvider{
		Err: generation.NewProviderError("mock", "mock-model", errors.New(detail)),
	}
}
