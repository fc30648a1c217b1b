package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/publish"
)

// MockPublisher implements api.ArticlePublisher for testing.
type MockPublisher struct {
	PublishFn func(ctx context.Context, req domain.PublishRequest) (*publish.Response, error)

	// Default response values
	Response *publish.Response
	Err      error

	mu    sync.Mutex
	Calls []domain.PublishRequest
}

// Publish records the request and returns the configured result.
func (m *MockPublisher) Publish(ctx context.Context, req domain.PublishRequest) (*publish.Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.PublishFn != nil {
		return m.PublishFn(ctx, req)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Publish was called.
func (m *MockPublisher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
