package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scriptor-api/internal/domain"
)

// MockGenerationService implements service.GenerationService for handler tests.
type MockGenerationService struct {
	GenerateArticleFn     func(ctx context.Context, req domain.ArticleRequest) (domain.GenerationResult, error)
	GenerateArticleHTMLFn func(ctx context.Context, req domain.ArticleHTMLRequest) (domain.GenerationResult, error)

	mu               sync.Mutex
	ArticleCalls     []domain.ArticleRequest
	ArticleHTMLCalls []domain.ArticleHTMLRequest
}

// GenerateArticle records the request and delegates to GenerateArticleFn.
func (m *MockGenerationService) GenerateArticle(
	ctx context.Context,
	req domain.ArticleRequest,
) (domain.GenerationResult, error) {
	m.mu.Lock()
	m.ArticleCalls = append(m.ArticleCalls, req)
	m.mu.Unlock()

	if m.GenerateArticleFn != nil {
		return m.GenerateArticleFn(ctx, req)
	}
	return domain.GenerationResult{}, nil
}

// GenerateArticleHTML records the request and delegates to GenerateArticleHTMLFn.
func (m *MockGenerationService) GenerateArticleHTML(
	ctx context.Context,
	req domain.ArticleHTMLRequest,
) (domain.GenerationResult, error) {
	m.mu.Lock()
	m.ArticleHTMLCalls = append(m.ArticleHTMLCalls, req)
	m.mu.Unlock()

	if m.GenerateArticleHTMLFn != nil {
		return m.GenerateArticleHTMLFn(ctx, req)
	}
	return domain.GenerationResult{}, nil
}
