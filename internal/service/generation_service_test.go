package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/generation"
	"github.com/phrazzld/scriptor-api/internal/htmlout"
	"github.com/phrazzld/scriptor-api/internal/mocks"
	"github.com/phrazzld/scriptor-api/internal/platform/logger"
	"github.com/phrazzld/scriptor-api/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testArticleModel = "article-model"
	testHTMLModel    = "html-model"
)

func newTestService(t *testing.T, provider generation.Provider, timeout time.Duration) (GenerationService, *logger.TestLogBuffer) {
	t.Helper()

	builder, err := prompt.NewBuilder(config.PromptConfig{
		HTMLVariant:    prompt.VariantTailwind,
		ArticlePersona: config.DefaultArticlePersona,
		HTMLPersona:    config.DefaultHTMLPersona,
	})
	require.NoError(t, err)

	log, buf := logger.GetTestLogger(t)
	svc, err := NewGenerationService(
		provider,
		builder,
		htmlout.NewNormalizer(config.HTMLConfig{Sanitize: true}),
		Config{ArticleModel: testArticleModel, HTMLModel: testHTMLModel, Timeout: timeout},
		log,
	)
	require.NoError(t, err)
	return svc, buf
}

func htmlRequest() domain.ArticleHTMLRequest {
	return domain.ArticleHTMLRequest{
		MainArticle:      "Bees pollinate flowers.",
		NumberOfSections: 2,
		WordsPerSection:  80,
		Images: []domain.ImageRef{
			{URL: "https://img.example.com/bee.jpg", Credit: "Ann Lee"},
		},
	}
}

func TestNewGenerationService(t *testing.T) {
	t.Parallel()

	builder, err := prompt.NewBuilder(config.PromptConfig{HTMLVariant: prompt.VariantTailwind})
	require.NoError(t, err)
	normalizer := htmlout.NewNormalizer(config.HTMLConfig{})
	provider := mocks.NewMockProviderWithText("x")
	cfg := Config{ArticleModel: "a", HTMLModel: "b"}

	testCases := []struct {
		name       string
		provider   generation.Provider
		prompts    PromptBuilder
		normalizer OutputNormalizer
		cfg        Config
	}{
		{name: "nil provider", prompts: builder, normalizer: normalizer, cfg: cfg},
		{name: "nil prompts", provider: provider, normalizer: normalizer, cfg: cfg},
		{name: "nil normalizer", provider: provider, prompts: builder, cfg: cfg},
		{name: "missing models", provider: provider, prompts: builder, normalizer: normalizer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewGenerationService(tc.provider, tc.prompts, tc.normalizer, tc.cfg, nil)
			require.Error(t, err)
			assert.Nil(t, svc)
			var serviceErr *GenerationServiceError
			assert.ErrorAs(t, err, &serviceErr)
		})
	}
}

func TestGenerateArticle_Success(t *testing.T) {
	t.Parallel()

	raw := "  # Solar Power\n\nSunlight becomes electricity.\n"
	provider := mocks.NewMockProviderWithText(raw)
	svc, _ := newTestService(t, provider, time.Second)

	result, err := svc.GenerateArticle(context.Background(), domain.ArticleRequest{Topic: "Solar Power"})

	require.NoError(t, err)
	assert.Equal(t, raw, result.Text, "article text must be returned unchanged")
	require.Equal(t, 1, provider.CallCount())
	assert.Equal(t, []string{testArticleModel}, provider.Models())
	assert.Contains(t, provider.LastPrompt(), "'Solar Power'")
	assert.Equal(t, domain.RoleSystem, provider.Calls()[0][0].Role)
}

func TestGenerateArticle_ProviderError(t *testing.T) {
	t.Parallel()

	provider := mocks.MockProviderThatFails("status 401: Invalid API Key")
	svc, _ := newTestService(t, provider, time.Second)

	_, err := svc.GenerateArticle(context.Background(), domain.ArticleRequest{Topic: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Equal(t, 1, provider.CallCount(), "failed calls must not be retried")
}

func TestGenerateArticle_PlainErrorBecomesProviderError(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProviderWithError(errors.New("connection reset by peer"))
	svc, _ := newTestService(t, provider, time.Second)

	_, err := svc.GenerateArticle(context.Background(), domain.ArticleRequest{Topic: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvider)
	var providerErr *generation.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "mock", providerErr.Provider)
	assert.Equal(t, testArticleModel, providerErr.Model)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestGenerateArticle_Timeout(t *testing.T) {
	t.Parallel()

	provider := &mocks.MockProvider{
		GenerateFn: func(ctx context.Context, _ domain.Messages, _ string) (domain.GenerationResult, error) {
			<-ctx.Done()
			return domain.GenerationResult{}, ctx.Err()
		},
	}
	svc, _ := newTestService(t, provider, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.GenerateArticle(context.Background(), domain.ArticleRequest{Topic: "x"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, generation.ErrTimeout)
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestGenerateArticleHTML_Success(t *testing.T) {
	t.Parallel()

	output := "```html\n" +
		`<div class="container mx-auto px-4 max-w-3xl">` +
		`<section><h2 class="text-xl font-bold my-2">One</h2>` +
		`<img src="https://img.example.com/bee.jpg" class="my-2 rounded-xl" alt="bee"></section>` +
		`<section><h2>Conclusion</h2><p>Done.</p></section></div>` +
		"\n```"
	provider := mocks.NewMockProviderWithText(output)
	svc, buf := newTestService(t, provider, time.Second)

	result, err := svc.GenerateArticleHTML(context.Background(), htmlRequest())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Text, `<div class="container mx-auto px-4 max-w-3xl">`))
	assert.NotContains(t, result.Text, "```")
	require.Equal(t, 1, provider.CallCount())
	assert.Equal(t, []string{testHTMLModel}, provider.Models())

	sent := provider.LastPrompt()
	assert.Contains(t, sent, "https://img.example.com/bee.jpg (Credit: Ann Lee)")
	assert.Contains(t, sent, "Article sections: 2 !!STRICT REQUIREMENT!!")
	assert.NotContains(t, buf.String(), "differs from request")
}

func TestGenerateArticleHTML_StructureMismatchOnlyWarns(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProviderWithText("<section><h2>Only one</h2></section>")
	svc, buf := newTestService(t, provider, time.Second)

	result, err := svc.GenerateArticleHTML(context.Background(), htmlRequest())

	require.NoError(t, err)
	assert.Equal(t, "<section><h2>Only one</h2></section>", result.Text)
	logger.AssertLogContains(t, buf, "generated html section count differs from request")
	logger.AssertLogContains(t, buf, "generated html image count differs from request")
	logger.AssertLogField(t, buf, "level", "WARN")
}

func TestGenerateArticleHTML_ProviderError(t *testing.T) {
	t.Parallel()

	provider := mocks.MockProviderThatFails("model overloaded")
	svc, _ := newTestService(t, provider, time.Second)

	result, err := svc.GenerateArticleHTML(context.Background(), htmlRequest())

	require.Error(t, err)
	assert.Empty(t, result.Text)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerate_UsesContextLogger(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProviderWithText("text")
	svc, serviceBuf := newTestService(t, provider, time.Second)

	requestLogger, requestBuf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), requestLogger.With("trace_id", "trace-123"))

	_, err := svc.GenerateArticle(ctx, domain.ArticleRequest{Topic: "x"})

	require.NoError(t, err)
	logger.AssertLogField(t, requestBuf, "trace_id", "trace-123")
	logger.AssertLogField(t, requestBuf, "component", "generation_service")
	assert.Empty(t, serviceBuf.String())
}
