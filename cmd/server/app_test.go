package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/phrazzld/scriptor-api/internal/generation"
	"github.com/phrazzld/scriptor-api/internal/platform/gemini"
	"github.com/phrazzld/scriptor-api/internal/platform/groq"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a valid configuration that never touches the network.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "info",
			LogFormat:              "json",
			CORSAllowedOrigins:     []string{"*"},
			RateLimitPerSecond:     0,
			RateLimitBurst:         1,
			MetricsEnabled:         true,
			ShutdownTimeoutSeconds: 1,
		},
		LLM: config.LLMConfig{
			Provider:              config.ProviderGroq,
			APIKey:                "test-key",
			BaseURL:               groq.DefaultBaseURL,
			ArticleModel:          "article-model",
			HTMLModel:             "html-model",
			RequestTimeoutSeconds: 5,
		},
		Prompt: config.PromptConfig{
			HTMLVariant:    "tailwind",
			ArticlePersona: config.DefaultArticlePersona,
			HTMLPersona:    config.DefaultHTMLPersona,
		},
		HTML:    config.HTMLConfig{Sanitize: true},
		Publish: config.PublishConfig{TimeoutSeconds: 5},
	}
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("groq", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig().LLM

		provider, err := newProvider(ctx, discardLogger(), cfg)

		require.NoError(t, err)
		assert.IsType(t, &groq.Client{}, provider)
		assert.Equal(t, groq.ProviderName, provider.Name())
	})

	t.Run("gemini", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig().LLM
		cfg.Provider = config.ProviderGemini

		provider, err := newProvider(ctx, discardLogger(), cfg)

		require.NoError(t, err)
		assert.IsType(t, &gemini.GeminiGenerator{}, provider)
		assert.Equal(t, gemini.ProviderName, provider.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig().LLM
		cfg.Provider = "mystery"

		provider, err := newProvider(ctx, discardLogger(), cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Nil(t, provider)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig().LLM
		cfg.APIKey = ""

		_, err := newProvider(ctx, discardLogger(), cfg)

		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	t.Run("wires dependencies", func(t *testing.T) {
		t.Parallel()

		app, err := newApplication(context.Background(), testConfig(), discardLogger())

		require.NoError(t, err)
		assert.NotNil(t, app.provider)
		assert.NotNil(t, app.generationService)
		require.NotNil(t, app.publisher)
		assert.False(t, app.publisher.Enabled())
		assert.Nil(t, app.rateLimiter, "rate limiting is off when the rate is zero")
	})

	t.Run("creates rate limiter", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Server.RateLimitPerSecond = 5
		cfg.Server.RateLimitBurst = 2

		app, err := newApplication(context.Background(), cfg, discardLogger())

		require.NoError(t, err)
		require.NotNil(t, app.rateLimiter)
		app.cleanup()
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := newApplication(context.Background(), nil, discardLogger())

		assert.Error(t, err)
	})

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()

		_, err := newApplication(context.Background(), testConfig(), nil)

		assert.Error(t, err)
	})

	t.Run("bad prompt variant", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Prompt.HTMLVariant = "brutalist"

		_, err := newApplication(context.Background(), cfg, discardLogger())

		assert.Error(t, err)
	})
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.RateLimitPerSecond = 1
	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
