package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/phrazzld/scriptor-api/internal/api/middleware"
	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/phrazzld/scriptor-api/internal/generation"
	"github.com/phrazzld/scriptor-api/internal/htmlout"
	"github.com/phrazzld/scriptor-api/internal/platform/gemini"
	"github.com/phrazzld/scriptor-api/internal/platform/groq"
	"github.com/phrazzld/scriptor-api/internal/prompt"
	"github.com/phrazzld/scriptor-api/internal/publish"
	"github.com/phrazzld/scriptor-api/internal/service"
)

// application holds all the dependencies for the server.
type application struct {
	config            *config.Config
	logger            *slog.Logger
	provider          generation.Provider
	generationService service.GenerationService
	publisher         *publish.Publisher
	rateLimiter       *middleware.RateLimiter
}

// newApplication builds every dependency the HTTP layer needs. The provider
// is created once here and shared by all requests.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	provider, err := newProvider(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	logger.Info("LLM provider initialized successfully",
		"provider", provider.Name(),
		"article_model", cfg.LLM.ArticleModel,
		"html_model", cfg.LLM.HTMLModel)

	prompts, err := prompt.NewBuilder(cfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}

	generationService, err := service.NewGenerationService(
		provider,
		prompts,
		htmlout.NewNormalizer(cfg.HTML),
		service.Config{
			ArticleModel: cfg.LLM.ArticleModel,
			HTMLModel:    cfg.LLM.HTMLModel,
			Timeout:      cfg.LLM.RequestTimeout(),
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	app := &application{
		config:            cfg,
		logger:            logger,
		provider:          provider,
		generationService: generationService,
		publisher:         publish.NewPublisher(logger, cfg.Publish, nil),
	}

	if cfg.Server.RateLimitPerSecond > 0 {
		app.rateLimiter = middleware.NewRateLimiter(
			rate.Limit(cfg.Server.RateLimitPerSecond),
			cfg.Server.RateLimitBurst,
		)
	}

	if !app.publisher.Enabled() {
		logger.Info("Publishing is disabled; POST /publish-article will answer 503")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newProvider selects the LLM backend named in the configuration.
func newProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		client, err := groq.NewClient(logger, groq.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.RequestTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGemini:
		baseURL := cfg.BaseURL
		// The configured default points at Groq.
		if baseURL == groq.DefaultBaseURL {
			baseURL = ""
		}
		generator, err := gemini.NewGeminiGenerator(ctx, logger, gemini.Config{
			APIKey:  cfg.APIKey,
			BaseURL: baseURL,
			Timeout: cfg.RequestTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases background resources.
func (app *application) cleanup() {
	if app.rateLimiter != nil {
		app.rateLimiter.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
