package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/generation"
	"github.com/phrazzld/scriptor-api/internal/htmlout"
	"github.com/phrazzld/scriptor-api/internal/platform/logger"
	"github.com/phrazzld/scriptor-api/internal/platform/metrics"
)

// Operation names used in logs, errors, and metrics.
const (
	OperationArticle = "generate_article"
	OperationHTML    = "generate_article_html"
)

// GenerationService provides the two generation operations.
type GenerationService interface {
	// GenerateArticle writes an article about the requested topic. The text is
	// returned exactly as the provider produced it.
	GenerateArticle(ctx context.Context, req domain.ArticleRequest) (domain.GenerationResult, error)

	// GenerateArticleHTML reformats an article as styled body markup.
	GenerateArticleHTML(ctx context.Context, req domain.ArticleHTMLRequest) (domain.GenerationResult, error)
}

// PromptBuilder renders the messages for each operation.
type PromptBuilder interface {
	ArticleMessages(req domain.ArticleRequest) (domain.Messages, error)
	HTMLMessages(req domain.ArticleHTMLRequest) (domain.Messages, error)
}

// OutputNormalizer cleans up HTML output.
type OutputNormalizer interface {
	Normalize(raw string) (string, error)
}

// Config selects models and bounds each provider call.
type Config struct {
	ArticleModel string
	HTMLModel    string
	// Timeout bounds a single provider call; zero means no extra deadline.
	Timeout time.Duration
}

type generationServiceImpl struct {
	provider   generation.Provider
	prompts    PromptBuilder
	normalizer OutputNormalizer
	cfg        Config
	logger     *slog.Logger
}

// NewGenerationService creates a GenerationService.
// It returns an error if any of the required dependencies are nil.
func NewGenerationService(
	provider generation.Provider,
	prompts PromptBuilder,
	normalizer OutputNormalizer,
	cfg Config,
	logger *slog.Logger,
) (GenerationService, error) {
	if provider == nil {
		return nil, &GenerationServiceError{Operation: "create_service", Message: "provider cannot be nil"}
	}
	if prompts == nil {
		return nil, &GenerationServiceError{Operation: "create_service", Message: "prompt builder cannot be nil"}
	}
	if normalizer == nil {
		return nil, &GenerationServiceError{Operation: "create_service", Message: "normalizer cannot be nil"}
	}
	if cfg.ArticleModel == "" || cfg.HTMLModel == "" {
		return nil, &GenerationServiceError{Operation: "create_service", Message: "models must be configured"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &generationServiceImpl{
		provider:   provider,
		prompts:    prompts,
		normalizer: normalizer,
		cfg:        cfg,
		logger:     logger.With("component", componentName),
	}, nil
}

// GenerateArticle implements GenerationService.
func (s *generationServiceImpl) GenerateArticle(
	ctx context.Context,
	req domain.ArticleRequest,
) (domain.GenerationResult, error) {
	messages, err := s.prompts.ArticleMessages(req)
	if err != nil {
		return domain.GenerationResult{}, NewGenerationServiceError(OperationArticle, "failed to build prompt", err)
	}

	result, err := s.generate(ctx, OperationArticle, messages, s.cfg.ArticleModel)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	s.log(ctx).InfoContext(ctx, "article generated",
		"topic_length", len(req.Topic),
		"article_length", len(result.Text))

	return result, nil
}

// GenerateArticleHTML implements GenerationService.
func (s *generationServiceImpl) GenerateArticleHTML(
	ctx context.Context,
	req domain.ArticleHTMLRequest,
) (domain.GenerationResult, error) {
	messages, err := s.prompts.HTMLMessages(req)
	if err != nil {
		return domain.GenerationResult{}, NewGenerationServiceError(OperationHTML, "failed to build prompt", err)
	}

	result, err := s.generate(ctx, OperationHTML, messages, s.cfg.HTMLModel)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	normalized, err := s.normalizer.Normalize(result.Text)
	if err != nil {
		return domain.GenerationResult{}, NewGenerationServiceError(OperationHTML, "failed to normalize output", err)
	}

	s.checkStructure(ctx, req, normalized)

	s.log(ctx).InfoContext(ctx, "article html generated",
		"sections", req.NumberOfSections,
		"images", len(req.Images),
		"raw_length", len(result.Text),
		"html_length", len(normalized))

	return domain.GenerationResult{Text: normalized}, nil
}

// generate makes the single provider call for an operation.
func (s *generationServiceImpl) generate(
	ctx context.Context,
	operation string,
	messages domain.Messages,
	model string,
) (domain.GenerationResult, error) {
	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	providerName := s.provider.Name()
	start := time.Now()
	result, err := s.provider.Generate(callCtx, messages, model)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		err = s.asProviderError(callCtx, model, err)
		metrics.RecordGeneration(operation, providerName, metrics.StatusError, elapsed)
		metrics.RecordError(operation, errorType(err))
		s.log(ctx).WarnContext(ctx, "provider call failed",
			"operation", operation,
			"provider", providerName,
			"model", model,
			"duration_seconds", elapsed,
			"error_type", errorType(err))
		return domain.GenerationResult{}, err
	}

	metrics.RecordGeneration(operation, providerName, metrics.StatusSuccess, elapsed)
	s.log(ctx).DebugContext(ctx, "provider call succeeded",
		"operation", operation,
		"provider", providerName,
		"model", model,
		"duration_seconds", elapsed)

	return result, nil
}

// asProviderError guarantees a *generation.ProviderError and tags deadline
// overruns with generation.ErrTimeout.
func (s *generationServiceImpl) asProviderError(ctx context.Context, model string, err error) error {
	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, generation.ErrTimeout)

	var providerErr *generation.ProviderError
	if errors.As(err, &providerErr) {
		if timedOut {
			return generation.NewProviderError(providerErr.Provider, providerErr.Model,
				fmt.Errorf("%w: %v", generation.ErrTimeout, providerErr.Err))
		}
		return err
	}

	if timedOut {
		err = fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}
	return generation.NewProviderError(s.provider.Name(), model, err)
}

// checkStructure warns when the markup does not have the requested shape.
// The output is returned regardless.
func (s *generationServiceImpl) checkStructure(ctx context.Context, req domain.ArticleHTMLRequest, markup string) {
	stats, err := htmlout.Inspect(markup)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "could not inspect generated html", "error", err)
		return
	}

	if stats.Sections != req.NumberOfSections {
		metrics.RecordStructureMismatch("sections")
		s.log(ctx).WarnContext(ctx, "generated html section count differs from request",
			"requested_sections", req.NumberOfSections,
			"found_sections", stats.Sections)
	}
	if stats.Images != len(req.Images) {
		metrics.RecordStructureMismatch("images")
		s.log(ctx).WarnContext(ctx, "generated html image count differs from request",
			"requested_images", len(req.Images),
			"found_images", stats.Images)
	}
}

const componentName = "generation_service"

// log prefers the request logger so trace IDs carry through.
func (s *generationServiceImpl) log(ctx context.Context) *slog.Logger {
	l := logger.FromContextOrDefault(ctx, nil)
	if l == nil {
		return s.logger
	}
	return l.With("component", componentName)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return "timeout"
	case errors.Is(err, generation.ErrContentBlocked):
		return "content_blocked"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, generation.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "provider"
	}
}
