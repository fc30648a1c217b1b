package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/generation"
	"google.golang.org/genai"
)

// ProviderName identifies this provider in errors, logs, and metrics.
const ProviderName = "gemini"

// ErrEmptyPrompt is returned when the messages carry no user content.
var ErrEmptyPrompt = errors.New("prompt text cannot be empty")

// Config holds the settings needed to reach the Gemini API.
type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
	// Timeout bounds the HTTP exchange; zero leaves it to the caller's context.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// GeminiGenerator implements generation.Provider using Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client
}

var _ generation.Provider = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: API key and transport settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg Config) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout < 0 {
			timeout = 0
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger,
		client: client,
	}, nil
}

// Name implements generation.Provider.
func (g *GeminiGenerator) Name() string {
	return ProviderName
}

// Generate implements generation.Provider.
func (g *GeminiGenerator) Generate(
	ctx context.Context,
	messages domain.Messages,
	model string,
) (domain.GenerationResult, error) {
	if err := messages.Validate(); err != nil {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model, err)
	}
	if model == "" {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model,
			fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig))
	}

	contents, genConfig := buildRequest(messages)
	if len(contents) == 0 {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model, ErrEmptyPrompt)
	}

	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", model,
		"prompt_length", len(messages.Prompt()))

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", generation.ErrTimeout, err)
		}
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model, err)
	}

	g.logger.DebugContext(ctx, "Gemini API call successful",
		"model", model,
		"response_length", len(text))

	return domain.GenerationResult{Text: text}, nil
}

// buildRequest folds system messages into the system instruction and keeps
// user messages as ordered content.
func buildRequest(messages domain.Messages) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []*genai.Part
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		part := &genai.Part{Text: m.Content}
		if m.Role == domain.RoleSystem {
			system = append(system, part)
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{part},
		})
	}

	cfg := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		cfg.SystemInstruction = &genai.Content{Parts: system}
	}
	return contents, cfg
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: response contains no text", generation.ErrInvalidResponse)
	}
	return b.String(), nil
}
