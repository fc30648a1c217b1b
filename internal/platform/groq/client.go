package groq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/generation"
)

// ProviderName identifies this provider in errors, logs, and metrics.
const ProviderName = "groq"

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Config holds what the client needs to reach the API.
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout bounds the HTTP exchange; zero leaves it to the caller's context.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client implements generation.Provider using chat completions.
type Client struct {
	logger *slog.Logger
	client openai.Client
}

var _ generation.Provider = (*Client)(nil)

// NewClient validates cfg and builds a Client.
func NewClient(logger *slog.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}

	return &Client{
		logger: logger,
		client: openai.NewClient(opts...),
	}, nil
}

// Name implements generation.Provider.
func (c *Client) Name() string {
	return ProviderName
}

// Generate implements generation.Provider.
func (c *Client) Generate(
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

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toChatMessages(messages),
	}

	c.logger.DebugContext(ctx, "calling chat completions",
		"model", model,
		"message_count", len(messages),
		"prompt_length", len(messages.Prompt()))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", generation.ErrTimeout, err)
		}
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model, describe(err))
	}

	if resp == nil || len(resp.Choices) == 0 {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model,
			fmt.Errorf("%w: no choices returned", generation.ErrInvalidResponse))
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model,
			fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, choice.FinishReason))
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return domain.GenerationResult{}, generation.NewProviderError(ProviderName, model,
			fmt.Errorf("%w: empty content", generation.ErrInvalidResponse))
	}

	c.logger.DebugContext(ctx, "chat completion received",
		"model", resp.Model,
		"finish_reason", choice.FinishReason,
		"completion_tokens", resp.Usage.CompletionTokens)

	return domain.GenerationResult{Text: choice.Message.Content}, nil
}

func toChatMessages(messages domain.Messages) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// describe prefers the API's own error message over the SDK's request dump.
func describe(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Errorf("status %d: %s", apiErr.StatusCode, apiErr.Message)
	}
	return err
}
