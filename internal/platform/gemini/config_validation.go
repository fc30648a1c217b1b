package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scriptor-api/internal/generation"
)

// validateConfig checks the settings that the SDK itself would only reject
// on the first request.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg Config) error {
	if cfg.APIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key",
			"error", "APIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Timeout < 0 {
		logger.WarnContext(ctx, "Invalid timeout value",
			"value", cfg.Timeout,
			"action", "using no client timeout")
	}

	return nil
}
