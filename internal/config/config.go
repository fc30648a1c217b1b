package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
	Prompt  PromptConfig  `mapstructure:"prompt"  validate:"required"`
	HTML    HTMLConfig    `mapstructure:"html"`
	Publish PublishConfig `mapstructure:"publish"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string   `mapstructure:"log_format"               validate:"required,oneof=json text"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	RateLimitPerSecond     float64  `mapstructure:"rate_limit_per_second"    validate:"gte=0"`
	RateLimitBurst         int      `mapstructure:"rate_limit_burst"         validate:"gte=1"`
	MetricsEnabled         bool     `mapstructure:"metrics_enabled"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown window.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Provider names accepted in LLMConfig.Provider.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// LLMConfig contains all LLM integration related settings.
// The provider client is model-agnostic; the two generation operations may
// target different models.
type LLMConfig struct {
	Provider              string `mapstructure:"provider"                validate:"required,oneof=groq gemini"`
	APIKey                string `mapstructure:"api_key"                 validate:"required"`
	BaseURL               string `mapstructure:"base_url"                validate:"omitempty,url"`
	ArticleModel          string `mapstructure:"article_model"           validate:"required"`
	HTMLModel             string `mapstructure:"html_model"              validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=1"`
}

// RequestTimeout bounds a single generation call.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// PromptConfig selects prompt wording.
type PromptConfig struct {
	// HTMLVariant picks one of the HTML instruction templates.
	HTMLVariant string `mapstructure:"html_variant" validate:"required,oneof=tailwind semantic"`

	// ArticlePersona and HTMLPersona are static system messages. Empty
	// disables the system message for that operation.
	ArticlePersona string `mapstructure:"article_persona"`
	HTMLPersona    string `mapstructure:"html_persona"`
}

// HTMLConfig controls post-processing of generated HTML.
type HTMLConfig struct {
	Sanitize bool `mapstructure:"sanitize"`
}

// PublishConfig configures the optional downstream publish target.
// Publishing is disabled when URL is empty.
type PublishConfig struct {
	URL            string `mapstructure:"url"             validate:"omitempty,url"`
	AccessKey      string `mapstructure:"access_key"      validate:"required_with=URL"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
}

// Enabled reports whether a publish target is configured.
func (c PublishConfig) Enabled() bool {
	return c.URL != ""
}

// Timeout bounds a single publish call.
func (c PublishConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
