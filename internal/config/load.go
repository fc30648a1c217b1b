package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "SCRIPTOR"

// DefaultEnvFile is read, when present, before environment variables are bound.
const DefaultEnvFile = ".env"

// Default personas, carried over from the content-writer deployment.
const (
	DefaultArticlePersona = "You are a content writer."
	DefaultHTMLPersona    = "You are a web developer that is developing a blog app in react typescript " +
		"with shadcn and tailwind-css with strong content writing and communication skills."
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom behaves like Load but reads the given .env file. A missing file is
// not an error; existing environment variables are never overridden by it.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound explicitly.
	// GROQ_API_KEY is accepted for compatibility with existing deployments.
	bindings := map[string][]string{
		"llm.api_key":        {EnvPrefix + "_LLM_API_KEY", "GROQ_API_KEY"},
		"publish.url":        {EnvPrefix + "_PUBLISH_URL"},
		"publish.access_key": {EnvPrefix + "_PUBLISH_ACCESS_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_per_second", 2.0)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("llm.provider", ProviderGroq)
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.article_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.html_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.request_timeout_seconds", 60)

	v.SetDefault("prompt.html_variant", "tailwind")
	v.SetDefault("prompt.article_persona", DefaultArticlePersona)
	v.SetDefault("prompt.html_persona", DefaultHTMLPersona)

	v.SetDefault("html.sanitize", true)

	v.SetDefault("publish.timeout_seconds", 30)
}
