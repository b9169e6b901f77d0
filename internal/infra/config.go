package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/webshunter/animemacker/internal/providers/prompt"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv         string `envconfig:"APP_ENV" default:"development"`
	Port           string `envconfig:"PORT" default:"8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	StoragePath    string `envconfig:"STORAGE_PATH" default:"./storage"`
	StorageBaseURL string `envconfig:"STORAGE_BASE_URL"`
	GeoIPDBPath    string `envconfig:"GEOIP_DB_PATH"`

	PromptProvider       string  `envconfig:"PROMPT_PROVIDER" default:"openai"`
	OpenAIAPIKey         string  `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL        string  `envconfig:"OPENAI_BASE_URL" default:"https://api.groq.com/openai/v1"`
	OpenAIModel          string  `envconfig:"OPENAI_MODEL" default:"llama-3.1-8b-instant"`
	GeminiAPIKey         string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel          string  `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	PromptTemperature    float32 `envconfig:"PROMPT_TEMPERATURE" default:"0.8"`
	PromptMaxTokens      int     `envconfig:"PROMPT_MAX_TOKENS" default:"2000"`
	PromptTimeoutSeconds int     `envconfig:"PROMPT_TIMEOUT_SECONDS" default:"30"`

	HTTPReadTimeoutSeconds  int `envconfig:"HTTP_READ_TIMEOUT_SECONDS" default:"15"`
	HTTPWriteTimeoutSeconds int `envconfig:"HTTP_WRITE_TIMEOUT_SECONDS" default:"60"`
	HTTPIdleTimeoutSeconds  int `envconfig:"HTTP_IDLE_TIMEOUT_SECONDS" default:"60"`

	RateLimitPerMin         int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	CORSAllowedOrigins      []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	DefaultLocale           string   `envconfig:"DEFAULT_LOCALE" default:"en"`
	PlaceholderCacheMinutes int      `envconfig:"PLACEHOLDER_CACHE_MINUTES" default:"30"`
	MaxUploadBytes          int64    `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	MigrateOnStart          bool     `envconfig:"MIGRATE_ON_START" default:"false"`

	HTTPReadTimeout  time.Duration `ignored:"true"`
	HTTPWriteTimeout time.Duration `ignored:"true"`
	HTTPIdleTimeout  time.Duration `ignored:"true"`
	PromptTimeout    time.Duration `ignored:"true"`
	PlaceholderTTL   time.Duration `ignored:"true"`
}

// Prompt providers accepted in PROMPT_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg, err := LoadConfigNoDB()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// LoadConfigNoDB is LoadConfig for tools that can run without a database.
func LoadConfigNoDB() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.PromptProvider = strings.ToLower(strings.TrimSpace(cfg.PromptProvider))
	switch cfg.PromptProvider {
	case "":
		cfg.PromptProvider = ProviderNone
	case ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		return nil, fmt.Errorf("PROMPT_PROVIDER %q is not one of openai, gemini, none", cfg.PromptProvider)
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "./storage"
	}
	if cfg.StorageBaseURL == "" {
		cfg.StorageBaseURL = fmt.Sprintf("http://localhost:%s/static", cfg.Port)
	}
	cfg.StorageBaseURL = strings.TrimRight(cfg.StorageBaseURL, "/")
	cfg.CORSAllowedOrigins = trimList(cfg.CORSAllowedOrigins)

	cfg.HTTPReadTimeout = seconds(cfg.HTTPReadTimeoutSeconds, 15)
	cfg.HTTPWriteTimeout = seconds(cfg.HTTPWriteTimeoutSeconds, 60)
	cfg.HTTPIdleTimeout = seconds(cfg.HTTPIdleTimeoutSeconds, 60)
	cfg.PromptTimeout = seconds(cfg.PromptTimeoutSeconds, 30)
	cfg.PlaceholderTTL = time.Duration(max(cfg.PlaceholderCacheMinutes, 1)) * time.Minute

	return &cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GeneratorConfig derives the scene generator settings.
func (c *Config) GeneratorConfig(logger zerolog.Logger) prompt.GeneratorConfig {
	return prompt.GeneratorConfig{
		Temperature: c.PromptTemperature,
		MaxTokens:   c.PromptMaxTokens,
		Timeout:     c.PromptTimeout,
		Logger:      logger,
	}
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
