package infra

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/webshunter/animemacker/internal/providers/prompt"
)

// KeyResolver supplies a provider API key when the environment has none.
type KeyResolver interface {
	ResolveAPIKey(ctx context.Context, provider, configured string) (string, error)
}

// NewCompleter builds the completer selected by PROMPT_PROVIDER. It returns a
// nil completer, and no error, when the provider is "none" or no API key can be
// found; the generator then serves every request from the composer.
func NewCompleter(ctx context.Context, cfg *Config, keys KeyResolver, logger zerolog.Logger) (prompt.Completer, error) {
	if cfg.PromptProvider == ProviderNone || cfg.PromptProvider == "" {
		return nil, nil
	}
	configured := cfg.OpenAIAPIKey
	if cfg.PromptProvider == ProviderGemini {
		configured = cfg.GeminiAPIKey
	}
	key := configured
	if keys != nil {
		resolved, err := keys.ResolveAPIKey(ctx, cfg.PromptProvider, configured)
		if err != nil {
			logger.Warn().Err(err).Str("provider", cfg.PromptProvider).Msg("prompt: stored api key lookup failed")
		} else {
			key = resolved
		}
	}
	if key == "" {
		logger.Warn().Str("provider", cfg.PromptProvider).Msg("prompt: api key missing, using composer only")
		return nil, nil
	}

	client := &http.Client{Timeout: cfg.PromptTimeout + 5*time.Second}
	switch cfg.PromptProvider {
	case ProviderGemini:
		c, err := prompt.NewGeminiCompleter(ctx, prompt.GeminiOptions{
			APIKey:     key,
			Model:      cfg.GeminiModel,
			HTTPClient: client,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini completer: %w", err)
		}
		logger.Info().Str("provider", c.Name()).Str("model", c.Model()).Msg("prompt: completer ready")
		return c, nil
	default:
		c, err := prompt.NewOpenAICompleter(prompt.OpenAIOptions{
			APIKey:     key,
			Model:      cfg.OpenAIModel,
			BaseURL:    cfg.OpenAIBaseURL,
			HTTPClient: client,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("prompt: openai model adjusted")
			},
		})
		if err != nil {
			return nil, fmt.Errorf("openai completer: %w", err)
		}
		logger.Info().Str("provider", c.Name()).Str("model", c.Model()).Str("base_url", cfg.OpenAIBaseURL).Msg("prompt: completer ready")
		return c, nil
	}
}
