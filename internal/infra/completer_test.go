package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubKeys struct {
	key string
	err error
}

func (s stubKeys) ResolveAPIKey(_ context.Context, _ string, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return s.key, s.err
}

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	cases := []struct {
		name     string
		cfg      Config
		keys     KeyResolver
		provider string
	}{
		{name: "none", cfg: Config{PromptProvider: ProviderNone}},
		{name: "openai without key", cfg: Config{PromptProvider: ProviderOpenAI}},
		{name: "openai lookup error", cfg: Config{PromptProvider: ProviderOpenAI}, keys: stubKeys{err: errors.New("db down")}},
		{name: "openai env key", cfg: Config{PromptProvider: ProviderOpenAI, OpenAIAPIKey: "gsk-env"}, provider: "openai"},
		{name: "openai stored key", cfg: Config{PromptProvider: ProviderOpenAI}, keys: stubKeys{key: "gsk-db"}, provider: "openai"},
		{name: "gemini env key", cfg: Config{PromptProvider: ProviderGemini, GeminiAPIKey: "AIza-env"}, provider: "gemini"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCompleter(ctx, &tc.cfg, tc.keys, logger)
			if err != nil {
				t.Fatalf("NewCompleter returned error: %v", err)
			}
			if tc.provider == "" {
				if c != nil {
					t.Fatalf("expected no completer, got %s", c.Name())
				}
				return
			}
			if c == nil || c.Name() != tc.provider {
				t.Fatalf("completer = %v, want provider %q", c, tc.provider)
			}
		})
	}
}
