package prompt

import (
	"context"
	"strings"
)

const (
	composerProviderName = "composer"
	geminiProviderName   = "gemini"
	openAIProviderName   = "openai"
)

// Fallback reasons attached to Result.FallbackReason.
const (
	ReasonMissingCompleter = "missing_completer"
	ReasonCompletion       = "completion"
	ReasonEmptyResponse    = "empty_response"
	ReasonParsePayload     = "parse_payload"
	ReasonMissingFields    = "missing_fields"
)

// Options tune a single completion call.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Completer sends one prompt to a text-generation backend and returns the raw
// reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Name() string
}

// CompleterFunc adapts a function to Completer. The provider name is "func".
type CompleterFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

func (f CompleterFunc) Name() string { return "func" }

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
