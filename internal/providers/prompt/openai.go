package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOptions configures a completer for any OpenAI-compatible chat
// completions endpoint.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	OnWarning  func(reason, detail string)
}

// OpenAICompleter talks to an OpenAI-compatible endpoint, Groq by default.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

const (
	openAIDefaultTimeout = 30 * time.Second

	DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel   = "llama-3.1-8b-instant"
)

const systemMessage = "You are a creative director for anime short videos. You only respond with valid JSON."

var openAIModelAliases = map[string]string{
	"llama3-8b":            "llama-3.1-8b-instant",
	"llama-3-8b":           "llama-3.1-8b-instant",
	"llama3.1-8b":          "llama-3.1-8b-instant",
	"llama-3.1-8b":         "llama-3.1-8b-instant",
	"llama3-70b":           "llama-3.3-70b-versatile",
	"llama-3-70b":          "llama-3.3-70b-versatile",
	"llama-3.3-70b":        "llama-3.3-70b-versatile",
	"llama3-8b-8192":       "llama-3.1-8b-instant",
	"llama3-70b-8192":      "llama-3.3-70b-versatile",
	"llama-3.1-70b-latest": "llama-3.3-70b-versatile",
}

// NewOpenAICompleter validates opts and builds the client.
func NewOpenAICompleter(opts OpenAIOptions) (*OpenAICompleter, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	model, reason := normalizeOpenAIModel(opts.Model)
	if reason != "" && opts.OnWarning != nil {
		opts.OnWarning("model_"+reason, fmt.Sprintf("requested=%s resolved=%s", strings.TrimSpace(opts.Model), model))
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: openAIDefaultTimeout}
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = httpClient
	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Name implements Completer.
func (o *OpenAICompleter) Name() string { return openAIProviderName }

// Model reports the resolved model identifier.
func (o *OpenAICompleter) Model() string { return o.model }

// Complete implements Completer with a single chat completion request.
func (o *OpenAICompleter) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeOpenAIModel resolves shorthand model names. Unknown names pass
// through untouched since compatible endpoints host arbitrary models.
func normalizeOpenAIModel(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultOpenAIModel, ""
	}
	normalized := strings.ToLower(trimmed)
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	if alias, ok := openAIModelAliases[normalized]; ok {
		return alias, "alias"
	}
	return trimmed, ""
}

var _ Completer = (*OpenAICompleter)(nil)
