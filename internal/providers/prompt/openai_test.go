package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestOpenAICompleterRequest(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"llama-3.1-8b-instant",`+
			`"choices":[{"index":0,"message":{"role":"assistant","content":"{\"title\":\"t\"}"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	completer, err := NewOpenAICompleter(OpenAIOptions{APIKey: "gsk-test", BaseURL: srv.URL + "/openai/v1/"})
	if err != nil {
		t.Fatalf("NewOpenAICompleter returned error: %v", err)
	}
	out, err := completer.Complete(context.Background(), "scene please", Options{Temperature: 0.8, MaxTokens: 2000})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if out != `{"title":"t"}` {
		t.Fatalf("Complete = %q", out)
	}
	if auth != "Bearer gsk-test" {
		t.Fatalf("Authorization = %q", auth)
	}
	if path != "/openai/v1/chat/completions" {
		t.Fatalf("path = %q", path)
	}
	if captured.Model != DefaultOpenAIModel {
		t.Fatalf("model = %q, want %q", captured.Model, DefaultOpenAIModel)
	}
	if captured.Temperature != 0.8 || captured.MaxTokens != 2000 {
		t.Fatalf("temperature/max_tokens = %v/%d", captured.Temperature, captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[1].Content != "scene please" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
}

func TestOpenAICompleterErrors(t *testing.T) {
	if _, err := NewOpenAICompleter(OpenAIOptions{APIKey: "  "}); err == nil {
		t.Fatal("expected error for blank api key")
	}

	completer, err := NewOpenAICompleter(OpenAIOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAICompleter returned error: %v", err)
	}
	if _, err := completer.Complete(context.Background(), "x", Options{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Complete err = %v, want transport error", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"rate limited","type":"rate_limit"}}`)
	}))
	defer srv.Close()
	completer, err = NewOpenAICompleter(OpenAIOptions{APIKey: "dummy", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewOpenAICompleter returned error: %v", err)
	}
	if _, err := completer.Complete(context.Background(), "x", Options{}); err == nil {
		t.Fatal("expected error for 429")
	}
}

func TestOpenAICompleterFeedsGeneratorFallback(t *testing.T) {
	completer, err := NewOpenAICompleter(OpenAIOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAICompleter returned error: %v", err)
	}
	var capturedReason string
	gen := NewGenerator(GeneratorConfig{OnFallback: func(reason string, err error) { capturedReason = reason }}, completer, nil)
	res := gen.Generate(context.Background(), sceneRequest("walking"))
	if res.Provider != composerProviderName {
		t.Fatalf("Provider = %q, want %q", res.Provider, composerProviderName)
	}
	if capturedReason != ReasonCompletion {
		t.Fatalf("captured reason = %q, want %q", capturedReason, ReasonCompletion)
	}
}

func TestNormalizeOpenAIModel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		input  string
		model  string
		reason string
	}{
		{name: "empty", input: "", model: "llama-3.1-8b-instant", reason: ""},
		{name: "exact", input: "llama-3.1-8b-instant", model: "llama-3.1-8b-instant", reason: ""},
		{name: "alias_short", input: "llama3-8b", model: "llama-3.1-8b-instant", reason: "alias"},
		{name: "alias_spaces", input: "Llama 3.3 70b", model: "llama-3.3-70b-versatile", reason: "alias"},
		{name: "passthrough", input: "gpt-4o-mini", model: "gpt-4o-mini", reason: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotModel, gotReason := normalizeOpenAIModel(tc.input)
			if gotModel != tc.model {
				t.Fatalf("model = %q, want %q", gotModel, tc.model)
			}
			if gotReason != tc.reason {
				t.Fatalf("reason = %q, want %q", gotReason, tc.reason)
			}
		})
	}
}

func TestNewOpenAICompleterWarnsOnAlias(t *testing.T) {
	var capturedReason, capturedDetail string
	completer, err := NewOpenAICompleter(OpenAIOptions{
		APIKey: "dummy",
		Model:  "llama3_70b",
		OnWarning: func(reason, detail string) {
			capturedReason = reason
			capturedDetail = detail
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completer.Model() != "llama-3.3-70b-versatile" {
		t.Fatalf("Model() = %q", completer.Model())
	}
	if capturedReason != "model_alias" {
		t.Fatalf("warning reason = %q, want %q", capturedReason, "model_alias")
	}
	if capturedDetail == "" {
		t.Fatal("expected warning detail to be set")
	}
}
