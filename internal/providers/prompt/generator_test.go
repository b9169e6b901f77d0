package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/webshunter/animemacker/internal/composer"
	"github.com/webshunter/animemacker/internal/domain"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
	opts  Options
	got   string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	s.calls++
	s.opts = opts
	s.got = prompt
	return s.reply, s.err
}

func (s *stubCompleter) Name() string { return "stub" }

func TestGeneratorFallbackMatchesComposer(t *testing.T) {
	req := domain.SceneRequest{
		Idea:      "dancing in the rain at night in the city",
		Character: &domain.CharacterProfile{Name: "Mika", Description: "silver hair, cheerful"},
	}
	want := composer.New(nil).Compose(req)

	var capturedReason string
	var capturedErr error
	stub := &stubCompleter{err: errors.New("boom")}
	gen := NewGenerator(GeneratorConfig{
		OnFallback: func(reason string, err error) {
			capturedReason = reason
			capturedErr = err
		},
	}, stub, nil)

	res := gen.Generate(context.Background(), req)
	if res.Scene != want {
		t.Fatalf("Scene = %+v, want composer output %+v", res.Scene, want)
	}
	if res.Provider != composerProviderName {
		t.Fatalf("Provider = %q, want %q", res.Provider, composerProviderName)
	}
	if res.FallbackReason != ReasonCompletion {
		t.Fatalf("FallbackReason = %q, want %q", res.FallbackReason, ReasonCompletion)
	}
	if capturedReason != ReasonCompletion || capturedErr == nil {
		t.Fatalf("OnFallback got (%q, %v)", capturedReason, capturedErr)
	}
	if stub.calls != 1 {
		t.Fatalf("calls = %d, want 1", stub.calls)
	}
}

func TestGeneratorReasons(t *testing.T) {
	cases := []struct {
		name   string
		reply  string
		reason string
	}{
		{name: "prose", reply: "Sure! Here is a lovely scene about a girl in the park.", reason: ReasonParsePayload},
		{name: "empty", reply: "   \n", reason: ReasonEmptyResponse},
		{name: "missing_key", reply: `{"title":"t","image_prompt":"i"}`, reason: ReasonMissingFields},
		{name: "non_string", reply: `{"title":"t","image_prompt":"i","video_prompt":42}`, reason: ReasonMissingFields},
		{name: "blank_value", reply: `{"title":"t","image_prompt":" ","video_prompt":"v"}`, reason: ReasonMissingFields},
		{name: "broken_json", reply: `{"title": "t", "image_prompt": }`, reason: ReasonParsePayload},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := domain.SceneRequest{Idea: "a girl walking in a park"}
			gen := NewGenerator(GeneratorConfig{}, &stubCompleter{reply: tc.reply}, nil)
			res := gen.Generate(context.Background(), req)
			if res.FallbackReason != tc.reason {
				t.Fatalf("FallbackReason = %q, want %q", res.FallbackReason, tc.reason)
			}
			if res.Scene != gen.Composer().Compose(req) {
				t.Fatalf("Scene = %+v, want composer output", res.Scene)
			}
		})
	}
}

func TestGeneratorMissingCompleter(t *testing.T) {
	gen := NewGenerator(GeneratorConfig{}, nil, nil)
	res := gen.Generate(context.Background(), domain.SceneRequest{Idea: "zzz"})
	if res.FallbackReason != ReasonMissingCompleter {
		t.Fatalf("FallbackReason = %q, want %q", res.FallbackReason, ReasonMissingCompleter)
	}
	if res.Scene.Title != "anime character in zzz" {
		t.Fatalf("Title = %q", res.Scene.Title)
	}
	if gen.Provider() != composerProviderName {
		t.Fatalf("Provider() = %q", gen.Provider())
	}
}

func TestGeneratorSuccess(t *testing.T) {
	stub := &stubCompleter{reply: "Here you go:\n```json\n{\"title\":\"Rainy Steps\",\"image_prompt\":\"Mika dancing\",\"video_prompt\":\"Slow pan\"}\n```"}
	gen := NewGenerator(GeneratorConfig{}, stub, nil)
	req := domain.SceneRequest{
		Idea:      "dancing in the rain",
		Character: &domain.CharacterProfile{Name: "Mika", Description: "silver hair"},
	}
	res := gen.Generate(context.Background(), req)
	if res.Fallback() {
		t.Fatalf("unexpected fallback %q", res.FallbackReason)
	}
	want := domain.SceneOutput{Title: "Rainy Steps", ImagePrompt: "Mika dancing", VideoPrompt: "Slow pan"}
	if res.Scene != want {
		t.Fatalf("Scene = %+v, want %+v", res.Scene, want)
	}
	if res.Provider != "stub" {
		t.Fatalf("Provider = %q, want stub", res.Provider)
	}
	if stub.opts.Temperature != DefaultTemperature || stub.opts.MaxTokens != DefaultMaxTokens {
		t.Fatalf("opts = %+v, want defaults", stub.opts)
	}
	if !strings.Contains(stub.got, "Character Reference: Mika - silver hair") {
		t.Fatalf("instruction missing character reference:\n%s", stub.got)
	}
	if !strings.Contains(stub.got, `"dancing in the rain"`) {
		t.Fatalf("instruction missing idea:\n%s", stub.got)
	}
}

func TestGeneratorTimeout(t *testing.T) {
	slow := CompleterFunc(func(ctx context.Context, prompt string, opts Options) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return `{"title":"late","image_prompt":"late","video_prompt":"late"}`, nil
		}
	})
	var capturedErr error
	gen := NewGenerator(GeneratorConfig{
		Timeout:    20 * time.Millisecond,
		OnFallback: func(reason string, err error) { capturedErr = err },
	}, slow, nil)
	res := gen.Generate(context.Background(), domain.SceneRequest{Idea: "run"})
	if res.FallbackReason != ReasonCompletion {
		t.Fatalf("FallbackReason = %q, want %q", res.FallbackReason, ReasonCompletion)
	}
	if !errors.Is(capturedErr, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", capturedErr)
	}
}

func TestGeneratorCustomOptions(t *testing.T) {
	stub := &stubCompleter{reply: `{"title":"a","image_prompt":"b","video_prompt":"c"}`}
	gen := NewGenerator(GeneratorConfig{Temperature: 0.3, MaxTokens: 512}, stub, nil)
	gen.Generate(context.Background(), domain.SceneRequest{Idea: "x"})
	if stub.opts.Temperature != 0.3 || stub.opts.MaxTokens != 512 {
		t.Fatalf("opts = %+v", stub.opts)
	}
}

func TestGeneratorNonASCIIReply(t *testing.T) {
	payload := "```json\n{\"title\":\"Rainy Steps\",\"image_prompt\":\"Mika dancing\",\"video_prompt\":\"Slow pan\"}\n```"
	want := domain.SceneOutput{Title: "Rainy Steps", ImagePrompt: "Mika dancing", VideoPrompt: "Slow pan"}
	for name, prefix := range map[string]string{
		"widening":  strings.Repeat("Ⱥ", 60),
		"narrowing": "Scene for İİİİİİİİİİ:\n",
	} {
		t.Run(name, func(t *testing.T) {
			gen := NewGenerator(GeneratorConfig{}, &stubCompleter{reply: prefix + payload}, nil)
			res := gen.Generate(context.Background(), domain.SceneRequest{Idea: "dancing in the rain"})
			if res.Fallback() {
				t.Fatalf("unexpected fallback %q", res.FallbackReason)
			}
			if res.Scene != want {
				t.Fatalf("Scene = %+v, want %+v", res.Scene, want)
			}
		})
	}
}
