// Package prompt turns scene ideas into image and video prompts with an LLM
// completer, falling back to the deterministic composer on any failure.
package prompt

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/webshunter/animemacker/internal/composer"
	"github.com/webshunter/animemacker/internal/domain"
)

const (
	DefaultTemperature float32 = 0.8
	DefaultMaxTokens           = 2000
)

// GeneratorConfig holds per-call tuning and observers for a Generator.
type GeneratorConfig struct {
	Temperature float32
	MaxTokens   int
	// Timeout bounds each completer call. Zero leaves the caller's deadline.
	Timeout    time.Duration
	Logger     zerolog.Logger
	OnFallback func(reason string, err error)
}

// Result is a generated scene and where it came from.
type Result struct {
	Scene          domain.SceneOutput `json:"scene"`
	Provider       string             `json:"provider"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
}

// Fallback reports whether the composer produced the scene.
func (r Result) Fallback() bool { return r.FallbackReason != "" }

// Generator runs one completion per request and never fails.
type Generator struct {
	cfg       GeneratorConfig
	completer Completer
	composer  *composer.Composer
	schema    string
}

// NewGenerator wires a generator. completer may be nil, in which case every
// call is served by fallback. A nil fallback selects the default composer.
func NewGenerator(cfg GeneratorConfig, completer Completer, fallback *composer.Composer) *Generator {
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if fallback == nil {
		fallback = composer.New(nil)
	}
	return &Generator{
		cfg:       cfg,
		completer: completer,
		composer:  fallback,
		schema:    SceneSchema(),
	}
}

// Composer returns the fallback composer.
func (g *Generator) Composer() *composer.Composer { return g.composer }

// Provider names the configured completer, or the composer when none is set.
func (g *Generator) Provider() string {
	if g.completer == nil {
		return composerProviderName
	}
	return g.completer.Name()
}

// Generate produces a scene for req. The idea must be non-empty; callers
// validate it.
func (g *Generator) Generate(ctx context.Context, req domain.SceneRequest) Result {
	if g.completer == nil {
		return g.useFallback(req, ReasonMissingCompleter, nil)
	}
	name := g.completer.Name()
	instruction := BuildInstruction(req, g.schema)

	callCtx := ctx
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := g.completer.Complete(callCtx, instruction, Options{
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	elapsed := time.Since(start)
	completionDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		return g.useFallback(req, ReasonCompletion, err)
	}

	scene, err := Sanitize(raw)
	if err != nil {
		return g.useFallback(req, fallbackReason(err), err)
	}

	generationsTotal.WithLabelValues(name, "success").Inc()
	g.cfg.Logger.Debug().Str("provider", name).Dur("elapsed", elapsed).Msg("prompt: scene generated")
	return Result{Scene: scene, Provider: name}
}

func (g *Generator) useFallback(req domain.SceneRequest, reason string, cause error) Result {
	if g.cfg.OnFallback != nil {
		g.cfg.OnFallback(reason, cause)
	}
	fallbacksTotal.WithLabelValues(reason).Inc()
	generationsTotal.WithLabelValues(g.Provider(), "fallback").Inc()

	evt := g.cfg.Logger.Warn().Str("reason", reason).Str("provider", g.Provider())
	if cause != nil {
		evt = evt.Err(cause)
		if errors.Is(cause, context.DeadlineExceeded) {
			evt = evt.Bool("timeout", true)
		}
	}
	evt.Msg("prompt: using composer fallback")

	return Result{
		Scene:          g.composer.Compose(req),
		Provider:       composerProviderName,
		FallbackReason: reason,
	}
}
