// Package handlers implements the HTTP endpoints of the scene service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/middleware"
	"github.com/webshunter/animemacker/internal/placeholder"
	"github.com/webshunter/animemacker/internal/providers/prompt"
	"github.com/webshunter/animemacker/internal/storage"
)

const (
	defaultPlaceholderTTL = 30 * time.Minute
	defaultMaxUpload      = 10 << 20
	maxJSONBody           = 1 << 20
)

// Deps collects what NewApp wires into the handlers.
type Deps struct {
	Generator      *prompt.Generator
	Synthesizer    *placeholder.Synthesizer
	Characters     domain.CharacterRepository
	Creations      domain.CreationRepository
	Store          *storage.FileStore
	Logger         zerolog.Logger
	PlaceholderTTL time.Duration
	MaxUploadBytes int64
	// Ping reports database health for /v1/healthz. Optional.
	Ping func(ctx context.Context) error
}

type App struct {
	Generator   *prompt.Generator
	Synthesizer *placeholder.Synthesizer
	Characters  domain.CharacterRepository
	Creations   domain.CreationRepository
	Store       *storage.FileStore
	Logger      zerolog.Logger
	Ping        func(ctx context.Context) error

	maxUpload    int64
	placeholders *cache.Cache
	validate     *validator.Validate
}

func NewApp(d Deps) *App {
	ttl := d.PlaceholderTTL
	if ttl <= 0 {
		ttl = defaultPlaceholderTTL
	}
	maxUpload := d.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	gen := d.Generator
	if gen == nil {
		gen = prompt.NewGenerator(prompt.GeneratorConfig{Logger: d.Logger}, nil, nil)
	}
	synth := d.Synthesizer
	if synth == nil {
		synth = placeholder.New(gen.Composer().Taxonomy())
	}
	return &App{
		Generator:    gen,
		Synthesizer:  synth,
		Characters:   d.Characters,
		Creations:    d.Creations,
		Store:        d.Store,
		Logger:       d.Logger,
		Ping:         d.Ping,
		maxUpload:    maxUpload,
		placeholders: cache.New(ttl, 2*ttl),
		validate:     newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, codeStr, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": codeStr, "message": msg},
	})
}

// normalizer is implemented by request payloads that trim their input before
// validation.
type normalizer interface {
	normalize()
}

// bind decodes a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler may continue.
func (a *App) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	if err := a.validate.Struct(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid payload"
	}
	fe := errs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "uuid", "uuid4":
		return field + " must be a valid uuid"
	default:
		return field + " is invalid"
	}
}

// fail maps repository and storage errors onto HTTP responses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", what+" not found")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
	case errors.Is(err, domain.ErrUnsupportedType):
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "only png, jpeg, webp, gif and svg images are accepted")
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("resource", what).
			Msg("http: request failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to process "+what)
	}
}

// queryLimit reads ?limit=; repositories clamp the value.
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return n
}

// assetURL resolves a stored key to its public URL.
func (a *App) assetURL(key *string) string {
	if key == nil || *key == "" || a.Store == nil {
		return ""
	}
	return a.Store.URL(*key)
}
