package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/webshunter/animemacker/internal/http/handlers"
	"github.com/webshunter/animemacker/internal/middleware"
)

// Options configures the middleware stack around the handlers.
type Options struct {
	CORSAllowedOrigins []string
	DefaultLocale      string
	CountryLookup      middleware.CountryLookup
	// RateLimitPerMinute applies to generation and rendering routes. Zero disables it.
	RateLimitPerMinute int
	// StaticDir is served under /static when non-empty.
	StaticDir string
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.CORSAllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	// Health
	r.Get("/v1/healthz", app.Health)
	r.Get("/metrics", app.Metrics)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMinute, time.Minute))
		r.Post("/v1/scenes/generate", app.ScenesGenerate)
		r.Post("/v1/scenes/compose", app.ScenesCompose)
		r.Post("/v1/placeholders/scene", app.PlaceholderScene)
		r.Get("/v1/placeholders/scene.svg", app.PlaceholderSceneSVG)
	})
	r.Post("/v1/hashtags", app.Hashtags)

	r.Route("/v1/character", func(r chi.Router) {
		r.Get("/", app.CharacterLatest)
		r.Post("/", app.CharacterSave)
		r.Delete("/", app.CharacterClear)
	})
	r.Route("/v1/characters", func(r chi.Router) {
		r.Get("/", app.CharactersList)
		r.Post("/", app.CharactersCreate)
		r.Get("/{id}", app.CharacterGet)
		r.Put("/{id}", app.CharacterUpdate)
		r.Delete("/{id}", app.CharacterDelete)
		r.Post("/{id}/portrait", app.CharacterPortrait)
	})
	r.Route("/v1/creations", func(r chi.Router) {
		r.Get("/", app.CreationsList)
		r.Post("/", app.CreationsCreate)
		r.Get("/export", app.CreationsExport)
		r.Get("/{id}", app.CreationGet)
		r.Put("/{id}", app.CreationUpdate)
		r.Delete("/{id}", app.CreationDelete)
		r.Post("/{id}/image", app.CreationImage)
	})

	if opts.StaticDir != "" {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(opts.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
