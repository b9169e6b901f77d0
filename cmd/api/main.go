package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/webshunter/animemacker/internal/adapter/repo"
	"github.com/webshunter/animemacker/internal/composer"
	"github.com/webshunter/animemacker/internal/http/handlers"
	httpapi "github.com/webshunter/animemacker/internal/http/httpapi"
	"github.com/webshunter/animemacker/internal/infra"
	"github.com/webshunter/animemacker/internal/infra/credentials"
	"github.com/webshunter/animemacker/internal/infra/geoip"
	"github.com/webshunter/animemacker/internal/keywords"
	"github.com/webshunter/animemacker/internal/placeholder"
	"github.com/webshunter/animemacker/internal/providers/prompt"
	"github.com/webshunter/animemacker/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := infra.Migrate(cfg.DatabaseURL, infra.Component(logger, "migrate")); err != nil {
			logger.Fatal().Err(err).Msg("api: migrations failed")
		}
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to connect database")
	}
	defer pool.Close()
	runner := infra.NewSQLRunner(pool, infra.Component(logger, "sql"))

	completer, err := infra.NewCompleter(ctx, cfg, credentials.NewStore(runner), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure completer")
	}
	tax := keywords.Default()
	generator := prompt.NewGenerator(cfg.GeneratorConfig(infra.Component(logger, "prompt")), completer, composer.New(tax))

	storagePath := cfg.StoragePath
	if abs, err := filepath.Abs(storagePath); err == nil {
		storagePath = abs
	}
	store, err := storage.NewFileStore(storagePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure storage")
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("api: geoip disabled")
	}
	defer geo.Close()

	app := handlers.NewApp(handlers.Deps{
		Generator:      generator,
		Synthesizer:    placeholder.New(tax),
		Characters:     repo.NewCharacterRepository(runner),
		Creations:      repo.NewCreationRepository(runner),
		Store:          store,
		Logger:         infra.Component(logger, "http"),
		PlaceholderTTL: cfg.PlaceholderTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Ping:           pool.Ping,
	})
	router := httpapi.NewRouter(app, httpapi.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DefaultLocale:      cfg.DefaultLocale,
		CountryLookup:      geo.Lookup(),
		RateLimitPerMinute: cfg.RateLimitPerMin,
		StaticDir:          store.BasePath(),
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Str("provider", generator.Provider()).Bool("development", cfg.IsDevelopment()).Msg("api: listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("api: server stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("api: server stopped")
}
