package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/webshunter/animemacker/internal/infra"
	"github.com/webshunter/animemacker/internal/infra/credentials"
)

func main() {
	_ = godotenv.Load()

	var (
		keyFlag      string
		providerFlag string
		listFlag     bool
		deleteFlag   bool
	)
	flag.StringVar(&keyFlag, "key", "", "API key for the selected provider (fallbacks to environment)")
	flag.StringVar(&providerFlag, "provider", credentials.ProviderOpenAI, "completion provider to configure (openai or gemini)")
	flag.BoolVar(&listFlag, "list", false, "list providers with a stored key")
	flag.BoolVar(&deleteFlag, "delete", false, "remove the stored key of the selected provider")
	flag.Parse()

	provider := strings.TrimSpace(strings.ToLower(providerFlag))
	switch provider {
	case credentials.ProviderGemini, credentials.ProviderOpenAI:
	case "":
		provider = credentials.ProviderOpenAI
	default:
		exitWithError(fmt.Errorf("unsupported provider %q", providerFlag))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(fmt.Errorf("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to create pool: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "apikey").Str("provider", provider).Logger()
	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))

	switch {
	case listFlag:
		entries, err := store.List(ctx)
		if err != nil {
			exitWithError(fmt.Errorf("failed to list keys: %w", err))
		}
		if len(entries) == 0 {
			fmt.Println("no API keys stored")
			return
		}
		for _, e := range entries {
			fmt.Printf("%-8s updated %s\n", e.Provider, e.UpdatedAt.Format(time.RFC3339))
		}
	case deleteFlag:
		removed, err := store.Delete(ctx, provider)
		if err != nil {
			exitWithError(fmt.Errorf("failed to delete %s api key: %w", provider, err))
		}
		if !removed {
			fmt.Printf("no %s API key stored\n", strings.ToUpper(provider))
			return
		}
		fmt.Printf("%s API key removed\n", strings.ToUpper(provider))
	default:
		key := strings.TrimSpace(keyFlag)
		if key == "" {
			switch provider {
			case credentials.ProviderGemini:
				key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
			default:
				key = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
			}
		}
		if key == "" {
			exitWithError(fmt.Errorf("%s API key is required via -key or environment", strings.ToUpper(provider)))
		}
		if err := store.Set(ctx, provider, key, nil); err != nil {
			exitWithError(fmt.Errorf("failed to persist %s api key: %w", provider, err))
		}
		fmt.Printf("%s API key stored successfully\n", strings.ToUpper(provider))
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
