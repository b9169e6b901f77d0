// Command scenegen generates scenes offline for a batch of ideas and prints
// one JSON object per line, in input order.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/webshunter/animemacker/internal/adapter/repo"
	"github.com/webshunter/animemacker/internal/domain"
	"github.com/webshunter/animemacker/internal/hashtags"
	"github.com/webshunter/animemacker/internal/infra"
	"github.com/webshunter/animemacker/internal/infra/credentials"
	"github.com/webshunter/animemacker/internal/middleware"
	"github.com/webshunter/animemacker/internal/providers/prompt"
)

type ideaList []string

func (l *ideaList) String() string { return strings.Join(*l, ", ") }

func (l *ideaList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type line struct {
	Idea           string             `json:"idea"`
	Scene          domain.SceneOutput `json:"scene"`
	Provider       string             `json:"provider"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	Hashtags       []string           `json:"hashtags"`
	CreationID     string             `json:"creation_id,omitempty"`
}

func main() {
	_ = godotenv.Load()

	var (
		ideas       ideaList
		fileFlag    string
		nameFlag    string
		descFlag    string
		concurrency int
		composeOnly bool
		save        bool
	)
	flag.Var(&ideas, "idea", "scene idea (repeatable)")
	flag.StringVar(&fileFlag, "file", "", "newline-delimited ideas; - reads stdin")
	flag.StringVar(&nameFlag, "character", "", "character name")
	flag.StringVar(&descFlag, "description", "", "character description")
	flag.IntVar(&concurrency, "concurrency", 4, "parallel generations")
	flag.BoolVar(&composeOnly, "compose", false, "skip the completer and use the composer only")
	flag.BoolVar(&save, "save", false, "store each scene as a creation (requires DATABASE_URL)")
	flag.Parse()

	if fileFlag != "" {
		fromFile, err := readIdeas(fileFlag)
		if err != nil {
			exitWithError(err)
		}
		ideas = append(ideas, fromFile...)
	}
	for _, arg := range flag.Args() {
		ideas = append(ideas, arg)
	}
	ideas = cleanIdeas(ideas)
	if len(ideas) == 0 {
		exitWithError(errors.New("at least one idea is required via -idea, -file or arguments"))
	}

	cfg, err := infra.LoadConfigNoDB()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "scenegen").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		keys      infra.KeyResolver
		creations domain.CreationRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			exitWithError(fmt.Errorf("failed to create pool: %w", err))
		}
		defer pool.Close()
		runner := infra.NewSQLRunner(pool, logger)
		keys = credentials.NewStore(runner)
		creations = repo.NewCreationRepository(runner)
	} else if save {
		exitWithError(errors.New("-save requires DATABASE_URL"))
	}

	var completer prompt.Completer
	if !composeOnly {
		completer, err = infra.NewCompleter(ctx, cfg, keys, logger)
		if err != nil {
			exitWithError(err)
		}
	}
	gen := prompt.NewGenerator(cfg.GeneratorConfig(logger), completer, nil)

	var character *domain.CharacterProfile
	if name := strings.TrimSpace(nameFlag); name != "" {
		character = &domain.CharacterProfile{Name: name, Description: strings.TrimSpace(descFlag)}
	}
	if !save {
		creations = nil
	}

	lines, err := run(ctx, gen, creations, ideas, character, concurrency, logger)
	if err != nil {
		exitWithError(err)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, l := range lines {
		if err := enc.Encode(l); err != nil {
			exitWithError(err)
		}
	}
}

// run generates every idea with at most concurrency calls in flight. A nil
// creations repository skips saving.
func run(ctx context.Context, gen *prompt.Generator, creations domain.CreationRepository, ideas []string, character *domain.CharacterProfile, concurrency int, logger zerolog.Logger) ([]line, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	out := make([]line, len(ideas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, idea := range ideas {
		g.Go(func() error {
			ictx := middleware.WithRequestID(gctx, fmt.Sprintf("scenegen-%d", i+1))
			res := gen.Generate(ictx, domain.SceneRequest{Idea: idea, Character: character})
			l := line{
				Idea:           idea,
				Scene:          res.Scene,
				Provider:       res.Provider,
				FallbackReason: res.FallbackReason,
				Hashtags:       hashtags.Generate(res.Scene, character),
			}
			if creations != nil {
				created, err := creations.Create(ictx, &domain.Creation{
					Title:          res.Scene.Title,
					ImagePrompt:    res.Scene.ImagePrompt,
					VideoPrompt:    res.Scene.VideoPrompt,
					Idea:           idea,
					Provider:       res.Provider,
					FallbackReason: res.FallbackReason,
				})
				if err != nil {
					return fmt.Errorf("save %q: %w", idea, err)
				}
				l.CreationID = created.ID
			}
			logger.Debug().Str("idea", idea).Str("provider", res.Provider).Msg("scenegen: generated")
			out[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readIdeas(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open ideas: %w", err)
		}
		defer f.Close()
		r = f
	}
	var ideas []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ideas = append(ideas, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ideas: %w", err)
	}
	return ideas, nil
}

// cleanIdeas trims ideas and drops blanks and # comments.
func cleanIdeas(in []string) []string {
	out := make([]string, 0, len(in))
	for _, idea := range in {
		idea = strings.TrimSpace(idea)
		if idea == "" || strings.HasPrefix(idea, "#") {
			continue
		}
		out = append(out, idea)
	}
	return out
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
