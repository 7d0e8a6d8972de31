package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termle/internal/config"
	"github.com/robalobadob/termle/internal/daily"
	"github.com/robalobadob/termle/internal/game"
	"github.com/robalobadob/termle/internal/httpserver"
	"github.com/robalobadob/termle/internal/store"
	"github.com/robalobadob/termle/internal/tui"
	"github.com/robalobadob/termle/internal/words"
)

func main() {
	serve := flag.Bool("serve", false, "run the JSON API instead of the terminal game")
	dailyRound := flag.Bool("daily", false, "play today's word")
	plain := flag.Bool("plain", false, "disable colors")
	answer := flag.String("answer", "", "fixed answer (for testing)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	src, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, g := src.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	scorer, err := game.ScorerByName(cfg.Scoring)
	if err != nil {
		log.Fatal().Err(err).Msg("bad scoring policy")
	}

	if *serve {
		runServer(cfg, src, scorer)
		return
	}

	fixed := *answer
	if *dailyRound && fixed == "" {
		fixed = daily.Answer(time.Now(), cfg.DailySalt, src)
	}
	round, err := game.New(src, fixed, game.WithScorer(scorer))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start round")
	}
	log.Debug().Bool("daily", *dailyRound).Str("scoring", cfg.Scoring).Msg("round started")

	interactive := tui.Interactive(os.Stdout)
	ui := tui.New(os.Stdout, tui.Options{
		Plain: *plain || cfg.Colorless() || !interactive,
		Clear: interactive,
		Width: tui.Width(os.Stdout),
	})
	ui.Intro()
	outcome, err := tui.Play(os.Stdin, ui, round)
	if err != nil {
		log.Error().Err(err).Msg("reading input")
	}
	ui.Outro()
	log.Debug().Stringer("state", outcome.State).Int("attempts", outcome.Attempts).Msg("round over")
}

// runServer serves the JSON API until SIGINT/SIGTERM.
func runServer(cfg *config.Config, src *words.Source, scorer game.Scorer) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(store.NewMemoryStore(), src, httpserver.Options{
		Secret:       []byte(cfg.Server.JWTSecret),
		TokenTTL:     cfg.Server.TokenTTL,
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.Server.ClientOrigin,
		Scorer:       scorer,
	})
	log.Info().Str("addr", cfg.Addr()).Str("scoring", cfg.Scoring).Msg("starting termle server")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
// Logs always go to stderr so they never mix with the game on stdout.
func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
