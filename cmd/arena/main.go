package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chessGo/arena"
	"chessGo/bots"
)

type Config struct {
	BotA        string
	BotB        string
	Games       int
	Concurrency int
	MaxPlies    int
	Seed        int64
	SafeRetreat bool
	NoOpenings  bool
	LogLevel    string
}

var config Config

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	var err = run(log)
	if err != nil {
		log.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	flag.StringVar(&config.BotA, "a", "smart", "first bot, one of "+joinNames())
	flag.StringVar(&config.BotB, "b", "random", "second bot")
	flag.IntVar(&config.Games, "games", 16, "number of games")
	flag.IntVar(&config.Concurrency, "concurrency", 4, "games played in parallel")
	flag.IntVar(&config.MaxPlies, "max-plies", 200, "adjudicate by material after this many plies")
	flag.Int64Var(&config.Seed, "seed", 0, "random bot seed, 0 for the clock")
	flag.BoolVar(&config.SafeRetreat, "safe-retreat", false, "smart bot retreats an attacked piece when it cannot trade")
	flag.BoolVar(&config.NoOpenings, "no-openings", false, "start every game from the initial position")
	flag.StringVar(&config.LogLevel, "log-level", "info", "log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	log = log.Level(lvl)
	log.Debug().Interface("config", config).Msg("arena config")

	var openings []string
	if !config.NoOpenings {
		if openings, err = arena.Openings(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := arena.Run(ctx, arena.Options{
		BotA:        config.BotA,
		BotB:        config.BotB,
		Games:       config.Games,
		Concurrency: config.Concurrency,
		MaxPlies:    config.MaxPlies,
		Openings:    openings,
		Seed:        config.Seed,
		SafeRetreat: config.SafeRetreat,
		Log:         log,
	})
	if err != nil {
		return err
	}
	log.Info().
		Int("wins", summary.Wins).
		Int("losses", summary.Losses).
		Int("draws", summary.Draws).
		Float64("elo", summary.Stat.EloDifference).
		Msgf("%s vs %s", config.BotA, config.BotB)
	return nil
}

func joinNames() string { return strings.Join(bots.Names(), ", ") }
