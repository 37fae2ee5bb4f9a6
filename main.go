package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"chessGo/bots"
	"chessGo/config"
	"chessGo/game"
	"chessGo/match"
	"chessGo/termview"
)

var (
	flagColor    = flag.String("color", "", "play white or black")
	flagBot      = flag.String("bot", "", "opponent: newborn, random or smart")
	flagDelay    = flag.Int("delay", -1, "bot reply delay in milliseconds")
	flagTerm     = flag.Bool("term", false, "play in the terminal instead of a window")
	flagFEN      = flag.String("fen", "", "start from this position")
	flagLogLevel = flag.String("log-level", "", "trace, debug, info, warn or error")
	flagRetreat  = flag.Bool("safe-retreat", false, "smart bot retreats an attacked piece when it cannot trade")
	flagSave     = flag.Bool("save", false, "write the effective settings to the config file")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *flagSave {
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Println("Settings saved to", path)
	}

	logPath, err := config.LogFile()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := zerolog.New(logFile).Level(cfg.Level()).With().Timestamp().Logger()
	log.Info().Interface("config", cfg).Msg("chessGo started")

	m, err := match.New(match.Options{
		Human: cfg.Human(),
		Bot:   cfg.Bot,
		BotOpts: bots.Options{
			SafeRetreat: cfg.SafeRetreat,
			Log:         log,
		},
		Delay:    cfg.ReplyDelay(),
		StartFEN: cfg.StartFEN,
		Log:      log.With().Str("component", "match").Logger(),
	})
	if err != nil {
		return err
	}

	if cfg.Frontend == "term" {
		return termview.Run(m, cfg.Human())
	}
	g := game.NewGame(m, log.With().Str("component", "gui").Logger())
	if *flagColor != "" {
		// colour given on the command line skips the choice screen
		if err := m.Start(cfg.Human()); err != nil {
			return err
		}
	}
	return g.Run()
}

func applyFlags(cfg *config.Config) {
	if *flagColor != "" {
		cfg.PlayerColor = *flagColor
	}
	if *flagBot != "" {
		cfg.Bot = *flagBot
	}
	if *flagDelay >= 0 {
		cfg.ReplyDelayMS = *flagDelay
	}
	if *flagTerm {
		cfg.Frontend = "term"
	}
	if *flagFEN != "" {
		cfg.StartFEN = *flagFEN
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
	if *flagRetreat {
		cfg.SafeRetreat = true
	}
}
