package arena

import (
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

type Options struct {
	BotA, BotB  string
	Games       int
	Concurrency int
	// MaxPlies ends a game by material adjudication.
	MaxPlies int
	// AdjudicateMargin is the material lead that wins an adjudicated game.
	AdjudicateMargin int
	Openings         []string
	Seed             int64
	SafeRetreat      bool
	Log              zerolog.Logger
}

const (
	defaultMaxPlies = 200
	defaultMargin   = 3
)

type gameInfo struct {
	id             string
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	moves    []string
	comment  string
	eco      string
	result   chess.Outcome
}

// Summary is the score from BotA's point of view.
type Summary struct {
	Wins, Losses, Draws int
	Stat                GameStatistics
}

func (s Summary) Games() int {
	return s.Wins + s.Losses + s.Draws
}
