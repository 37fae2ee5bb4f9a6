package bots

import (
	"github.com/rs/zerolog"

	"chessGo/rules"
	"chessGo/selector"
)

// SmartBot plays the one-ply heuristic from the selector package.
type SmartBot struct {
	sel *selector.Selector
}

func NewSmartBot(safeRetreat bool, log zerolog.Logger) *SmartBot {
	return &SmartBot{
		sel: selector.New(selector.Options{SafeRetreat: safeRetreat}, log.With().Str("bot", "smart").Logger()),
	}
}

func (b *SmartBot) Play(pos selector.Position) (rules.Move, error) {
	c, ok, err := b.sel.Play(pos)
	if err != nil {
		return rules.Move{}, err
	}
	if !ok {
		return rules.Move{}, ErrNoMove
	}
	return c.Move, nil
}

func (b *SmartBot) Name() string {
	return "Smart"
}
