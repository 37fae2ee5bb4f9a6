package bots

import (
	"chessGo/rules"
	"chessGo/selector"
)

// NewbornBot всегда играет первый легальный ход
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) Play(pos selector.Position) (rules.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return rules.Move{}, ErrNoMove
	}
	return pos.Apply(moves[0])
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
