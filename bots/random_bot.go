package bots

import (
	"math/rand"
	"time"

	"chessGo/rules"
	"chessGo/selector"
)

type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot seeds from the clock when seed is zero.
func NewRandomBot(seed int64) *RandomBot {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) Play(pos selector.Position) (rules.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return rules.Move{}, ErrNoMove
	}
	return pos.Apply(moves[b.rng.Intn(len(moves))])
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
