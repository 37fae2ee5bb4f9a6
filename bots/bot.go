// bot.go
package bots

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"chessGo/rules"
	"chessGo/selector"
)

var (
	ErrNoMove     = errors.New("no legal move")
	ErrUnknownBot = errors.New("unknown bot")
)

// ChessBot интерфейс для всех ботов
type ChessBot interface {
	// Play chooses a move for the side to move and commits it.
	Play(pos selector.Position) (rules.Move, error)
	Name() string
}

// Options are shared by every bot constructor.
type Options struct {
	Seed        int64
	SafeRetreat bool
	Log         zerolog.Logger
}

var registry = map[string]func(Options) ChessBot{
	"smart":   func(o Options) ChessBot { return NewSmartBot(o.SafeRetreat, o.Log) },
	"random":  func(o Options) ChessBot { return NewRandomBot(o.Seed) },
	"newborn": func(Options) ChessBot { return NewNewbornBot() },
}

// New builds the bot registered under name.
func New(name string, opts Options) (ChessBot, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q; valid: %v", ErrUnknownBot, name, Names())
	}
	return ctor(opts), nil
}

// Names lists the registered bots in a stable order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
