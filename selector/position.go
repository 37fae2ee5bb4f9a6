// Package selector picks a reply for the engine side with one-ply
// heuristics: keep pieces out of free captures, take the most valuable
// enemy piece available, and avoid shuffling back and forth.
package selector

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"chessGo/rules"
)

// ErrProbeRestore means a look-ahead probe could not be undone and the
// position may no longer be the one the caller handed in.
var ErrProbeRestore = errors.New("probe restore failed")

// Position is the rules engine as seen by the selector. *rules.Board
// implements it.
type Position interface {
	LegalMoves(from ...chess.Square) []rules.Move
	OpponentMoves() ([]rules.Move, error)
	Apply(m rules.Move) (rules.Move, error)
	Undo() error
	PieceAt(sq chess.Square) chess.Piece
	Turn() chess.Color
	History() []string
}

var _ Position = (*rules.Board)(nil)

// probe plays m, runs fn, and undoes m again even if fn panics.
func probe(pos Position, m rules.Move, fn func() error) (err error) {
	if _, err := pos.Apply(m); err != nil {
		return fmt.Errorf("probe %s: %w", m, err)
	}
	defer func() {
		if uerr := pos.Undo(); uerr != nil {
			err = fmt.Errorf("%w: after %s: %v", ErrProbeRestore, m, uerr)
		}
	}()
	return fn()
}
