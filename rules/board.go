// Package rules adapts github.com/notnil/chess to the move-by-move interface
// the selector and the board views work against: legal moves, apply/undo on
// an explicit stack, piece lookup, SAN history and terminal predicates.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrInvalidFEN    = errors.New("invalid fen")
)

type frame struct {
	pos   *chess.Position
	cm    *chess.Move
	move  Move
	legal []Move
}

// Board is a game in progress. Positions are immutable, so Apply pushes the
// successor onto a stack and Undo pops it.
type Board struct {
	root   frame
	frames []frame

	// replay of the committed plies, used for outcome and draw claims
	game  *chess.Game
	plies int
}

// NewBoard starts a game from fen, or from the standard position when fen is empty.
func NewBoard(fen string) (*Board, error) {
	var pos *chess.Position
	if strings.TrimSpace(fen) == "" {
		pos = chess.NewGame().Position()
	} else {
		p, err := positionFromFEN(fen)
		if err != nil {
			return nil, err
		}
		pos = p
	}
	return &Board{root: frame{pos: pos}}, nil
}

func positionFromFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

func (b *Board) top() *frame {
	if len(b.frames) == 0 {
		return &b.root
	}
	return &b.frames[len(b.frames)-1]
}

// Position returns the current notnil position.
func (b *Board) Position() *chess.Position {
	return b.top().pos
}

// FEN returns the current position as a FEN string.
func (b *Board) FEN() string {
	return b.top().pos.String()
}

// Turn returns the side to move.
func (b *Board) Turn() chess.Color {
	return b.top().pos.Turn()
}

// PieceAt returns the occupant of sq, chess.NoPiece when empty.
func (b *Board) PieceAt(sq chess.Square) chess.Piece {
	return b.top().pos.Board().Piece(sq)
}

// LegalMoves returns every legal move of the side to move, or only those
// starting on one of from when given.
func (b *Board) LegalMoves(from ...chess.Square) []Move {
	f := b.top()
	if f.legal == nil {
		f.legal = movesOf(f.pos)
	}
	if len(from) == 0 {
		return append([]Move(nil), f.legal...)
	}
	var out []Move
	for _, m := range f.legal {
		for _, sq := range from {
			if m.From == sq {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func movesOf(pos *chess.Position) []Move {
	valid := pos.ValidMoves()
	out := make([]Move, 0, len(valid))
	for _, cm := range valid {
		out = append(out, newMove(pos, cm))
	}
	return out
}

// OpponentMoves returns the moves the side not on move could play if it
// were its turn in the current position.
func (b *Board) OpponentMoves() ([]Move, error) {
	pos, err := swapTurn(b.top().pos)
	if err != nil {
		return nil, err
	}
	return movesOf(pos), nil
}

// swapTurn flips the side to move. The en passant square only makes sense
// for the side that was on move, so it is cleared.
func swapTurn(pos *chess.Position) (*chess.Position, error) {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFEN, pos.String())
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	return positionFromFEN(strings.Join(fields, " "))
}

// Apply commits m if it is legal in the current position and returns the
// committed move with its notation filled in.
func (b *Board) Apply(m Move) (Move, error) {
	f := b.top()
	var found *chess.Move
	for _, cm := range f.pos.ValidMoves() {
		if cm.S1() == m.From && cm.S2() == m.To && cm.Promo() == m.Promotion {
			found = cm
			break
		}
	}
	if found == nil {
		return Move{}, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, f.pos.String())
	}
	played := newMove(f.pos, found)
	b.frames = append(b.frames, frame{
		pos:  f.pos.Update(found),
		cm:   found,
		move: played,
	})
	return played, nil
}

// ApplySAN commits a move given in standard algebraic notation.
func (b *Board) ApplySAN(san string) (Move, error) {
	pos := b.top().pos
	cm, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrIllegalMove, san, err)
	}
	return b.Apply(Move{From: cm.S1(), To: cm.S2(), Promotion: cm.Promo()})
}

// Undo reverts the most recent committed move.
func (b *Board) Undo() error {
	if len(b.frames) == 0 {
		return ErrNothingToUndo
	}
	b.frames = b.frames[:len(b.frames)-1]
	if len(b.frames) < b.plies {
		b.game = nil
		b.plies = 0
	}
	return nil
}

// Plies returns the number of committed moves.
func (b *Board) Plies() int {
	return len(b.frames)
}

// History returns the SAN of every committed move in order.
func (b *Board) History() []string {
	out := make([]string, len(b.frames))
	for i, f := range b.frames {
		out[i] = f.move.Notation
	}
	return out
}

// LastMove returns the most recent committed move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.frames) == 0 {
		return Move{}, false
	}
	return b.frames[len(b.frames)-1].move, true
}

// Clone returns an independent board with the same history.
func (b *Board) Clone() *Board {
	c := &Board{root: frame{pos: b.root.pos}}
	c.frames = make([]frame, len(b.frames))
	for i, f := range b.frames {
		c.frames[i] = frame{pos: f.pos, cm: f.cm, move: f.move}
	}
	return c
}

// replay returns a chess.Game holding the committed plies, extending the
// cached one when possible.
func (b *Board) replay() *chess.Game {
	if b.game == nil {
		opt, err := chess.FEN(b.root.pos.String())
		if err != nil {
			// root came from a valid position
			panic(err)
		}
		b.game = chess.NewGame(opt)
		b.plies = 0
	}
	for ; b.plies < len(b.frames); b.plies++ {
		if err := b.game.Move(b.frames[b.plies].cm); err != nil {
			panic(fmt.Sprintf("replay ply %d: %v", b.plies+1, err))
		}
	}
	return b.game
}
