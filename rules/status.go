package rules

import (
	"github.com/notnil/chess"
)

// InCheck reports whether the side to move is in check. Pinned attackers
// still give check, so this looks at attack patterns rather than at the
// opponent's legal moves.
func (b *Board) InCheck() bool {
	king, ok := b.kingSquare(b.Turn())
	if !ok {
		return false
	}
	return Attacked(b.top().pos.Board(), king, b.Turn().Other())
}

func (b *Board) kingSquare(c chess.Color) (chess.Square, bool) {
	board := b.top().pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p.Type() == chess.King && p.Color() == c {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

var (
	knightJumps = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straight    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal    = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Attacked reports whether a piece of colour by attacks sq on board,
// ignoring pins and whose turn it is.
func Attacked(board *chess.Board, sq chess.Square, by chess.Color) bool {
	f, r := int(sq.File()), int(sq.Rank())
	at := func(df, dr int) chess.Piece {
		nf, nr := f+df, r+dr
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			return chess.NoPiece
		}
		return board.Piece(chess.NewSquare(chess.File(nf), chess.Rank(nr)))
	}
	is := func(p chess.Piece, types ...chess.PieceType) bool {
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	// a white pawn attacks upwards, so it sits one rank below sq
	dr := -1
	if by == chess.Black {
		dr = 1
	}
	if is(at(-1, dr), chess.Pawn) || is(at(1, dr), chess.Pawn) {
		return true
	}
	for _, d := range knightJumps {
		if is(at(d[0], d[1]), chess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if is(at(d[0], d[1]), chess.King) {
			return true
		}
	}
	ray := func(dirs [][2]int, types ...chess.PieceType) bool {
		for _, d := range dirs {
			for i := 1; i < 8; i++ {
				nf, nr := f+d[0]*i, r+d[1]*i
				if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
					break
				}
				p := board.Piece(chess.NewSquare(chess.File(nf), chess.Rank(nr)))
				if p == chess.NoPiece {
					continue
				}
				if is(p, types...) {
					return true
				}
				break
			}
		}
		return false
	}
	return ray(straight, chess.Rook, chess.Queen) || ray(diagonal, chess.Bishop, chess.Queen)
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool {
	return b.top().pos.Status() == chess.Checkmate
}

// IsStalemate reports whether the side to move has no legal move and is not in check.
func (b *Board) IsStalemate() bool {
	return b.top().pos.Status() == chess.Stalemate
}

// IsInsufficientMaterial reports whether neither side can mate.
func (b *Board) IsInsufficientMaterial() bool {
	return b.replay().Method() == chess.InsufficientMaterial
}

// IsThreefoldRepetition reports whether the current position occurred three times.
func (b *Board) IsThreefoldRepetition() bool {
	for _, m := range b.replay().EligibleDraws() {
		if m == chess.ThreefoldRepetition {
			return true
		}
	}
	return false
}

// IsDraw covers stalemate, insufficient material, the fifty-move rule and
// threefold repetition.
func (b *Board) IsDraw() bool {
	if b.IsStalemate() {
		return true
	}
	g := b.replay()
	if g.Outcome() == chess.Draw {
		return true
	}
	for _, m := range g.EligibleDraws() {
		switch m {
		case chess.ThreefoldRepetition, chess.FiftyMoveRule:
			return true
		}
	}
	return false
}

// IsGameOver reports whether play has ended.
func (b *Board) IsGameOver() bool {
	return b.IsCheckmate() || b.IsDraw()
}

// Outcome returns the result of the game; chess.NoOutcome while in progress.
// Claimable draws are reported as chess.Draw.
func (b *Board) Outcome() chess.Outcome {
	if b.IsCheckmate() {
		if b.Turn() == chess.White {
			return chess.BlackWon
		}
		return chess.WhiteWon
	}
	if b.IsDraw() {
		return chess.Draw
	}
	return chess.NoOutcome
}

// Method returns how the game ended, chess.NoMethod while in progress.
func (b *Board) Method() chess.Method {
	switch {
	case b.IsCheckmate():
		return chess.Checkmate
	case b.IsStalemate():
		return chess.Stalemate
	}
	g := b.replay()
	if m := g.Method(); m != chess.NoMethod {
		return m
	}
	for _, m := range g.EligibleDraws() {
		switch m {
		case chess.ThreefoldRepetition, chess.FiftyMoveRule:
			return m
		}
	}
	return chess.NoMethod
}
