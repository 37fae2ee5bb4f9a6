package bots

import (
	"github.com/notnil/chess"

	"chessGo/rules"
)

// PositionEvaluator scores a position from White's point of view.
type PositionEvaluator interface {
	Evaluate(*rules.Board) int
}

// MaterialEvaluator counts material only. The arena adjudicates games that
// hit the ply limit with it, and the views show it in the status line.
type MaterialEvaluator struct{}

// Оценка: победа/поражение перекрывают любой материал
const MateScore = 10000

func (e MaterialEvaluator) Evaluate(b *rules.Board) int {
	switch b.Outcome() {
	case chess.WhiteWon:
		return MateScore
	case chess.BlackWon:
		return -MateScore
	case chess.Draw:
		return 0
	}
	return Material(b.Position().Board())
}

// Material returns White's material minus Black's in pawns.
func Material(board *chess.Board) int {
	var score int
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		if piece.Color() == chess.White {
			score += pieceValue(piece.Type())
		} else {
			score -= pieceValue(piece.Type())
		}
	}
	return score
}

func pieceValue(piece chess.PieceType) int {
	switch piece {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		return 0
	}
}
