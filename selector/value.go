package selector

import (
	"github.com/notnil/chess"

	"chessGo/rules"
)

// PieceValue ranks piece kinds: none 0, pawn 1, knight 2, bishop 3, rook 4,
// queen 5, king 6.
func PieceValue(pt chess.PieceType) int {
	switch pt {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 2
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 4
	case chess.Queen:
		return 5
	case chess.King:
		return 6
	default:
		return 0
	}
}

// TargetValue returns the value of the piece standing on m's target square
// in the current position; ok is false when the square is empty.
func TargetValue(pos Position, m rules.Move) (value int, ok bool) {
	if m.IsZero() {
		return 0, false
	}
	p := pos.PieceAt(m.To)
	if p == chess.NoPiece {
		return 0, false
	}
	return PieceValue(p.Type()), true
}

// RankByValue keeps the capturing moves, most valuable victim first.
func RankByValue(pos Position, moves []rules.Move) []rules.Move {
	type ranked struct {
		m rules.Move
		v int
	}
	var list []ranked
	for _, m := range moves {
		if v, ok := TargetValue(pos, m); ok {
			list = append(list, ranked{m, v})
		}
	}
	sortStable(list, func(a, b ranked) bool { return a.v > b.v })
	out := make([]rules.Move, len(list))
	for i, r := range list {
		out[i] = r.m
	}
	return out
}

// SafeCaptures is the value-ranked captures that are also safe, in value order.
func SafeCaptures(pos Position, moves []rules.Move) ([]rules.Move, error) {
	captures := RankByValue(pos, moves)
	if len(captures) == 0 {
		return nil, nil
	}
	safe, err := SafeMoves(pos, moves)
	if err != nil {
		return nil, err
	}
	var out []rules.Move
	for _, m := range captures {
		if contains(safe, m) {
			out = append(out, m)
		}
	}
	return out, nil
}
