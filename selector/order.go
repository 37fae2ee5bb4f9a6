package selector

import (
	"sort"

	"github.com/notnil/chess"

	"chessGo/rules"
)

// RankRoyalFirst orders by descending notation length, then moves every
// rook move (or rook promotion) to the end. The input is not modified.
func RankRoyalFirst(moves []rules.Move) []rules.Move {
	list := append([]rules.Move(nil), moves...)
	sortStable(list, func(a, b rules.Move) bool {
		return len(a.Notation) > len(b.Notation)
	})
	out := make([]rules.Move, 0, len(list))
	var rooks []rules.Move
	for _, m := range list {
		if isRookMove(m) {
			rooks = append(rooks, m)
			continue
		}
		out = append(out, m)
	}
	return append(out, rooks...)
}

func isRookMove(m rules.Move) bool {
	return m.Piece == chess.Rook || m.Promotion == chess.Rook
}

// RankPawnsFirst orders by ascending notation length. The input is not modified.
func RankPawnsFirst(moves []rules.Move) []rules.Move {
	list := append([]rules.Move(nil), moves...)
	sortStable(list, func(a, b rules.Move) bool {
		return len(a.Notation) < len(b.Notation)
	})
	return list
}

func sortStable[T any](list []T, less func(a, b T) bool) {
	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i], list[j])
	})
}
