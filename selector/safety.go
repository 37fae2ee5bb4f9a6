package selector

import (
	"github.com/notnil/chess"

	"chessGo/rules"
)

// IsVulnerable reports whether the piece moved by m could be taken on the
// opponent's very next ply. The position is restored before returning.
func IsVulnerable(pos Position, m rules.Move) (bool, error) {
	if m.IsZero() {
		return false, nil
	}
	hit := false
	err := probe(pos, m, func() error {
		for _, reply := range pos.LegalMoves() {
			if reply.To == m.To {
				hit = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return hit, nil
}

// IsProtected reports whether another legal move of the mover, from the
// current position, lands on m's target square.
// TODO: count pawn protection from the board; pawns never move diagonally
// onto an empty square, so they are not seen as protectors here.
func IsProtected(pos Position, m rules.Move) bool {
	if m.IsZero() {
		return false
	}
	for _, other := range pos.LegalMoves() {
		if other.Same(m) {
			continue
		}
		if other.To == m.To {
			return true
		}
	}
	return false
}

// IsVulnerableSquare reports whether the opponent, if it were its turn
// now, could legally move onto sq.
func IsVulnerableSquare(pos Position, sq chess.Square) (bool, error) {
	if sq == chess.NoSquare {
		return false, nil
	}
	attacks, err := pos.OpponentMoves()
	if err != nil {
		return false, err
	}
	for _, m := range attacks {
		if m.To == sq {
			return true, nil
		}
	}
	return false, nil
}

// VulnerableSquares lists the mover's occupied squares the opponent could
// move onto, most valuable occupant first. Equal values keep board reading
// order: rank 8 down to rank 1, a to h within a rank.
func VulnerableSquares(pos Position) ([]chess.Square, error) {
	attacks, err := pos.OpponentMoves()
	if err != nil {
		return nil, err
	}
	targets := make(map[chess.Square]bool, len(attacks))
	for _, m := range attacks {
		targets[m.To] = true
	}
	me := pos.Turn()
	var out []chess.Square
	for _, sq := range readingOrder() {
		p := pos.PieceAt(sq)
		if p == chess.NoPiece || p.Color() != me {
			continue
		}
		if targets[sq] {
			out = append(out, sq)
		}
	}
	sortStable(out, func(a, b chess.Square) bool {
		return PieceValue(pos.PieceAt(a).Type()) > PieceValue(pos.PieceAt(b).Type())
	})
	return out, nil
}

func readingOrder() []chess.Square {
	out := make([]chess.Square, 0, 64)
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			out = append(out, chess.NewSquare(chess.File(f), chess.Rank(r)))
		}
	}
	return out
}

// SafeMoves keeps the moves that are not vulnerable together with the
// moves that are protected, in royal-first order.
func SafeMoves(pos Position, moves []rules.Move) ([]rules.Move, error) {
	var safe, covered []rules.Move
	for _, m := range moves {
		v, err := IsVulnerable(pos, m)
		if err != nil {
			return nil, err
		}
		if !v {
			safe = append(safe, m)
		}
	}
	for _, m := range moves {
		if IsProtected(pos, m) {
			covered = append(covered, m)
		}
	}
	return RankRoyalFirst(union(safe, covered)), nil
}

func union(a, b []rules.Move) []rules.Move {
	out := make([]rules.Move, 0, len(a)+len(b))
	out = append(out, a...)
	for _, m := range b {
		if !contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func contains(list []rules.Move, m rules.Move) bool {
	for _, x := range list {
		if x.Same(m) {
			return true
		}
	}
	return false
}
