package selector

import (
	"testing"

	"github.com/notnil/chess"

	"chessGo/rules"
)

func newBoard(t *testing.T, fen string) *rules.Board {
	t.Helper()
	b, err := rules.NewBoard(fen)
	if err != nil {
		t.Fatalf("new board %q: %v", fen, err)
	}
	return b
}

func play(t *testing.T, b *rules.Board, sans ...string) {
	t.Helper()
	for _, san := range sans {
		if _, err := b.ApplySAN(san); err != nil {
			t.Fatalf("apply %s: %v", san, err)
		}
	}
}

// legal returns the legal move with the given notation.
func legal(t *testing.T, pos Position, san string) rules.Move {
	t.Helper()
	for _, m := range pos.LegalMoves() {
		if m.Notation == san {
			return m
		}
	}
	t.Fatalf("%s is not legal here", san)
	return rules.Move{}
}

func notations(moves []rules.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fakePos is a scripted Position: moves before any probe, replies while a
// move is applied.
type fakePos struct {
	moves   []rules.Move
	replies []rules.Move
	pieces  map[chess.Square]chess.Piece
	history []string

	depth      int
	undoErr    error
	replyPanic bool
}

func (f *fakePos) LegalMoves(from ...chess.Square) []rules.Move {
	if f.depth > 0 {
		if f.replyPanic {
			panic("reply generation failed")
		}
		return f.replies
	}
	if len(from) == 0 {
		return append([]rules.Move(nil), f.moves...)
	}
	var out []rules.Move
	for _, m := range f.moves {
		for _, sq := range from {
			if m.From == sq {
				out = append(out, m)
			}
		}
	}
	return out
}

func (f *fakePos) OpponentMoves() ([]rules.Move, error) { return nil, nil }

func (f *fakePos) Apply(m rules.Move) (rules.Move, error) {
	f.depth++
	f.history = append(f.history, m.Notation)
	return m, nil
}

func (f *fakePos) Undo() error {
	if f.undoErr != nil {
		return f.undoErr
	}
	f.depth--
	f.history = f.history[:len(f.history)-1]
	return nil
}

func (f *fakePos) PieceAt(sq chess.Square) chess.Piece {
	if p, ok := f.pieces[sq]; ok {
		return p
	}
	return chess.NoPiece
}

func (f *fakePos) Turn() chess.Color  { return chess.White }
func (f *fakePos) History() []string { return append([]string(nil), f.history...) }
