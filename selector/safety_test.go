package selector

import (
	"errors"
	"testing"

	"github.com/notnil/chess"

	"chessGo/rules"
)

const (
	// white queen d1, king e1; black pawn e5, king e8
	queenVsPawn = "4k3/8/8/4p3/8/8/8/3QK3 w - - 0 1"
	// as above with a white knight on f3
	queenKnightVsPawn = "4k3/8/8/4p3/8/5N2/8/3QK3 w - - 0 1"
	// knights on b3 and g6, each attacked by a pawn
	twoKnightsAttacked = "4k3/7p/6N1/p7/p7/1N6/8/4K3 w - - 0 1"
)

func TestIsVulnerable(t *testing.T) {
	tests := []struct {
		san  string
		want bool
	}{
		{"Qd4", true},
		{"Qd2", false},
		{"Qh5", false},
	}
	for _, tt := range tests {
		t.Run(tt.san, func(t *testing.T) {
			b := newBoard(t, queenVsPawn)
			before := b.FEN()
			got, err := IsVulnerable(b, legal(t, b, tt.san))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("IsVulnerable(%s) = %v, want %v", tt.san, got, tt.want)
			}
			if b.FEN() != before || b.Plies() != 0 {
				t.Fatalf("position changed: %q", b.FEN())
			}
		})
	}
}

func TestIsVulnerableIdempotent(t *testing.T) {
	b := newBoard(t, queenVsPawn)
	m := legal(t, b, "Qd4")
	before := b.FEN()
	first, err := IsVulnerable(b, m)
	if err != nil {
		t.Fatal(err)
	}
	second, err := IsVulnerable(b, m)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("results differ: %v then %v", first, second)
	}
	if b.FEN() != before {
		t.Fatalf("position changed")
	}
}

func TestAbsentMove(t *testing.T) {
	f := &fakePos{}
	v, err := IsVulnerable(f, rules.Move{})
	if err != nil || v {
		t.Fatalf("IsVulnerable(absent) = %v, %v", v, err)
	}
	if IsProtected(f, rules.Move{}) {
		t.Fatalf("absent move reported protected")
	}
	if _, ok := TargetValue(f, rules.Move{}); ok {
		t.Fatalf("absent move has a target value")
	}
	if f.depth != 0 {
		t.Fatalf("absent move was applied")
	}
}

func TestIsProtected(t *testing.T) {
	tests := []struct {
		fen  string
		san  string
		want bool
	}{
		{queenKnightVsPawn, "Qd4", true},  // Nd4
		{queenKnightVsPawn, "Qd2", true},  // Nd2, Kd2
		{queenKnightVsPawn, "Qa4", false}, // nothing else reaches a4
		{queenVsPawn, "Qd4", false},
	}
	for _, tt := range tests {
		t.Run(tt.san, func(t *testing.T) {
			b := newBoard(t, tt.fen)
			if got := IsProtected(b, legal(t, b, tt.san)); got != tt.want {
				t.Fatalf("IsProtected(%s) = %v, want %v", tt.san, got, tt.want)
			}
		})
	}
}

func TestIsVulnerableSquare(t *testing.T) {
	// black pawn e4 attacks the knight on f3
	b := newBoard(t, "4k3/8/8/8/4p3/5N2/8/3QK3 w - - 0 1")
	tests := []struct {
		sq   chess.Square
		want bool
	}{
		{chess.F3, true},
		{chess.D1, false},
		{chess.E1, false},
		{chess.NoSquare, false},
	}
	for _, tt := range tests {
		got, err := IsVulnerableSquare(b, tt.sq)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("IsVulnerableSquare(%v) = %v, want %v", tt.sq, got, tt.want)
		}
	}
}

func TestVulnerableSquaresMostValuableFirst(t *testing.T) {
	// pawn c3 forks the knight on b2 and the queen on d2
	b := newBoard(t, "4k3/8/8/8/8/2p5/1N1Q4/4K3 w - - 0 1")
	got, err := VulnerableSquares(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != chess.D2 || got[1] != chess.B2 {
		t.Fatalf("VulnerableSquares = %v, want [d2 b2]", got)
	}
}

func TestVulnerableSquaresTieReadsFromRankEight(t *testing.T) {
	// h7 attacks the knight on g6, a4 the knight on b3
	b := newBoard(t, twoKnightsAttacked)
	got, err := VulnerableSquares(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != chess.G6 || got[1] != chess.B3 {
		t.Fatalf("VulnerableSquares = %v, want [g6 b3]", got)
	}
}

func TestSafeMoves(t *testing.T) {
	b := newBoard(t, queenKnightVsPawn)
	safe, err := SafeMoves(b, b.LegalMoves())
	if err != nil {
		t.Fatal(err)
	}
	names := notations(safe)
	has := func(san string) bool {
		for _, n := range names {
			if n == san {
				return true
			}
		}
		return false
	}
	// vulnerable but protected stays in
	if !has("Qd4") {
		t.Fatalf("Qd4 missing from %v", names)
	}
	if !has("Qd2") {
		t.Fatalf("Qd2 missing from %v", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("%s listed twice", n)
		}
		seen[n] = true
	}
}

func TestProbeRestoreFailure(t *testing.T) {
	m := rules.Move{From: chess.G1, To: chess.F3, Piece: chess.Knight, Notation: "Nf3"}
	f := &fakePos{moves: []rules.Move{m}, undoErr: errors.New("stack corrupted")}
	_, err := IsVulnerable(f, m)
	if !errors.Is(err, ErrProbeRestore) {
		t.Fatalf("got %v, want ErrProbeRestore", err)
	}
}

func TestProbeUndoesOnPanic(t *testing.T) {
	m := rules.Move{From: chess.G1, To: chess.F3, Piece: chess.Knight, Notation: "Nf3"}
	f := &fakePos{moves: []rules.Move{m}, replyPanic: true}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_, _ = IsVulnerable(f, m)
	}()
	if f.depth != 0 || len(f.history) != 0 {
		t.Fatalf("probe left position applied: depth=%d history=%v", f.depth, f.history)
	}
}
