package selector

import (
	"testing"

	"github.com/notnil/chess"

	"chessGo/rules"
)

func TestRepeats(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		want    bool
	}{
		{"empty", nil, false},
		{"short", []string{"Nf3", "Nf6", "Ng1", "Ng8"}, false},
		{"oscillation", []string{"e4", "Nf3", "Nf6", "Ng1", "Nf6", "Nf3"}, true},
		{"different", []string{"Nf3", "Nf6", "Ng1", "Ng8", "Nc3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repeats(tt.history); got != tt.want {
				t.Fatalf("Repeats(%v) = %v, want %v", tt.history, got, tt.want)
			}
		})
	}
}

func TestAvoidRepetitionOnBoard(t *testing.T) {
	b := newBoard(t, "")
	play(t, b, "Nf3", "Nf6", "Ng1", "Ng8")
	played, err := b.ApplySAN("Nf3")
	if err != nil {
		t.Fatal(err)
	}
	c, ok, err := newSelector(Options{}).AvoidRepetition(b, Choice{Move: played, Stage: StageSafe})
	if err != nil || !ok {
		t.Fatalf("AvoidRepetition = %v, %v", ok, err)
	}
	if !c.Repeated || c.Move.Notation == "Nf3" {
		t.Fatalf("got %s repeated=%v, want a replacement", c.Move, c.Repeated)
	}
	hist := b.History()
	if len(hist) != 5 || hist[4] != c.Move.Notation {
		t.Fatalf("history = %v", hist)
	}
}

func TestAvoidRepetitionPassesThrough(t *testing.T) {
	b := newBoard(t, "")
	play(t, b, "Nf3", "Nf6", "Ng1", "Ng8")
	played, err := b.ApplySAN("e4")
	if err != nil {
		t.Fatal(err)
	}
	c, ok, err := newSelector(Options{}).AvoidRepetition(b, Choice{Move: played})
	if err != nil || !ok {
		t.Fatalf("AvoidRepetition = %v, %v", ok, err)
	}
	if c.Repeated || c.Move.Notation != "e4" {
		t.Fatalf("got %s repeated=%v", c.Move, c.Repeated)
	}
}

var (
	knightOut = rules.Move{From: chess.G1, To: chess.F3, Piece: chess.Knight, Notation: "Nf3"}
	knightAlt = rules.Move{From: chess.B1, To: chess.C3, Piece: chess.Knight, Notation: "Nc3"}
)

func TestPlayReplacesRepeatingMove(t *testing.T) {
	f := &fakePos{
		moves:   []rules.Move{knightOut, knightAlt},
		history: []string{"Nf3", "Nf6", "Ng1", "Ng8"},
	}
	c, ok, err := newSelector(Options{}).Play(f)
	if err != nil || !ok {
		t.Fatalf("Play = %v, %v", ok, err)
	}
	if c.Move.Notation != "Nc3" || !c.Repeated {
		t.Fatalf("got %s repeated=%v, want Nc3", c.Move, c.Repeated)
	}
	if got := f.History(); len(got) != 5 || got[4] != "Nc3" || f.depth != 1 {
		t.Fatalf("history = %v depth = %d", got, f.depth)
	}
}

func TestPlayKeepsRepetitionWithoutAlternative(t *testing.T) {
	f := &fakePos{
		moves:   []rules.Move{knightOut},
		history: []string{"Nf3", "Nf6", "Ng1", "Ng8"},
	}
	c, ok, err := newSelector(Options{}).Play(f)
	if err != nil || !ok {
		t.Fatalf("Play = %v, %v", ok, err)
	}
	if c.Move.Notation != "Nf3" || c.Repeated {
		t.Fatalf("got %s repeated=%v, want Nf3 kept", c.Move, c.Repeated)
	}
	if got := f.History(); len(got) != 5 || got[4] != "Nf3" || f.depth != 1 {
		t.Fatalf("history = %v depth = %d", got, f.depth)
	}
}
