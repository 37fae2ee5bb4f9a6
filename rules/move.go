package rules

import (
	"github.com/notnil/chess"
)

// Move is one legal ply together with the facts the selector needs about it.
// Target square is always To; check and mate are explicit flags rather than
// notation suffixes.
type Move struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
	Piece     chess.PieceType
	Notation  string

	Capture   bool
	EnPassant bool
	Castle    bool
	Check     bool
	Mate      bool
}

// IsZero reports whether m is the absent move.
func (m Move) IsZero() bool {
	return m.Notation == "" && m.From == m.To
}

// Same reports whether m and o describe the same ply, ignoring notation.
func (m Move) Same(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// UCI returns the move in long algebraic form, e.g. "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case chess.Queen:
		s += "q"
	case chess.Rook:
		s += "r"
	case chess.Bishop:
		s += "b"
	case chess.Knight:
		s += "n"
	}
	return s
}

func (m Move) String() string {
	if m.Notation != "" {
		return m.Notation
	}
	return m.UCI()
}

func newMove(pos *chess.Position, cm *chess.Move) Move {
	m := Move{
		From:      cm.S1(),
		To:        cm.S2(),
		Promotion: cm.Promo(),
		Piece:     pos.Board().Piece(cm.S1()).Type(),
		Notation:  chess.AlgebraicNotation{}.Encode(pos, cm),
		Capture:   cm.HasTag(chess.Capture),
		EnPassant: cm.HasTag(chess.EnPassant),
		Castle:    cm.HasTag(chess.KingSideCastle) || cm.HasTag(chess.QueenSideCastle),
		Check:     cm.HasTag(chess.Check),
	}
	if m.Check {
		m.Mate = pos.Update(cm).Status() == chess.Checkmate
	}
	return m
}

// ParseSquare converts an algebraic label such as "e4" into a square.
func ParseSquare(s string) (chess.Square, bool) {
	if len(s) != 2 {
		return chess.NoSquare, false
	}
	f := int(s[0]) - 'a'
	r := int(s[1]) - '1'
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(f), chess.Rank(r)), true
}

// Squares lists a1..h8.
func Squares() []chess.Square {
	out := make([]chess.Square, 0, 64)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		out = append(out, sq)
	}
	return out
}
