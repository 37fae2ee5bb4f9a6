package match

import (
	"fmt"

	"github.com/notnil/chess"

	"chessGo/bots"
	"chessGo/rules"
)

// Status is what a view polls to render its status line.
type Status struct {
	Started  bool
	Human    chess.Color
	Turn     chess.Color
	Thinking bool
	Bot      string

	InCheck              bool
	Checkmate            bool
	Stalemate            bool
	Draw                 bool
	InsufficientMaterial bool
	Outcome              chess.Outcome
	Method               chess.Method

	LastMove rules.Move
	HasLast  bool
	Plies    int
	Material int
	// Opening is the ECO code and name of the line played, when known.
	Opening string

	// Fault is set when the bot failed to move; play stops until a take back.
	Fault error
}

// Status reports the current state of play.
func (m *Match) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.board
	st := Status{
		Started:  m.started,
		Human:    m.human,
		Turn:     b.Turn(),
		Thinking: m.thinking,
		Bot:      m.bot.Name(),
		Plies:    b.Plies(),
		Material: bots.Material(b.Position().Board()),
		Fault:    m.fault,
	}
	st.InCheck = b.InCheck()
	st.Checkmate = b.IsCheckmate()
	st.Stalemate = b.IsStalemate()
	st.Draw = b.IsDraw()
	st.InsufficientMaterial = b.IsInsufficientMaterial()
	st.Outcome = b.Outcome()
	st.Method = b.Method()
	st.LastMove, st.HasLast = b.LastMove()
	if code, title, ok := b.Opening(); ok {
		st.Opening = code + " " + title
	}
	return st
}

// Over reports whether the game has ended.
func (s Status) Over() bool {
	return s.Outcome != chess.NoOutcome
}

// Text renders the status line.
func (s Status) Text() string {
	switch {
	case s.Fault != nil:
		return fmt.Sprintf("Bot error: %v (Esc to take back)", s.Fault)
	case !s.Started:
		return "Choose your colour"
	case s.Checkmate:
		return fmt.Sprintf("Checkmate, %s wins (%s)", s.Turn.Other().Name(), s.Outcome)
	case s.Stalemate:
		return "Stalemate (1/2-1/2)"
	case s.InsufficientMaterial:
		return "Draw by insufficient material (1/2-1/2)"
	case s.Draw:
		return fmt.Sprintf("Draw by %s (1/2-1/2)", methodText(s.Method))
	case s.Thinking:
		return s.Bot + " is thinking..."
	}
	text := "Your move"
	if s.Turn != s.Human {
		text = s.Bot + " to move"
	}
	if s.InCheck {
		text += ", check"
	}
	return text
}

func methodText(m chess.Method) string {
	switch m {
	case chess.ThreefoldRepetition, chess.FivefoldRepetition:
		return "repetition"
	case chess.FiftyMoveRule, chess.SeventyFiveMoveRule:
		return "fifty-move rule"
	}
	return "agreement"
}

// Snapshot is the board as a view draws it.
type Snapshot struct {
	Pieces   [64]chess.Piece
	FEN      string
	Human    chess.Color
	LastMove rules.Move
	HasLast  bool
}

// Snapshot copies the current position for drawing.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{FEN: m.board.FEN(), Human: m.human}
	for _, sq := range rules.Squares() {
		s.Pieces[sq] = m.board.PieceAt(sq)
	}
	s.LastMove, s.HasLast = m.board.LastMove()
	return s
}
