package selector

import (
	"fmt"

	"github.com/rs/zerolog"

	"chessGo/rules"
)

// Stage names the attempt that produced a move.
type Stage int

const (
	StageNone Stage = iota
	StageDefensive
	StageCapture
	StageSafe
	StageFallback
)

func (s Stage) String() string {
	switch s {
	case StageDefensive:
		return "defensive"
	case StageCapture:
		return "capture"
	case StageSafe:
		return "safe"
	case StageFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Choice is a selected move and the stage that produced it.
type Choice struct {
	Move  rules.Move
	Stage Stage
	// Repeated is set by Play when the first pick was replaced to avoid
	// an immediate repetition.
	Repeated bool
}

// Options tune the selector.
type Options struct {
	// SafeRetreat lets the defensive stage fall back to the endangered
	// piece's safe moves when it has no safe capture.
	SafeRetreat bool
}

// Selector chooses moves for the side to move.
type Selector struct {
	opts Options
	log  zerolog.Logger
}

// New returns a selector logging to log; pass zerolog.Nop() for silence.
func New(opts Options, log zerolog.Logger) *Selector {
	return &Selector{opts: opts, log: log}
}

// Select picks a move without committing it. ok is false when there is no
// legal move. Moves equal to any of exclude are never returned.
func (s *Selector) Select(pos Position, exclude ...rules.Move) (Choice, bool, error) {
	legal := without(pos.LegalMoves(), exclude)
	if len(legal) == 0 {
		s.log.Debug().Msg("no legal move")
		return Choice{}, false, nil
	}

	if m, ok, err := s.defensive(pos, exclude); err != nil {
		return Choice{}, false, err
	} else if ok {
		return s.pick(m, StageDefensive), true, nil
	}

	captures, err := SafeCaptures(pos, legal)
	if err != nil {
		return Choice{}, false, err
	}
	if len(captures) > 0 {
		return s.pick(captures[0], StageCapture), true, nil
	}

	safe, err := SafeMoves(pos, legal)
	if err != nil {
		return Choice{}, false, err
	}
	if len(safe) > 0 {
		return s.pick(safe[0], StageSafe), true, nil
	}

	return s.pick(RankPawnsFirst(legal)[0], StageFallback), true, nil
}

func (s *Selector) defensive(pos Position, exclude []rules.Move) (rules.Move, bool, error) {
	squares, err := VulnerableSquares(pos)
	if err != nil {
		return rules.Move{}, false, err
	}
	if len(squares) == 0 {
		return rules.Move{}, false, nil
	}
	sq := squares[0]
	moves := without(pos.LegalMoves(sq), exclude)
	s.log.Debug().
		Str("square", sq.String()).
		Int("moves", len(moves)).
		Msg("piece under attack")

	captures, err := SafeCaptures(pos, moves)
	if err != nil {
		return rules.Move{}, false, err
	}
	if len(captures) > 0 {
		return captures[0], true, nil
	}
	if !s.opts.SafeRetreat {
		return rules.Move{}, false, nil
	}
	safe, err := SafeMoves(pos, moves)
	if err != nil {
		return rules.Move{}, false, err
	}
	if len(safe) > 0 {
		return safe[0], true, nil
	}
	return rules.Move{}, false, nil
}

func (s *Selector) pick(m rules.Move, stage Stage) Choice {
	s.log.Debug().
		Str("move", m.String()).
		Str("stage", stage.String()).
		Msg("move selected")
	return Choice{Move: m, Stage: stage}
}

// Play selects a move, commits it and then applies the repetition guard.
// On return the position differs from the input by exactly the returned move.
func (s *Selector) Play(pos Position) (Choice, bool, error) {
	c, ok, err := s.Select(pos)
	if err != nil || !ok {
		return c, ok, err
	}
	played, err := pos.Apply(c.Move)
	if err != nil {
		return Choice{}, false, err
	}
	c.Move = played
	return s.AvoidRepetition(pos, c)
}

// AvoidRepetition looks at the history after c.Move has been committed.
// When the ply four back has the same notation as the one just made, the
// move is taken back and another one is committed instead, if there is one.
func (s *Selector) AvoidRepetition(pos Position, c Choice) (Choice, bool, error) {
	if !Repeats(pos.History()) {
		return c, true, nil
	}
	if err := pos.Undo(); err != nil {
		return Choice{}, false, fmt.Errorf("%w: taking back %s: %v", ErrProbeRestore, c.Move, err)
	}
	alt, ok, err := s.Select(pos, c.Move)
	if err != nil {
		s.restore(pos, c.Move)
		return Choice{}, false, err
	}
	if !ok {
		s.log.Debug().Str("move", c.Move.String()).Msg("repetition kept, no alternative")
		if _, err := pos.Apply(c.Move); err != nil {
			return Choice{}, false, fmt.Errorf("%w: replaying %s: %v", ErrProbeRestore, c.Move, err)
		}
		return c, true, nil
	}
	played, err := pos.Apply(alt.Move)
	if err != nil {
		s.restore(pos, c.Move)
		return Choice{}, false, err
	}
	s.log.Debug().
		Str("repeated", c.Move.String()).
		Str("move", played.String()).
		Msg("repetition avoided")
	alt.Move = played
	alt.Repeated = true
	return alt, true, nil
}

// restore puts the taken-back move back so the caller sees exactly one new ply.
func (s *Selector) restore(pos Position, m rules.Move) {
	if _, err := pos.Apply(m); err != nil {
		s.log.Error().Err(err).Str("move", m.String()).Msg("restore after failed reselection")
	}
}

// Repeats reports whether the last ply of history equals the ply four
// before it.
func Repeats(history []string) bool {
	n := len(history)
	if n < 5 {
		return false
	}
	return history[n-1] == history[n-5]
}

func without(moves []rules.Move, exclude []rules.Move) []rules.Move {
	if len(exclude) == 0 {
		return moves
	}
	out := moves[:0:0]
	for _, m := range moves {
		if !contains(exclude, m) {
			out = append(out, m)
		}
	}
	return out
}
