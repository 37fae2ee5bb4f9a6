// Package match connects a board view to the rules and to a bot. Views
// report drag starts, drops, take-backs and status polls; the match applies
// them and schedules the bot's reply after a short delay.
package match

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessGo/bots"
	"chessGo/rules"
)

// DropResult tells the view what to do with a dropped piece.
type DropResult int

const (
	// Snapback returns the piece to its origin square.
	Snapback DropResult = iota
	Accepted
)

// Options configure a Match.
type Options struct {
	Human    chess.Color
	Bot      string
	BotOpts  bots.Options
	Delay    time.Duration
	StartFEN string
	Log      zerolog.Logger

	// After schedules fn once d has elapsed; time.AfterFunc when nil.
	After func(d time.Duration, fn func())
}

type Match struct {
	mu sync.Mutex

	opts    Options
	board   *rules.Board
	bot     bots.ChessBot
	botName string
	human   chess.Color
	started bool

	thinking bool
	gen      int
	fault    error

	log      zerolog.Logger
	after    func(time.Duration, func())
	onChange func()
}

// New prepares a match. Play begins with Start.
func New(opts Options) (*Match, error) {
	if opts.Bot == "" {
		opts.Bot = "smart"
	}
	board, err := rules.NewBoard(opts.StartFEN)
	if err != nil {
		return nil, err
	}
	bot, err := bots.New(opts.Bot, opts.BotOpts)
	if err != nil {
		return nil, err
	}
	m := &Match{
		opts:    opts,
		board:   board,
		bot:     bot,
		botName: opts.Bot,
		human:   opts.Human,
		log:     opts.Log,
		after:   opts.After,
	}
	if m.after == nil {
		m.after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return m, nil
}

// OnChange registers fn to run after every state change that came from
// outside the caller's goroutine, such as a bot reply.
func (m *Match) OnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Match) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Start resets the board and gives the human the given colour. The bot moves
// first when the human plays black.
func (m *Match) Start(human chess.Color) error {
	board, err := rules.NewBoard(m.opts.StartFEN)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.gen++
	m.board = board
	m.human = human
	m.started = true
	m.thinking = false
	m.fault = nil
	m.log.Info().Str("human", human.Name()).Str("bot", m.botName).Str("fen", board.FEN()).Msg("match started")
	m.scheduleReply()
	m.mu.Unlock()
	return nil
}

// CanPickUp reports whether the human may start dragging the piece on sq.
func (m *Match) CanPickUp(sq chess.Square) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canPickUp(sq)
}

func (m *Match) canPickUp(sq chess.Square) bool {
	if !m.started || m.thinking || m.fault != nil || m.board.IsGameOver() {
		return false
	}
	if m.board.Turn() != m.human {
		return false
	}
	p := m.board.PieceAt(sq)
	return p != chess.NoPiece && p.Color() == m.human
}

// Drop commits the human's move from -> to when legal. Pawns reaching the
// last rank always become queens.
func (m *Match) Drop(from, to chess.Square) DropResult {
	m.mu.Lock()
	if from == to || !m.canPickUp(from) {
		m.mu.Unlock()
		return Snapback
	}
	mv := rules.Move{From: from, To: to}
	if m.board.PieceAt(from).Type() == chess.Pawn && (to.Rank() == chess.Rank8 || to.Rank() == chess.Rank1) {
		mv.Promotion = chess.Queen
	}
	played, err := m.board.Apply(mv)
	if err != nil {
		m.log.Debug().Err(err).Str("from", from.String()).Str("to", to.String()).Msg("drop refused")
		m.mu.Unlock()
		return Snapback
	}
	m.log.Info().Str("move", played.Notation).Int("ply", m.board.Plies()).Msg("human move")
	m.scheduleReply()
	m.mu.Unlock()
	return Accepted
}

// TakeBack undoes plies until it is the human's turn again, at least one.
// Nothing happens while the bot is thinking or before the human's first move.
func (m *Match) TakeBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started || m.thinking {
		return false
	}
	b := m.board.Clone()
	undone := 0
	for b.Plies() > 0 {
		if err := b.Undo(); err != nil {
			return false
		}
		undone++
		if b.Turn() == m.human {
			break
		}
	}
	if undone == 0 || b.Turn() != m.human {
		return false
	}
	m.board = b
	m.fault = nil
	m.log.Info().Int("undone", undone).Int("ply", b.Plies()).Msg("take back")
	return true
}

// scheduleReply arms the bot when it is its turn. Callers hold mu.
func (m *Match) scheduleReply() {
	if m.board.IsGameOver() || m.board.Turn() == m.human {
		return
	}
	m.thinking = true
	gen := m.gen
	m.after(m.opts.Delay, func() { m.reply(gen) })
}

func (m *Match) reply(gen int) {
	m.mu.Lock()
	if gen != m.gen || !m.thinking {
		m.mu.Unlock()
		return
	}
	m.thinking = false
	played, err := m.bot.Play(m.board)
	switch {
	case errors.Is(err, bots.ErrNoMove):
		m.log.Info().Msg("bot has no move")
	case err != nil:
		m.fault = fmt.Errorf("%s: %w", m.bot.Name(), err)
		m.log.Error().Err(err).Str("bot", m.botName).Str("fen", m.board.FEN()).Msg("bot failed")
	default:
		m.log.Info().Str("move", played.Notation).Str("bot", m.botName).Int("ply", m.board.Plies()).Msg("bot move")
	}
	m.mu.Unlock()
	m.notify()
}

// SetBot switches the opponent; it takes effect on the bot's next move.
func (m *Match) SetBot(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setBot(name)
}

// CycleBot switches to the next registered bot and returns its name.
func (m *Match) CycleBot() (string, error) {
	names := bots.Names()
	m.mu.Lock()
	defer m.mu.Unlock()
	next := names[0]
	for i, name := range names {
		if name == m.botName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.setBot(next); err != nil {
		return m.botName, err
	}
	return next, nil
}

// setBot replaces the bot. Callers hold mu.
func (m *Match) setBot(name string) error {
	bot, err := bots.New(name, m.opts.BotOpts)
	if err != nil {
		return err
	}
	m.bot = bot
	m.botName = name
	m.log.Info().Str("bot", name).Msg("bot switched")
	return nil
}

// Bots lists the bots SetBot accepts.
func (m *Match) Bots() []string {
	return bots.Names()
}
