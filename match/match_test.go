package match

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessGo/rules"
	"chessGo/selector"
)

// clock collects scheduled replies so tests decide when they fire.
type clock struct {
	pending []func()
	delays  []time.Duration
}

func (c *clock) after(d time.Duration, fn func()) {
	c.delays = append(c.delays, d)
	c.pending = append(c.pending, fn)
}

func (c *clock) flush() {
	fns := c.pending
	c.pending = nil
	for _, fn := range fns {
		fn()
	}
}

func newMatch(t *testing.T, fen string, human chess.Color) (*Match, *clock) {
	t.Helper()
	c := &clock{}
	m, err := New(Options{
		Bot:      "newborn",
		Delay:    250 * time.Millisecond,
		StartFEN: fen,
		Log:      zerolog.Nop(),
		After:    c.after,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(human); err != nil {
		t.Fatal(err)
	}
	return m, c
}

func TestDropAndReply(t *testing.T) {
	m, c := newMatch(t, "", chess.White)
	changed := 0
	m.OnChange(func() { changed++ })

	if !m.CanPickUp(chess.E2) {
		t.Fatal("cannot pick up own pawn")
	}
	if m.CanPickUp(chess.E7) || m.CanPickUp(chess.E4) {
		t.Fatal("picked up opponent piece or empty square")
	}
	if got := m.Drop(chess.E2, chess.E4); got != Accepted {
		t.Fatalf("Drop(e2e4) = %v", got)
	}
	st := m.Status()
	if !st.Thinking || st.Plies != 1 {
		t.Fatalf("status after drop = %+v", st)
	}
	if m.CanPickUp(chess.D2) {
		t.Fatal("picked up while bot is thinking")
	}
	if len(c.delays) != 1 || c.delays[0] != 250*time.Millisecond {
		t.Fatalf("delays = %v", c.delays)
	}
	c.flush()
	st = m.Status()
	if st.Thinking || st.Plies != 2 || st.Turn != chess.White {
		t.Fatalf("status after reply = %+v", st)
	}
	if changed != 1 {
		t.Fatalf("OnChange called %d times", changed)
	}
	if st.Text() != "Your move" {
		t.Fatalf("Text() = %q", st.Text())
	}
}

func TestIllegalDropSnapsBack(t *testing.T) {
	m, c := newMatch(t, "", chess.White)
	if got := m.Drop(chess.E2, chess.E5); got != Snapback {
		t.Fatalf("Drop(e2e5) = %v", got)
	}
	if got := m.Drop(chess.E2, chess.E2); got != Snapback {
		t.Fatalf("Drop(e2e2) = %v", got)
	}
	if got := m.Drop(chess.E7, chess.E5); got != Snapback {
		t.Fatalf("Drop(e7e5) = %v", got)
	}
	if m.Status().Plies != 0 || len(c.pending) != 0 {
		t.Fatal("illegal drop changed the game")
	}
}

func TestBotOpensForBlack(t *testing.T) {
	m, c := newMatch(t, "", chess.Black)
	if !m.Status().Thinking {
		t.Fatal("bot not thinking after start as black")
	}
	c.flush()
	st := m.Status()
	if st.Plies != 1 || st.Turn != chess.Black {
		t.Fatalf("status = %+v", st)
	}
	if !m.CanPickUp(chess.E7) {
		t.Fatal("black cannot pick up")
	}
}

func TestTakeBack(t *testing.T) {
	m, c := newMatch(t, "", chess.White)
	m.Drop(chess.E2, chess.E4)
	if m.TakeBack() {
		t.Fatal("take back while thinking")
	}
	c.flush()
	if !m.TakeBack() {
		t.Fatal("take back refused")
	}
	st := m.Status()
	if st.Plies != 0 || st.Turn != chess.White {
		t.Fatalf("status = %+v", st)
	}
	if m.TakeBack() {
		t.Fatal("take back with nothing to undo")
	}
}

func TestTakeBackBeforeFirstHumanMove(t *testing.T) {
	m, c := newMatch(t, "", chess.Black)
	c.flush()
	if m.TakeBack() {
		t.Fatal("took back the bot's opening move")
	}
	if m.Status().Plies != 1 {
		t.Fatal("board changed")
	}
}

func TestPromotionIsQueen(t *testing.T) {
	m, _ := newMatch(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", chess.White)
	if got := m.Drop(chess.A7, chess.A8); got != Accepted {
		t.Fatalf("Drop(a7a8) = %v", got)
	}
	st := m.Status()
	if st.LastMove.Promotion != chess.Queen {
		t.Fatalf("promoted to %v", st.LastMove.Promotion)
	}
	if p := m.Snapshot().Pieces[chess.A8]; p != chess.WhiteQueen {
		t.Fatalf("a8 = %v", p)
	}
}

func TestRestartDropsPendingReply(t *testing.T) {
	m, c := newMatch(t, "", chess.White)
	m.Drop(chess.E2, chess.E4)
	if err := m.Start(chess.White); err != nil {
		t.Fatal(err)
	}
	c.flush()
	if st := m.Status(); st.Plies != 0 || st.Thinking {
		t.Fatalf("stale reply ran: %+v", st)
	}
}

func TestGameOver(t *testing.T) {
	m, c := newMatch(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", chess.White)
	if m.CanPickUp(chess.E2) {
		t.Fatal("picked up after checkmate")
	}
	st := m.Status()
	if !st.Over() || !st.Checkmate || st.Outcome != chess.BlackWon {
		t.Fatalf("status = %+v", st)
	}
	if !strings.HasPrefix(st.Text(), "Checkmate, Black wins") {
		t.Fatalf("Text() = %q", st.Text())
	}
	if len(c.pending) != 0 {
		t.Fatal("bot scheduled after game end")
	}
}

type brokenBot struct{}

func (brokenBot) Play(selector.Position) (rules.Move, error) {
	return rules.Move{}, selector.ErrProbeRestore
}

func (brokenBot) Name() string { return "Broken" }

func TestBotFault(t *testing.T) {
	m, c := newMatch(t, "", chess.White)
	m.bot = brokenBot{}
	m.Drop(chess.E2, chess.E4)
	c.flush()
	st := m.Status()
	if !errors.Is(st.Fault, selector.ErrProbeRestore) {
		t.Fatalf("Fault = %v", st.Fault)
	}
	if m.CanPickUp(chess.D2) {
		t.Fatal("play continued after a fault")
	}
	if !strings.HasPrefix(st.Text(), "Bot error") {
		t.Fatalf("Text() = %q", st.Text())
	}
}

func TestCycleBot(t *testing.T) {
	m, _ := newMatch(t, "", chess.White)
	for _, want := range []string{"random", "smart", "newborn"} {
		got, err := m.CycleBot()
		if err != nil || got != want {
			t.Fatalf("CycleBot() = %q, %v, want %q", got, err, want)
		}
	}
	if got := m.Status().Bot; got != "Newborn" {
		t.Fatalf("Status().Bot = %q", got)
	}
	if err := m.SetBot("nobody"); err == nil {
		t.Fatal("SetBot(nobody) succeeded")
	}
	if got := m.Status().Bot; got != "Newborn" {
		t.Fatalf("failed SetBot changed the bot to %q", got)
	}
}

func TestCycleBotConcurrent(t *testing.T) {
	m, _ := newMatch(t, "", chess.White)
	const workers, rounds = 4, 30
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if _, err := m.CycleBot(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	// every switch advances by one, so 120 switches over 3 bots end where they began
	if got := m.Status().Bot; got != "Newborn" {
		t.Fatalf("Status().Bot = %q after %d switches", got, workers*rounds)
	}
}

func TestSnapshot(t *testing.T) {
	m, _ := newMatch(t, "", chess.White)
	s := m.Snapshot()
	if s.Pieces[chess.E1] != chess.WhiteKing || s.Pieces[chess.D8] != chess.BlackQueen {
		t.Fatal("start position pieces")
	}
	if s.FEN != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" || s.HasLast {
		t.Fatalf("snapshot = %+v", s)
	}
}
