// Package termview is a terminal chess board built on tview: move a cursor
// with the arrow keys or hjkl, Enter picks a piece up and drops it.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"chessGo/match"
)

var glyphs = map[chess.Piece]rune{
	chess.WhiteKing: '♔', chess.WhiteQueen: '♕', chess.WhiteRook: '♖',
	chess.WhiteBishop: '♗', chess.WhiteKnight: '♘', chess.WhitePawn: '♙',
	chess.BlackKing: '♚', chess.BlackQueen: '♛', chess.BlackRook: '♜',
	chess.BlackBishop: '♝', chess.BlackKnight: '♞', chess.BlackPawn: '♟',
}

var (
	lightBG  = tcell.NewRGBColor(240, 217, 181)
	darkBG   = tcell.NewRGBColor(181, 136, 99)
	cursorBG = tcell.ColorTeal
	pickedBG = tcell.ColorOlive
	lastBG   = tcell.NewRGBColor(205, 210, 106)
)

type BoardUI struct {
	Box   *tview.Box
	hint  *tview.TextView
	match *match.Match

	cursor  chess.Square
	picked  chess.Square
	message string
}

func NewBoard(m *match.Match, hint *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		match:  m,
		cursor: chess.E2,
		picked: chess.NoSquare,
	}
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetInputCapture(b.handleKey)
	return b
}

// cellOrigin returns the screen cell of sq's left column; the human's side
// is at the bottom.
func cellOrigin(sq chess.Square, human chess.Color, x, y int) (int, int) {
	col, row := int(sq.File()), 7-int(sq.Rank())
	if human == chess.Black {
		col, row = 7-col, int(sq.Rank())
	}
	// 3 characters per cell, 2 for the rank labels
	return x + 2 + col*3, y + row
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	snap := b.match.Snapshot()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		bg := lightBG
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			bg = darkBG
		}
		if snap.HasLast && (sq == snap.LastMove.From || sq == snap.LastMove.To) {
			bg = lastBG
		}
		if sq == b.picked {
			bg = pickedBG
		}
		if sq == b.cursor {
			bg = cursorBG
		}
		r := ' '
		fg := tcell.ColorBlack
		if p := snap.Pieces[sq]; p != chess.NoPiece {
			r = glyphs[p]
		}
		style := tcell.StyleDefault.Background(bg).Foreground(fg)
		cx, cy := cellOrigin(sq, snap.Human, x, y)
		screen.SetContent(cx, cy, ' ', nil, style)
		screen.SetContent(cx+1, cy, r, nil, style)
		screen.SetContent(cx+2, cy, ' ', nil, style)
	}
	drawCoordinates(screen, snap.Human, x, y)
	return x, y, 26, 9
}

func drawCoordinates(screen tcell.Screen, human chess.Color, x, y int) {
	for i := 0; i < 8; i++ {
		file, rank := chess.File(i), chess.Rank(7-i)
		if human == chess.Black {
			file, rank = chess.File(7-i), chess.Rank(i)
		}
		screen.SetContent(x, y+i, rune('1'+int(rank)), nil, tcell.StyleDefault)
		screen.SetContent(x+3+i*3, y+8, rune('a'+int(file)), nil, tcell.StyleDefault)
	}
}

// MoveCursor moves the cursor h columns right and v rows down as the human
// sees the board.
func (b *BoardUI) MoveCursor(h, v int) {
	df, dr := h, -v
	if b.match.Status().Human == chess.Black {
		df, dr = -h, v
	}
	f, r := int(b.cursor.File())+df, int(b.cursor.Rank())+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return
	}
	b.cursor = chess.NewSquare(chess.File(f), chess.Rank(r))
}

// Select picks up the piece under the cursor, or drops the picked piece there.
func (b *BoardUI) Select() {
	if b.picked == chess.NoSquare {
		if b.match.CanPickUp(b.cursor) {
			b.picked = b.cursor
			b.message = ""
		} else {
			b.message = "Cannot pick up " + b.cursor.String()
		}
		b.refreshHint()
		return
	}
	from := b.picked
	b.picked = chess.NoSquare
	if b.match.Drop(from, b.cursor) == match.Snapback {
		b.message = fmt.Sprintf("%s-%s is not legal", from, b.cursor)
	} else {
		b.message = ""
	}
	b.refreshHint()
}

func (b *BoardUI) TakeBack() {
	b.picked = chess.NoSquare
	if !b.match.TakeBack() {
		b.message = "Nothing to take back"
	} else {
		b.message = ""
	}
	b.refreshHint()
}

func (b *BoardUI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		b.MoveCursor(0, -1)
	case tcell.KeyDown:
		b.MoveCursor(0, 1)
	case tcell.KeyLeft:
		b.MoveCursor(-1, 0)
	case tcell.KeyRight:
		b.MoveCursor(1, 0)
	case tcell.KeyEnter:
		b.Select()
	case tcell.KeyEsc:
		if b.picked != chess.NoSquare {
			b.picked = chess.NoSquare
			b.refreshHint()
			return nil
		}
		b.TakeBack()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			b.MoveCursor(-1, 0)
		case 'j':
			b.MoveCursor(0, 1)
		case 'k':
			b.MoveCursor(0, -1)
		case 'l':
			b.MoveCursor(1, 0)
		case ' ':
			b.Select()
		case 'b':
			if name, err := b.match.CycleBot(); err != nil {
				b.message = err.Error()
			} else {
				b.message = "Opponent: " + name
			}
			b.refreshHint()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

func (b *BoardUI) refreshHint() {
	if b.hint == nil {
		return
	}
	st := b.match.Status()
	text := st.Text()
	if st.HasLast {
		text += fmt.Sprintf("\nLast move: %s   Material: %+d", st.LastMove.Notation, st.Material)
	}
	if st.Opening != "" {
		text += "\n" + st.Opening
	}
	text += "\nBot: " + st.Bot
	if b.message != "" {
		text += "\n" + b.message
	}
	b.hint.SetText(text)
}
