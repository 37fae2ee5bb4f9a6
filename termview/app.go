package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"chessGo/match"
)

// Run starts m with the human on the given side and blocks until the user
// quits with q.
func Run(m *match.Match, human chess.Color) error {
	app := tview.NewApplication()

	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	board := NewBoard(m, hint)
	if human == chess.Black {
		board.cursor = chess.E7
	}
	m.OnChange(func() {
		// called from the bot's timer goroutine
		go app.QueueUpdateDraw(board.refreshHint)
	})

	keys := tview.NewTextView().SetText("arrows/hjkl move  enter pick/drop  esc take back  b switch bot  q quit")
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(board.Box, 28, 0, true).
			AddItem(hint, 0, 1, false), 10, 0, true).
		AddItem(keys, 1, 0, false)
	layout.SetBorder(true).SetTitle(" chessGo ")

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	if err := m.Start(human); err != nil {
		return err
	}
	board.refreshHint()
	return app.SetRoot(layout, true).SetFocus(board.Box).Run()
}
