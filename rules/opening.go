package rules

import (
	"sync"

	"github.com/notnil/chess"
	"github.com/notnil/chess/opening"
)

var (
	ecoOnce sync.Once
	ecoBook *opening.BookECO
)

func ecoBookECO() *opening.BookECO {
	ecoOnce.Do(func() {
		ecoBook = opening.NewBookECO()
	})
	return ecoBook
}

var startFEN = chess.NewGame().Position().String()

// Opening returns the ECO code and title of the line played so far. Games
// set up from another position have no opening.
func (b *Board) Opening() (code, title string, ok bool) {
	if len(b.frames) == 0 || b.root.pos.String() != startFEN {
		return "", "", false
	}
	moves := make([]*chess.Move, len(b.frames))
	for i, f := range b.frames {
		moves[i] = f.cm
	}
	o := ecoBookECO().Find(moves)
	if o == nil {
		return "", "", false
	}
	return o.Code(), o.Title(), true
}
