// Package game is the ebiten board: colour choice, drag-and-drop moves,
// Escape to take back and B to switch bots.
package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessGo/match"
	"chessGo/rules"
)

const (
	btnWidth  = 200
	btnHeight = 60
	infoSpace = 80
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255} // светлые клетки
	darkSquare  = color.RGBA{181, 136, 99, 255}  // темные клетки
	lastMoveHL  = color.RGBA{205, 210, 106, 160}
)

type Game struct {
	match *match.Match
	log   zerolog.Logger

	screenWidth  int
	screenHeight int
	squareSize   int
	boardOffsetX int
	boardOffsetY int

	pieces  map[chess.Piece]*ebiten.Image
	squares [2]*ebiten.Image
	hl      *ebiten.Image

	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int
	message      string
}

// NewGame sizes the board to the screen. m is started once the player picks
// a colour.
func NewGame(m *match.Match, log zerolog.Logger) *Game {
	// Получаем размеры экрана
	w, h := ebiten.ScreenSizeInFullscreen()
	if w == 0 || h == 0 {
		w, h = 1024, 768
	}
	g := &Game{match: m, log: log, screenWidth: w, screenHeight: h}
	g.layoutBoard()
	return g
}

func (g *Game) layoutBoard() {
	// Вычисляем размер клетки (оставляем место для информации сверху)
	boardHeight := g.screenHeight - infoSpace
	g.squareSize = boardHeight / 8
	if g.screenWidth/8 < g.squareSize {
		g.squareSize = g.screenWidth / 8
	}
	// Центрируем доску
	g.boardOffsetX = (g.screenWidth - g.squareSize*8) / 2
	g.boardOffsetY = (g.screenHeight - g.squareSize*8) / 2

	g.squares[0] = ebiten.NewImage(g.squareSize, g.squareSize)
	g.squares[0].Fill(lightSquare)
	g.squares[1] = ebiten.NewImage(g.squareSize, g.squareSize)
	g.squares[1].Fill(darkSquare)
	g.hl = ebiten.NewImage(g.squareSize, g.squareSize)
	g.hl.Fill(lastMoveHL)
	g.pieces = pieceImages(g.squareSize)
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.screenWidth, g.screenHeight)
	ebiten.SetWindowTitle("chessGo")
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	st := g.match.Status()
	if !st.Started {
		g.updateColorChoice()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.dragging = nil
		if !g.match.TakeBack() {
			g.message = "Nothing to take back"
		} else {
			g.message = ""
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		name, err := g.match.CycleBot()
		if err != nil {
			g.log.Error().Err(err).Msg("switch bot")
			g.message = err.Error()
		} else {
			g.message = "Opponent: " + name
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.dragging = nil
		if err := g.match.Start(st.Human); err != nil {
			g.log.Error().Err(err).Msg("new game")
		}
		g.message = "New game"
		return nil
	}

	// Обработка хода игрока
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if sq, ok := g.squareAt(x, y, st.Human); ok && g.match.CanPickUp(sq) {
			piece := g.match.Snapshot().Pieces[sq]
			g.selected = sq
			g.dragging = &piece
			g.dragX, g.dragY = x, y
		}
	}
	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		x, y := ebiten.CursorPosition()
		if target, ok := g.squareAt(x, y, st.Human); ok {
			if g.match.Drop(g.selected, target) == match.Accepted {
				g.message = ""
			}
		}
		g.selected = chess.NoSquare
		g.dragging = nil
	}
	return nil
}

func (g *Game) updateColorChoice() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	btnY := g.screenHeight/2 + 100
	if y <= btnY || y >= btnY+btnHeight {
		return
	}
	var human chess.Color
	switch {
	case x > g.screenWidth/2-btnWidth-20 && x < g.screenWidth/2-20:
		human = chess.White
	case x > g.screenWidth/2+20 && x < g.screenWidth/2+20+btnWidth:
		human = chess.Black
	default:
		return
	}
	if err := g.match.Start(human); err != nil {
		g.log.Error().Err(err).Msg("start")
		g.message = err.Error()
	}
}

// squareAt maps a screen point to a square. The human's pieces are always
// at the bottom.
func (g *Game) squareAt(x, y int, human chess.Color) (chess.Square, bool) {
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	if x < 0 || x >= g.squareSize*8 || y < 0 || y >= g.squareSize*8 {
		return chess.NoSquare, false
	}
	file, row := x/g.squareSize, y/g.squareSize
	if human == chess.Black {
		return chess.NewSquare(chess.File(7-file), chess.Rank(row)), true
	}
	return chess.NewSquare(chess.File(file), chess.Rank(7-row)), true
}

// squareOrigin is the inverse of squareAt.
func (g *Game) squareOrigin(sq chess.Square, human chess.Color) (float64, float64) {
	file, row := int(sq.File()), 7-int(sq.Rank())
	if human == chess.Black {
		file, row = 7-file, int(sq.Rank())
	}
	return float64(file*g.squareSize + g.boardOffsetX), float64(row*g.squareSize + g.boardOffsetY)
}

func (g *Game) Draw(screen *ebiten.Image) {
	st := g.match.Status()
	if !st.Started {
		g.drawColorChoice(screen)
		return
	}
	snap := g.match.Snapshot()

	// Рисуем доску
	for _, sq := range rules.Squares() {
		x, y := g.squareOrigin(sq, st.Human)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(g.squares[(int(sq.File())+int(sq.Rank())+1)%2], op)
		if snap.HasLast && (sq == snap.LastMove.From || sq == snap.LastMove.To) {
			screen.DrawImage(g.hl, op)
		}
	}

	// Рисуем фигуры
	for _, sq := range rules.Squares() {
		piece := snap.Pieces[sq]
		if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
			continue
		}
		x, y := g.squareOrigin(sq, st.Human)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(g.pieces[piece], op)
	}

	// Рисуем перетаскиваемую фигуру
	if g.dragging != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(
			float64(g.dragX)-float64(g.squareSize)/2,
			float64(g.dragY)-float64(g.squareSize)/2,
		)
		screen.DrawImage(g.pieces[*g.dragging], op)
	}

	// Статус игры
	ebitenutil.DebugPrintAt(screen, st.Text(), 20, 20)
	if st.HasLast {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last: %s  Material: %+d", st.LastMove.Notation, st.Material), g.screenWidth/2-80, 20)
	}
	if st.Opening != "" {
		ebitenutil.DebugPrintAt(screen, st.Opening, 20, g.screenHeight-60)
	}
	ebitenutil.DebugPrintAt(screen, "Bot: "+st.Bot+"  [B] switch  [Esc] take back  [N] new game", 20, g.screenHeight-40)
	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, g.screenWidth-260, 20)
	}
}

func (g *Game) drawColorChoice(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "chessGo", g.screenWidth/2-20, g.screenHeight/2-50)
	ebitenutil.DebugPrintAt(screen, "Choose your colour:", g.screenWidth/2-60, g.screenHeight/2)

	// Кнопка "Белые"
	whiteBtn := ebiten.NewImage(btnWidth, btnHeight)
	whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
	ebitenutil.DebugPrintAt(whiteBtn, "Play white", 65, 22)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.screenWidth/2-btnWidth-20), float64(g.screenHeight/2+100))
	screen.DrawImage(whiteBtn, op)

	// Кнопка "Черные"
	blackBtn := ebiten.NewImage(btnWidth, btnHeight)
	blackBtn.Fill(color.RGBA{50, 50, 50, 255})
	ebitenutil.DebugPrintAt(blackBtn, "Play black", 65, 22)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.screenWidth/2+20), float64(g.screenHeight/2+100))
	screen.DrawImage(blackBtn, op)

	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, g.screenWidth/2-100, g.screenHeight/2+200)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.screenWidth || outsideHeight != g.screenHeight) {
		g.screenWidth, g.screenHeight = outsideWidth, outsideHeight
		g.layoutBoard()
	}
	return g.screenWidth, g.screenHeight
}

// pieceImages draws a disc per piece with its letter on top; there are no
// image assets to load.
func pieceImages(size int) map[chess.Piece]*ebiten.Image {
	all := []chess.Piece{
		chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
		chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
	}
	out := make(map[chess.Piece]*ebiten.Image, len(all))
	for _, p := range all {
		img := ebiten.NewImage(size, size)
		fill, edge := color.Color(color.White), color.Color(color.Black)
		if p.Color() == chess.Black {
			fill, edge = color.RGBA{30, 30, 30, 255}, color.White
		}
		c := float32(size) / 2
		r := c * 0.7
		if p.Type() == chess.Pawn {
			r = c * 0.5
		}
		vector.DrawFilledCircle(img, c, c, r, fill, true)
		vector.StrokeCircle(img, c, c, r, 2, edge, true)

		// DebugPrint всегда белым; для белых фигур подложка тёмная
		letter := ebiten.NewImage(12, 18)
		letter.Fill(color.RGBA{30, 30, 30, 255})
		ebitenutil.DebugPrintAt(letter, strings.ToUpper(p.Type().String()), 3, 0)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(float64(c)-12, float64(c)-18)
		img.DrawImage(letter, op)
		out[p] = img
	}
	return out
}
