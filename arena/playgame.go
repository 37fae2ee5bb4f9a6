package arena

import (
	"context"
	"fmt"

	"github.com/notnil/chess"

	"chessGo/bots"
	"chessGo/rules"
)

func newBot(name string, opts Options, info gameInfo) (bots.ChessBot, error) {
	var seed int64
	if opts.Seed != 0 {
		seed = opts.Seed + int64(info.gameNumber)
	}
	return bots.New(name, bots.Options{
		Seed:        seed,
		SafeRetreat: opts.SafeRetreat,
		Log:         opts.Log.With().Str("game", info.id).Logger(),
	})
}

func playGame(ctx context.Context, opts Options, info gameInfo) (gameResult, error) {
	engineA, err := newBot(opts.BotA, opts, info)
	if err != nil {
		return gameResult{}, err
	}
	engineB, err := newBot(opts.BotB, opts, info)
	if err != nil {
		return gameResult{}, err
	}
	white, black := engineA, engineB
	if !info.engineAIsWhite {
		white, black = engineB, engineA
	}

	board, err := rules.NewBoard(info.opening)
	if err != nil {
		return gameResult{}, fmt.Errorf("game %d: %w", info.gameNumber, err)
	}
	for !board.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		if board.Plies() >= opts.MaxPlies {
			return adjudicate(board, info, opts.AdjudicateMargin), nil
		}
		side := white
		if board.Turn() == chess.Black {
			side = black
		}
		if _, err := side.Play(board); err != nil {
			return gameResult{}, fmt.Errorf("game %d (%s) %s at %q: %w",
				info.gameNumber, info.id, side.Name(), board.FEN(), err)
		}
	}
	return gameResult{
		gameInfo: info,
		moves:    board.History(),
		comment:  board.Method().String(),
		eco:      ecoCode(board),
		result:   board.Outcome(),
	}, nil
}

func ecoCode(board *rules.Board) string {
	code, _, ok := board.Opening()
	if !ok {
		return ""
	}
	return code
}

func adjudicate(board *rules.Board, info gameInfo, margin int) gameResult {
	score := bots.MaterialEvaluator{}.Evaluate(board)
	res := gameResult{
		gameInfo: info,
		moves:    board.History(),
		comment:  fmt.Sprintf("adjudicated at ply %d, material %+d", board.Plies(), score),
		eco:      ecoCode(board),
		result:   chess.Draw,
	}
	switch {
	case score >= margin:
		res.result = chess.WhiteWon
	case score <= -margin:
		res.result = chess.BlackWon
	}
	return res
}
