package arena

import (
	"context"
	"math"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

func showResults(
	ctx context.Context,
	log zerolog.Logger,
	gameResults <-chan gameResult,
	summary *Summary,
) error {
	var games = 0
	for gameResult := range gameResults {
		games++
		log.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Str("id", gameResult.gameInfo.id).
			Bool("aIsWhite", gameResult.gameInfo.engineAIsWhite).
			Int("plies", len(gameResult.moves)).
			Str("eco", gameResult.eco).
			Str("result", gameResult.result.String()).
			Msgf("Finished game {%v}", gameResult.comment)
		switch {
		case gameResult.result == chess.Draw:
			summary.Draws++
		case gameResult.result == chess.WhiteWon && gameResult.gameInfo.engineAIsWhite,
			gameResult.result == chess.BlackWon && !gameResult.gameInfo.engineAIsWhite:
			summary.Wins++
		default:
			summary.Losses++
		}
		summary.Stat = computeStat(summary.Wins, summary.Losses, summary.Draws)
		log.Info().Msgf("Score: %v - %v - %v  [%.3f] %v",
			summary.Wins, summary.Losses, summary.Draws, summary.Stat.WinningFraction, games)
		log.Info().Msgf("Elo difference: %.1f, LOS: %.1f %%",
			summary.Stat.EloDifference, summary.Stat.LOS*100)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

type GameStatistics struct {
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

//https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	if games == 0 {
		return GameStatistics{WinningFraction: 0.5, LOS: 0.5}
	}
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		WinningFraction: winningFraction,
		EloDifference:   eloDifference,
		LOS:             los,
	}
}
