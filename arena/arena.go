// Package arena plays bots against each other and reports the score.
package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Run plays opts.Games games, alternating colours, and returns the score of
// BotA against BotB.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.MaxPlies <= 0 {
		opts.MaxPlies = defaultMaxPlies
	}
	if opts.AdjudicateMargin <= 0 {
		opts.AdjudicateMargin = defaultMargin
	}
	log := opts.Log
	log.Info().
		Int("numCPU", runtime.NumCPU()).
		Int("gameConcurrency", opts.Concurrency).
		Str("botA", opts.BotA).
		Str("botB", opts.BotB).
		Int("games", opts.Games).
		Msg("arena started")
	defer log.Info().Msg("arena finished")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var summary Summary

	g.Go(func() error {
		defer close(gameInfos)
		return scheduleGames(ctx, opts, gameInfos)
	})

	g.Go(func() error {
		return showResults(ctx, log, gameResults, &summary)
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, opts, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	err := g.Wait()
	return summary, err
}

func scheduleGames(ctx context.Context, opts Options, gameInfos chan<- gameInfo) error {
	for i := 0; i < opts.Games; i++ {
		var opening string
		if len(opts.Openings) > 0 {
			// each opening is played once with each colour
			opening = opts.Openings[(i/2)%len(opts.Openings)]
		}
		info := gameInfo{
			id:             uuid.NewString(),
			opening:        opening,
			engineAIsWhite: i%2 == 0,
			gameNumber:     i + 1,
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- info:
		}
	}
	return nil
}

func playGames(
	ctx context.Context,
	opts Options,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, opts, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
