package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/sim"
)

const defaultRuns = 10000

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	runs := defaultRuns
	if len(os.Args) > 2 {
		logger.Fatal().Msg("usage: hanabi-sim [runs]")
	}
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			logger.Fatal().Str("arg", os.Args[1]).Msg("run count must be a positive integer")
		}
		runs = n
	}

	seed := time.Now().UnixNano()
	logger.Info().Int("runs", runs).Int64("seed", seed).Msg("simulating")

	opts := sim.Options{
		Runs:   runs,
		Seed:   seed,
		Config: game.DefaultConfig(),
	}
	if runs < sim.DebugThreshold {
		opts.Debug = os.Stdout
	}

	rep, err := sim.Run(logger.WithContext(context.Background()), opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("simulation failed")
	}

	fmt.Println(rep.Table())
	fmt.Println(rep.SummaryLine())
}
