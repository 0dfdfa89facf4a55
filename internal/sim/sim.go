package sim

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/log"
)

// DebugThreshold is the batch size below which per-game traces are written.
const DebugThreshold = 10

// Options configures a batch.
type Options struct {
	Runs    int
	Seed    int64 // game i is seeded Seed+i
	Workers int   // 0 = one per CPU
	Config  game.Config

	// Debug receives a text trace of every game when Runs < DebugThreshold.
	// Traced batches run on a single worker so traces are not interleaved.
	Debug io.Writer
}

// Run plays opts.Runs independent games and aggregates them. Progress is
// logged every 10% through the zerolog logger carried by ctx.
func Run(ctx context.Context, opts Options) (Report, error) {
	logger := zerolog.Ctx(ctx)
	if opts.Runs <= 0 {
		return Report{}, fmt.Errorf("runs must be positive, got %d", opts.Runs)
	}

	debug := opts.Debug != nil && opts.Runs < DebugThreshold
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, opts.Runs)
	if debug {
		workers = 1
	}
	step := int64(max(opts.Runs/10, 1))

	logger.Debug().Int("runs", opts.Runs).Int("workers", workers).Int64("seed", opts.Seed).Msg("batch starting")

	var (
		next  atomic.Int64
		done  atomic.Int64
		mu    sync.Mutex
		total Report
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local Report
			defer func() {
				mu.Lock()
				total.Merge(local)
				mu.Unlock()
			}()

			for {
				i := next.Add(1) - 1
				if i >= int64(opts.Runs) {
					return nil
				}

				cfg := opts.Config
				cfg.Seed = opts.Seed + i
				cfg.Logger = log.NopLogger{}
				if debug {
					fmt.Fprintf(opts.Debug, "\nnew_game seed=%d\n", cfg.Seed)
					cfg.Logger = log.NewTextLogger(opts.Debug)
				}

				gm, err := game.New(cfg)
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				res, err := gm.Run(ctx)
				if err != nil {
					return err
				}
				local.Add(res)

				if n := done.Add(1); !debug && n%step == 0 {
					logger.Info().Int64("done", n).Int("runs", opts.Runs).
						Msgf("%d%%", n*100/int64(opts.Runs))
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}
	logger.Debug().Int("runs", total.Runs).Float64("average", total.Average()).Msg("batch finished")
	return total, nil
}
