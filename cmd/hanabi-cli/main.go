package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/hanabi/internal/game"
	hanabinet "github.com/peterkuimelis/hanabi/internal/net"
	"github.com/peterkuimelis/hanabi/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "watch":
		err = runWatch(ctx, os.Args[2:])
	case "simulate":
		err = runSimulate(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  hanabi-cli host [--port P] [--presets FILE] [--pace D]")
	fmt.Println("  hanabi-cli watch [--addr ADDR] [--preset NAME] [--seed N] [-v]")
	fmt.Println("  hanabi-cli simulate [--runs N] [--seed N] [--workers N] [--preset NAME] [--presets FILE] [--histogram]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host      Serve simulated games to watchers over TCP")
	fmt.Println("  watch     Connect to a host and follow one game")
	fmt.Println("  simulate  Run a reproducible batch, optionally from a preset")
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	presetsFile := fs.String("presets", "presets.yaml", "path to presets file")
	pace := fs.Duration("pace", 0, "pause between turns")
	fs.Parse(args)

	presets, err := game.ParsePresetFile(*presetsFile)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	srv := &hanabinet.Server{
		Addr:    ":" + *port,
		Presets: presets,
		Pace:    *pace,
	}
	return srv.Run(ctx)
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	preset := fs.String("preset", "", "preset name (default: standard four-player game)")
	seed := fs.Int64("seed", 1, "shuffle seed")
	verbose := fs.Bool("v", false, "print the table after every turn")
	fs.Parse(args)

	_, err := hanabinet.Watch(ctx, *addr, *preset, *seed, *verbose, os.Stdout)
	return err
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	runs := fs.Int("runs", 10000, "number of games")
	seed := fs.Int64("seed", 1, "seed of the first game")
	workers := fs.Int("workers", 0, "parallel workers (0 = one per CPU)")
	preset := fs.String("preset", "", "preset name")
	presetsFile := fs.String("presets", "presets.yaml", "path to presets file")
	histogram := fs.Bool("histogram", false, "print the score distribution")
	fs.Parse(args)

	cfg := game.DefaultConfig()
	cfg.Seed = *seed
	if *preset != "" {
		p, err := game.PresetByName(*presetsFile, *preset)
		if err != nil {
			return err
		}
		cfg = p.Config(*seed)
	}

	opts := sim.Options{Runs: *runs, Seed: cfg.Seed, Workers: *workers, Config: cfg}
	if *runs < sim.DebugThreshold {
		opts.Debug = os.Stdout
	}
	rep, err := sim.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Println(rep.Table())
	if *histogram {
		fmt.Println(rep.HistogramTable())
	}
	fmt.Println(rep.SummaryLine())
	return nil
}
