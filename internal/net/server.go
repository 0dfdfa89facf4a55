package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/hanabi/internal/game"
)

// Server hosts one game per watcher connection and streams it as JSON lines.
type Server struct {
	Addr    string        // listen address, e.g. ":9000"
	Presets []game.Preset // presets a watcher may ask for by name
	Pace    time.Duration // pause between turns
}

// Run listens on s.Addr and serves watchers until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts watchers on ln, one game each, until ctx is cancelled. ln is
// closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := zerolog.Ctx(ctx)
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	logger.Info().Str("addr", ln.Addr().String()).Msg("waiting for watchers")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go func() {
			defer conn.Close()
			if err := s.serveConn(ctx, conn); err != nil {
				logger.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("watcher dropped")
			}
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) error {
	logger := zerolog.Ctx(ctx).With().Str("remote", conn.RemoteAddr().String()).Logger()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var join ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	out := NewStreamer(conn)
	if join.Type != MsgJoin {
		_ = out.Send(ServerMessage{Type: MsgError, Error: fmt.Sprintf("expected %q, got %q", MsgJoin, join.Type)})
		return fmt.Errorf("unexpected message %q", join.Type)
	}

	cfg, err := s.config(join)
	if err != nil {
		_ = out.Send(ServerMessage{Type: MsgError, Error: err.Error()})
		return err
	}
	cfg.Logger = out
	g, err := game.New(cfg)
	if err != nil {
		_ = out.Send(ServerMessage{Type: MsgError, Error: err.Error()})
		return err
	}
	logger.Info().Str("preset", join.Preset).Int64("seed", cfg.Seed).Msg("game started")

	if err := out.Send(ServerMessage{Type: MsgState, State: BuildStateView(g)}); err != nil {
		return err
	}
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Step()
		if err := out.Send(ServerMessage{Type: MsgState, State: BuildStateView(g)}); err != nil {
			return err
		}
		if s.Pace > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.Pace):
			}
		}
	}

	res := g.Result()
	logger.Info().Int("score", res.Score).Str("outcome", res.OutcomeName).Msg("game finished")
	return out.Send(ServerMessage{Type: MsgGameOver, Result: &res})
}

// config resolves a join request to a game config.
func (s *Server) config(join ClientMessage) (game.Config, error) {
	if join.Preset == "" {
		cfg := game.DefaultConfig()
		cfg.Seed = join.Seed
		return cfg, nil
	}
	p, err := game.FindPreset(s.Presets, join.Preset)
	if err != nil {
		return game.Config{}, err
	}
	return p.Config(join.Seed), nil
}
