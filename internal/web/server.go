package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/log"
	hanabinet "github.com/peterkuimelis/hanabi/internal/net"
	"github.com/peterkuimelis/hanabi/internal/sim"
)

//go:embed static
var staticFiles embed.FS

// MaxWebRuns caps /api/simulate.
const MaxWebRuns = 20000

// Server is the hanabi web UI server.
type Server struct {
	presets []game.Preset
	logger  zerolog.Logger
	mux     *http.ServeMux
}

// NewServer creates a new web server. An empty presetsFile serves no presets.
func NewServer(presetsFile string, logger zerolog.Logger) (*Server, error) {
	var presets []game.Preset
	if presetsFile != "" {
		var err error
		presets, err = game.ParsePresetFile(presetsFile)
		if err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
	}

	s := &Server{
		presets: presets,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/presets", s.handlePresets)
	s.mux.HandleFunc("GET /api/simulate", s.handleSimulate)

	// Game stream
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := s.presets
	if presets == nil {
		presets = []game.Preset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	runs, err := strconv.Atoi(q.Get("runs"))
	if err != nil || runs < 1 || runs > MaxWebRuns {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("runs must be between 1 and %d", MaxWebRuns))
		return
	}
	seed := int64(1)
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
	}
	cfg, err := s.config(q.Get("preset"), seed)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	rep, err := sim.Run(r.Context(), sim.Options{Runs: runs, Seed: cfg.Seed, Config: cfg})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info().Int("runs", runs).Int64("seed", cfg.Seed).Float64("average", rep.Average()).Msg("simulate")
	writeJSON(w, http.StatusOK, rep.Summary())
}

// watchMessage is the first message a browser sends on /ws. With Addr set the
// game is proxied from a hanabi-cli host instead of being played here.
type watchMessage struct {
	Type   string `json:"type"`
	Preset string `json:"preset"`
	Seed   int64  `json:"seed"`
	Addr   string `json:"addr"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	logger := s.logger.With().Str("session", uuid.NewString()).Logger()

	_, data, err := wsConn.Read(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket read watch message")
		return
	}
	var msg watchMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "watch" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected watch message")
		return
	}
	logger.Info().Str("preset", msg.Preset).Int64("seed", msg.Seed).Str("addr", msg.Addr).Msg("watch")

	if msg.Addr != "" {
		err = s.proxy(ctx, wsConn, msg)
	} else {
		err = s.stream(ctx, wsConn, msg)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("watch ended")
		sendError(ctx, wsConn, err)
		wsConn.Close(websocket.StatusInternalError, "game failed")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// stream plays a game here and sends every event and state to the browser.
func (s *Server) stream(ctx context.Context, wsConn *websocket.Conn, msg watchMessage) error {
	cfg, err := s.config(msg.Preset, msg.Seed)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		sendErr error
	)
	send := func(m hanabinet.ServerMessage) error {
		mu.Lock()
		defer mu.Unlock()
		if sendErr != nil {
			return sendErr
		}
		data, err := json.Marshal(m)
		if err != nil {
			sendErr = err
			return err
		}
		sendErr = wsConn.Write(ctx, websocket.MessageText, data)
		return sendErr
	}
	cfg.Logger = &log.FuncLogger{Fn: func(e log.GameEvent) {
		_ = send(hanabinet.ServerMessage{Type: hanabinet.MsgNotify, Event: hanabinet.EventViewOf(e)})
	}}

	g, err := game.New(cfg)
	if err != nil {
		return err
	}
	if err := send(hanabinet.ServerMessage{Type: hanabinet.MsgState, State: hanabinet.BuildStateView(g)}); err != nil {
		return err
	}
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Step()
		if err := send(hanabinet.ServerMessage{Type: hanabinet.MsgState, State: hanabinet.BuildStateView(g)}); err != nil {
			return err
		}
	}
	res := g.Result()
	return send(hanabinet.ServerMessage{Type: hanabinet.MsgGameOver, Result: &res})
}

// proxy relays a game hosted over TCP to the browser.
func (s *Server) proxy(ctx context.Context, wsConn *websocket.Conn, msg watchMessage) error {
	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", msg.Addr)
	if err != nil {
		return fmt.Errorf("could not connect to game server at %s: %w", msg.Addr, err)
	}
	defer tcpConn.Close()
	stop := context.AfterFunc(ctx, func() { tcpConn.Close() })
	defer stop()

	join := hanabinet.ClientMessage{Type: hanabinet.MsgJoin, Preset: msg.Preset, Seed: msg.Seed}
	if err := json.NewEncoder(tcpConn).Encode(join); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	dec := json.NewDecoder(tcpConn)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read from game server: %w", err)
		}
		if err := wsConn.Write(ctx, websocket.MessageText, raw); err != nil {
			return fmt.Errorf("websocket write: %w", err)
		}
	}
}

func (s *Server) config(preset string, seed int64) (game.Config, error) {
	if preset == "" {
		cfg := game.DefaultConfig()
		cfg.Seed = seed
		return cfg, nil
	}
	p, err := game.FindPreset(s.presets, preset)
	if err != nil {
		return game.Config{}, err
	}
	return p.Config(seed), nil
}

func sendError(ctx context.Context, wsConn *websocket.Conn, err error) {
	data, _ := json.Marshal(hanabinet.ServerMessage{Type: hanabinet.MsgError, Error: err.Error()})
	_ = wsConn.Write(ctx, websocket.MessageText, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
