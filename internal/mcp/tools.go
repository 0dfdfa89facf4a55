package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/hanabi/internal/game"
	"github.com/peterkuimelis/hanabi/internal/log"
	"github.com/peterkuimelis/hanabi/internal/sim"
)

// maxRuns caps a single simulate call.
const maxRuns = 100000

var (
	// presetsFile is the path to the presets YAML file, set by main.
	presetsFile string

	// activeSession is the game stepped by new_game/step (one per stdio process).
	activeSession *GameSession
	sessionMu     sync.Mutex
)

// SetPresetsFile sets the path to the presets YAML file.
func SetPresetsFile(path string) {
	presetsFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(listPresetsTool(), handleListPresets)
	s.AddTool(simulateTool(), handleSimulate)
	s.AddTool(playGameTool(), handlePlayGame)
	s.AddTool(newGameTool(), handleNewGame)
	s.AddTool(stepTool(), handleStep)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func listPresetsTool() mcp.Tool {
	return mcp.NewTool("list_presets",
		mcp.WithDescription("List the named game setups from the presets file (players, hand size, strategy, forced bottom cards)."),
	)
}

func simulateTool() mcp.Tool {
	return mcp.NewTool("simulate",
		mcp.WithDescription("Play a batch of independent games with the built-in heuristic and return the score distribution and outcome rates."),
		mcp.WithNumber("runs", mcp.Required(), mcp.Description("Number of games to play (1-100000)")),
		mcp.WithNumber("seed", mcp.Description("Seed of the first game; game i uses seed+i. Default 1")),
		mcp.WithString("preset", mcp.Description("Preset name from list_presets. Default: the standard four-player game")),
	)
}

func playGameTool() mcp.Tool {
	return mcp.NewTool("play_game",
		mcp.WithDescription("Play one whole game and return its result with the full event log."),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed. Default 1")),
		mcp.WithString("preset", mcp.Description("Preset name from list_presets")),
	)
}

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Deal a new game to step through turn by turn. Replaces any game in progress."),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed. Default 1")),
		mcp.WithString("preset", mcp.Description("Preset name from list_presets")),
	)
}

func stepTool() mcp.Tool {
	return mcp.NewTool("step",
		mcp.WithDescription("Advance the current game. Returns the events since the last call, the table, and what the next player will do."),
		mcp.WithNumber("turns", mcp.Description("Number of turns to advance. Default 1")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current table and any events not yet returned, without advancing. Read-only."),
	)
}

// --- Tool handlers ---

func handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := loadPresets()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load presets: %v", err), nil
	}
	if presets == nil {
		presets = []game.Preset{}
	}
	return mcp.NewToolResultText(respondJSON(presets)), nil
}

func handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs := request.GetInt("runs", 0)
	if runs < 1 || runs > maxRuns {
		return mcp.NewToolResultErrorf("runs must be between 1 and %d", maxRuns), nil
	}
	cfg, err := resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rep, err := sim.Run(ctx, sim.Options{
		Runs:   runs,
		Seed:   cfg.Seed,
		Config: cfg,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Simulation failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(rep.Summary())), nil
}

func handlePlayGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	if _, err := sess.game.Run(ctx); err != nil {
		return mcp.NewToolResultErrorf("Game interrupted: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	sessionMu.Lock()
	activeSession = sess
	sessionMu.Unlock()

	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	turns := request.GetInt("turns", 1)
	if turns < 1 {
		return mcp.NewToolResultError("turns must be >= 1"), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.step(turns))), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

// --- Helpers ---

func currentSession() *GameSession {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return activeSession
}

func loadPresets() ([]game.Preset, error) {
	if presetsFile == "" {
		return nil, nil
	}
	return game.ParsePresetFile(presetsFile)
}

// resolveConfig builds a game config from the optional seed and preset
// arguments. Tool games never write to stdout, which carries the protocol.
func resolveConfig(request mcp.CallToolRequest) (game.Config, error) {
	seed := int64(request.GetInt("seed", 1))
	name := request.GetString("preset", "")

	cfg := game.DefaultConfig()
	cfg.Seed = seed
	if name != "" {
		presets, err := loadPresets()
		if err != nil {
			return game.Config{}, fmt.Errorf("load presets: %w", err)
		}
		p, err := game.FindPreset(presets, name)
		if err != nil {
			return game.Config{}, err
		}
		cfg = p.Config(seed)
	}
	cfg.Logger = log.NopLogger{}
	return cfg, nil
}
