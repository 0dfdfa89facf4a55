package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/hanabi/internal/log"
)

const (
	DefaultPlayers  = 4
	DefaultHandSize = 4
)

// Config holds configuration for creating a new game.
type Config struct {
	Players   int
	HandSize  int
	MaxTurns  int    // stop after this many turns (0 = MaxTurns)
	Seed      int64  // shuffle seed
	NoShuffle bool   // skip the shuffle (for deterministic tests)
	Pile      []Card // explicit pile, drawn from the end; overrides the deck and shuffle
	Bottom    []Card // identities forced to be drawn last, first listed drawn last
	Strategy  Strategy
	Seats     []Strategy // per-seat strategy overrides, indexed by seat
	Logger    log.EventLogger
}

// DefaultConfig returns the standard four-player game.
func DefaultConfig() Config {
	return Config{
		Players:  DefaultPlayers,
		HandSize: DefaultHandSize,
		MaxTurns: MaxTurns,
		Strategy: DefaultStrategy(),
	}
}

func (c Config) withDefaults() Config {
	if c.Players == 0 {
		c.Players = DefaultPlayers
	}
	if c.HandSize == 0 {
		c.HandSize = DefaultHandSize
	}
	if c.MaxTurns == 0 {
		c.MaxTurns = MaxTurns
	}
	if c.Strategy == (Strategy{}) {
		c.Strategy = DefaultStrategy()
	}
	return c
}

// Validate reports configuration errors. These are user input problems, not
// contract violations.
func (c Config) Validate() error {
	if c.Players < 2 || c.Players > 5 {
		return fmt.Errorf("players must be 2-5, got %d", c.Players)
	}
	if c.HandSize < 1 || c.HandSize > 5 {
		return fmt.Errorf("hand size must be 1-5, got %d", c.HandSize)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	if len(c.Seats) > c.Players {
		return fmt.Errorf("%d seat strategies for %d players", len(c.Seats), c.Players)
	}
	comp := Composition()
	if c.Pile != nil {
		comp = [NumIdentities]int{}
		for _, card := range c.Pile {
			comp[card.Index()]++
		}
	}
	for _, card := range c.Bottom {
		if comp[card.Index()] == 0 {
			return fmt.Errorf("bottom card %s is not in the pile", card)
		}
		comp[card.Index()]--
	}
	return nil
}

// seatStrategy returns the strategy for seat i.
func (c Config) seatStrategy(i int) Strategy {
	if i < len(c.Seats) && c.Seats[i] != (Strategy{}) {
		return c.Seats[i]
	}
	return c.Strategy
}

// PresetFile represents the top-level YAML structure.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Preset is a named game setup in the YAML preset file.
type Preset struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Players     int        `yaml:"players,omitempty" json:"players,omitempty"`
	HandSize    int        `yaml:"hand_size,omitempty" json:"hand_size,omitempty"`
	MaxTurns    int        `yaml:"max_turns,omitempty" json:"max_turns,omitempty"`
	Seed        *int64     `yaml:"seed,omitempty" json:"seed,omitempty"`
	NoShuffle   bool       `yaml:"no_shuffle,omitempty" json:"no_shuffle,omitempty"`
	Strategy    *Strategy  `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Seats       []Strategy `yaml:"seats,omitempty" json:"seats,omitempty"`
	Bottom      []Card     `yaml:"bottom,omitempty" json:"bottom,omitempty"`
}

// Config turns the preset into a game config. seed is used unless the preset
// pins its own.
func (p Preset) Config(seed int64) Config {
	cfg := DefaultConfig()
	if p.Players != 0 {
		cfg.Players = p.Players
	}
	if p.HandSize != 0 {
		cfg.HandSize = p.HandSize
	}
	if p.MaxTurns != 0 {
		cfg.MaxTurns = p.MaxTurns
	}
	cfg.Seed = seed
	if p.Seed != nil {
		cfg.Seed = *p.Seed
	}
	cfg.NoShuffle = p.NoShuffle
	if p.Strategy != nil {
		cfg.Strategy = *p.Strategy
	}
	cfg.Seats = append([]Strategy(nil), p.Seats...)
	cfg.Bottom = append([]Card(nil), p.Bottom...)
	return cfg
}

// ParsePresets parses YAML preset data.
func ParsePresets(data []byte) ([]Preset, error) {
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse preset YAML: %w", err)
	}
	seen := make(map[string]bool)
	for i, p := range pf.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Config(0).withDefaults().Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return pf.Presets, nil
}

// ParsePresetFile reads and parses a YAML preset file.
func ParsePresetFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePresets(data)
}

// PresetByName returns the named preset from the file at path.
func PresetByName(path, name string) (Preset, error) {
	presets, err := ParsePresetFile(path)
	if err != nil {
		return Preset{}, err
	}
	return FindPreset(presets, name)
}

// FindPreset returns the named preset from presets.
func FindPreset(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found (have %d presets)", name, len(presets))
}
