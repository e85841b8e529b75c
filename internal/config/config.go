// Package config provides the game's tunable settings.
// Defaults are built in, a JSON file may override any of them, and
// environment variables (optionally from a .env file) override the file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidThreshold is returned when signal thresholds cannot classify input
var ErrInvalidThreshold = errors.New("invalid signal threshold")

// Config holds every setting the game reads at start-up
type Config struct {
	DataDir     string `json:"data_dir"`     // Directory holding mapN/ folders
	SavePath    string `json:"save_path"`    // Save file or database path
	SaveBackend string `json:"save_backend"` // "json" or "sqlite"
	LogLevel    string `json:"log_level"`
	LogPretty   bool   `json:"log_pretty"` // Human readable console output

	Signal  SignalConfig  `json:"signal"`
	Travel  TravelConfig  `json:"travel"`
	Endless EndlessConfig `json:"endless"`

	Lives        int   `json:"lives"`
	HopCount     int   `json:"hop_count"`      // Roads each messenger travels
	LevelsPerMap int   `json:"levels_per_map"` // Levels sharing one map's graph and words
	Seed         int64 `json:"seed"`           // 0 picks a time-based seed

	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
}

// SignalConfig defines how long a key press must be held
type SignalConfig struct {
	DotLongerThan  float64 `json:"dot_longer_than"`  // Seconds
	DashLongerThan float64 `json:"dash_longer_than"` // Seconds
}

// TravelConfig defines messenger travel time per difficulty
type TravelConfig struct {
	BaseSeconds     float64 `json:"base_seconds"`
	WordStepSeconds float64 `json:"word_step_seconds"` // Added per word tier
	TypeStepSeconds float64 `json:"type_step_seconds"` // Removed per messenger tier
	MinSeconds      float64 `json:"min_seconds"`
}

// EndlessConfig bounds endless runs
type EndlessConfig struct {
	MaxCycles int `json:"max_cycles"`
}

// Default returns the shipped settings
func Default() *Config {
	return &Config{
		DataDir:     "data",
		SavePath:    "save.json",
		SaveBackend: "json",
		LogLevel:    "info",
		LogPretty:   true,
		Signal: SignalConfig{
			DotLongerThan:  0,
			DashLongerThan: 0.3,
		},
		Travel: TravelConfig{
			BaseSeconds:     30,
			WordStepSeconds: 6,
			TypeStepSeconds: 5,
			MinSeconds:      8,
		},
		Endless: EndlessConfig{
			MaxCycles: 10000,
		},
		Lives:        3,
		HopCount:     1,
		LevelsPerMap: 10,
		ScreenWidth:  1280,
		ScreenHeight: 720,
	}
}

// Load overlays the JSON file at path on the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads an optional .env file, then overrides settings from
// MVH_* environment variables
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("MVH_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MVH_SAVE_PATH"); v != "" {
		c.SavePath = v
	}
	if v := os.Getenv("MVH_SAVE_BACKEND"); v != "" {
		c.SaveBackend = v
	}
	if v := os.Getenv("MVH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MVH_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MVH_LOG_PRETTY: %w", err)
		}
		c.LogPretty = b
	}
	if v := os.Getenv("MVH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MVH_SEED: %w", err)
		}
		c.Seed = n
	}
	return nil
}

// Validate checks settings the game cannot run with
func (c *Config) Validate() error {
	s := c.Signal
	if s.DotLongerThan < 0 || s.DashLongerThan < 0 {
		return fmt.Errorf("%w: thresholds must not be negative", ErrInvalidThreshold)
	}
	if s.DashLongerThan < s.DotLongerThan {
		return fmt.Errorf("%w: dash threshold %v is below dot threshold %v", ErrInvalidThreshold, s.DashLongerThan, s.DotLongerThan)
	}
	if c.Lives < 1 {
		return fmt.Errorf("lives must be at least 1, got %d", c.Lives)
	}
	if c.HopCount < 1 {
		return fmt.Errorf("hop count must be at least 1, got %d", c.HopCount)
	}
	if c.LevelsPerMap < 1 {
		return fmt.Errorf("levels per map must be at least 1, got %d", c.LevelsPerMap)
	}
	if c.Travel.MinSeconds <= 0 {
		return fmt.Errorf("minimum travel time must be positive, got %v", c.Travel.MinSeconds)
	}
	switch c.SaveBackend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown save backend: %s", c.SaveBackend)
	}
	return nil
}

// MapIndex returns the map a level's graph and words come from
func (c *Config) MapIndex(levelIdx int) int {
	return levelIdx / c.LevelsPerMap
}
