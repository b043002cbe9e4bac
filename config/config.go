// Package config loads game settings from a TOML file with environment overrides
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/engine"
)

// ErrInvalidConfig wraps every validation and decode failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides, applied after the file
const (
	EnvAudioEnabled = "DIVIDE_CONQUER_AUDIO_ENABLED"
	EnvAudioVolume  = "DIVIDE_CONQUER_AUDIO_VOLUME" // 0-100
	EnvPlayer       = "DIVIDE_CONQUER_PLAYER"
	EnvScoresPath   = "DIVIDE_CONQUER_SCORES"
)

// Duration is a time.Duration written as a Go duration string in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root of the settings file
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Game   GameConfig   `toml:"game"`
	UI     UIConfig     `toml:"ui"`
	Audio  AudioConfig  `toml:"audio"`
	Scores ScoresConfig `toml:"scores"`

	// Keys rebinds keys to action names, e.g. x = "line_vertical"
	Keys map[string]string `toml:"keys,omitempty"`
}

// EngineConfig holds ball engine physics
type EngineConfig struct {
	BallSpeed    float64 `toml:"ball_speed"`
	BallRadius   float64 `toml:"ball_radius"`
	LineSpeed    float64 `toml:"line_speed"`
	BallContacts bool    `toml:"ball_contacts"`
	Seed         uint64  `toml:"seed"` // 0 = seed from the clock
}

// GameConfig holds level rules
type GameConfig struct {
	StartBalls        int      `toml:"start_balls"`
	LevelUpThreshold  float64  `toml:"level_up_threshold"`
	ReadyCountdown    Duration `toml:"ready_countdown"`
	LevelCompleteHold Duration `toml:"level_complete_hold"`
	ParTimePerBall    Duration `toml:"par_time_per_ball"`
}

// UIConfig holds terminal presentation settings
type UIConfig struct {
	FrameInterval Duration `toml:"frame_interval"`
	ShowMetrics   bool     `toml:"show_metrics"`
	Mouse         bool     `toml:"mouse"`
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

// ScoresConfig holds leaderboard settings
type ScoresConfig struct {
	Path   string `toml:"path"` // badger directory; empty keeps scores in memory
	Player string `toml:"player"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			BallSpeed:    constants.BallSpeed,
			BallRadius:   constants.BallRadius,
			LineSpeed:    constants.LineSpeed,
			BallContacts: constants.BallContacts,
		},
		Game: GameConfig{
			StartBalls:        constants.StartBalls,
			LevelUpThreshold:  constants.LevelUpThreshold,
			ReadyCountdown:    Duration{constants.ReadyCountdown},
			LevelCompleteHold: Duration{constants.LevelCompleteHold},
			ParTimePerBall:    Duration{constants.ParTimePerBall},
		},
		UI: UIConfig{
			FrameInterval: Duration{constants.FrameUpdateInterval},
			Mouse:         true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  constants.DefaultVolume,
		},
		Scores: ScoresConfig{
			Path:   "scores",
			Player: defaultPlayer(),
		},
	}
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// Load reads path over the defaults, applies environment overrides and validates
// A missing file is not an error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
			}
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables; malformed values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	if v := os.Getenv(EnvAudioVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100, 0), 1)
		}
	}
	if v := os.Getenv(EnvPlayer); v != "" {
		c.Scores.Player = v
	}
	if v, ok := os.LookupEnv(EnvScoresPath); ok {
		c.Scores.Path = v
	}
}

// Validate checks ranges; the first violation is returned wrapped in ErrInvalidConfig
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Engine.BallSpeed > 0, "engine.ball_speed must be positive"},
		{c.Engine.BallRadius > 0, "engine.ball_radius must be positive"},
		{c.Engine.LineSpeed > 0, "engine.line_speed must be positive"},
		{c.Game.StartBalls >= 1, "game.start_balls must be at least 1"},
		{c.Game.LevelUpThreshold > 0 && c.Game.LevelUpThreshold < 1, "game.level_up_threshold must be in (0, 1)"},
		{c.Game.ReadyCountdown.Duration >= 0, "game.ready_countdown must not be negative"},
		{c.Game.LevelCompleteHold.Duration >= 0, "game.level_complete_hold must not be negative"},
		{c.Game.ParTimePerBall.Duration >= 0, "game.par_time_per_ball must not be negative"},
		{c.UI.FrameInterval.Duration >= time.Millisecond, "ui.frame_interval must be at least 1ms"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1]"},
		{strings.TrimSpace(c.Scores.Player) != "", "scores.player must not be empty"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}
	return nil
}

// Write encodes the config as TOML
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// EngineOptions converts engine settings, seeding from now when no seed is set
func (c *Config) EngineOptions(now time.Time) engine.Options {
	seed := c.Engine.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	return engine.Options{
		BallSpeed:    c.Engine.BallSpeed,
		BallRadius:   c.Engine.BallRadius,
		LineSpeed:    c.Engine.LineSpeed,
		BallContacts: c.Engine.BallContacts,
		Seed:         seed,
	}
}
