package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Mode is a tunable difficulty preset. Durations are milliseconds so the
// file stays readable.
type Mode struct {
	SpawnIntervalMs      int     `toml:"spawn_interval_ms"`
	MinSpawnIntervalMs   int     `toml:"min_spawn_interval_ms"`
	SpawnDecrementMs     int     `toml:"spawn_decrement_ms"`
	ScoreStep            int     `toml:"score_step"`
	BaseSpeed            float64 `toml:"base_speed"`
	MaxSpeed             float64 `toml:"max_speed"`
	SpeedPerPoint        float64 `toml:"speed_per_point"`
	NegativeBubbleChance float64 `toml:"negative_bubble_chance"`
	MaxBubbles           int     `toml:"max_bubbles"`
	MinSize              float64 `toml:"min_size"`
	MaxSize              float64 `toml:"max_size"`
	SpawnWidthFraction   float64 `toml:"spawn_width_fraction"`
	Wrap                 bool    `toml:"wrap"`
}

func (m Mode) SpawnInterval() time.Duration {
	return time.Duration(m.SpawnIntervalMs) * time.Millisecond
}

func (m Mode) MinSpawnInterval() time.Duration {
	return time.Duration(m.MinSpawnIntervalMs) * time.Millisecond
}

func (m Mode) SpawnDecrement() time.Duration {
	return time.Duration(m.SpawnDecrementMs) * time.Millisecond
}

// Growth drives the time-based population increase shared by all modes.
type Growth struct {
	IntervalMs int     `toml:"interval_ms"`
	Factor     float64 `toml:"factor"`
}

func (g Growth) Interval() time.Duration {
	return time.Duration(g.IntervalMs) * time.Millisecond
}

type Scoring struct {
	ComboTimeoutMs   int     `toml:"combo_timeout_ms"`
	ComboThreshold   int     `toml:"combo_threshold"`
	MaxMultiplier    int     `toml:"max_multiplier"`
	MouseHitArea     float64 `toml:"mouse_hit_area"`
	TouchHitArea     float64 `toml:"touch_hit_area"`
	HapticMs         int     `toml:"haptic_ms"`
	HighScoreKey     string  `toml:"high_score_key"`
	ParticlesPerPop  int     `toml:"particles_per_pop"`
	ParticleDecay    float64 `toml:"particle_decay"`
	ParticleCapacity int     `toml:"particle_capacity"`
}

func (s Scoring) ComboTimeout() time.Duration {
	return time.Duration(s.ComboTimeoutMs) * time.Millisecond
}

func (s Scoring) Haptic() time.Duration {
	return time.Duration(s.HapticMs) * time.Millisecond
}

type PowerUp struct {
	DurationMs int `toml:"duration_ms"`
	CooldownMs int `toml:"cooldown_ms"`
}

func (p PowerUp) Duration() time.Duration {
	return time.Duration(p.DurationMs) * time.Millisecond
}

func (p PowerUp) Cooldown() time.Duration {
	return time.Duration(p.CooldownMs) * time.Millisecond
}

type PowerUps struct {
	Shield       PowerUp `toml:"shield"`
	SlowMotion   PowerUp `toml:"slow_motion"`
	DoublePoints PowerUp `toml:"double_points"`
}

// Window holds host settings; the simulation ignores it.
type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	MaxFPS    int    `toml:"max_fps"`
	StorePath string `toml:"store_path"`
	Sound     bool   `toml:"sound"`
}

// Modes holds one preset per named mode. Tables in the file override
// field by field.
type Modes struct {
	Zen  Mode `toml:"zen"`
	Fast Mode `toml:"fast"`
}

type Config struct {
	DefaultMode string   `toml:"default_mode"`
	Modes       Modes    `toml:"modes"`
	Growth      Growth   `toml:"growth"`
	Scoring     Scoring  `toml:"scoring"`
	PowerUps    PowerUps `toml:"power_ups"`
	Window      Window   `toml:"window"`
}

// Default returns the built-in presets.
func Default() Config {
	return Config{
		DefaultMode: "zen",
		Modes: Modes{
			Zen: Mode{
				SpawnIntervalMs:      700,
				MinSpawnIntervalMs:   400,
				SpawnDecrementMs:     25,
				ScoreStep:            10,
				BaseSpeed:            1.05,
				MaxSpeed:             1.05,
				NegativeBubbleChance: 0.05,
				MaxBubbles:           14,
				MinSize:              20,
				MaxSize:              40,
				SpawnWidthFraction:   0.8,
			},
			Fast: Mode{
				SpawnIntervalMs:      500,
				MinSpawnIntervalMs:   250,
				SpawnDecrementMs:     25,
				ScoreStep:            10,
				BaseSpeed:            2.75,
				MaxSpeed:             3.5,
				SpeedPerPoint:        0.01,
				NegativeBubbleChance: 0.2,
				MaxBubbles:           15,
				MinSize:              20,
				MaxSize:              40,
				SpawnWidthFraction:   0.9,
			},
		},
		Growth: Growth{IntervalMs: 10000, Factor: 1.05},
		Scoring: Scoring{
			ComboTimeoutMs:   2000,
			ComboThreshold:   3,
			MaxMultiplier:    4,
			MouseHitArea:     1.2,
			TouchHitArea:     2.0,
			HapticMs:         50,
			HighScoreKey:     "highScore",
			ParticlesPerPop:  8,
			ParticleDecay:    0.02,
			ParticleCapacity: 512,
		},
		PowerUps: PowerUps{
			Shield:       PowerUp{DurationMs: 5000, CooldownMs: 10000},
			SlowMotion:   PowerUp{DurationMs: 5000, CooldownMs: 15000},
			DoublePoints: PowerUp{DurationMs: 10000, CooldownMs: 20000},
		},
		Window: Window{
			Width:  480,
			Height: 800,
			Title:  "Bubble Pop",
			Sound:  true,
		},
	}
}

// Path returns $BUBBLEPOP_CONFIG, or config.toml under the user config dir.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("BUBBLEPOP_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Dir is the per-user directory for config and saved scores.
func Dir() string {
	root, _ := os.UserConfigDir()
	if root == "" {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "bubblepop")
}

// Load decodes path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// ModeNames lists the configured modes in display order.
func (c Config) ModeNames() []string {
	return []string{"zen", "fast"}
}

// Mode looks up a preset by name.
func (c Config) Mode(name string) (Mode, bool) {
	switch name {
	case "zen":
		return c.Modes.Zen, true
	case "fast":
		return c.Modes.Fast, true
	}
	return Mode{}, false
}

func (c Config) Validate() error {
	if _, ok := c.Mode(c.DefaultMode); !ok {
		return fmt.Errorf("%w: default mode %q not defined", ErrInvalidConfig, c.DefaultMode)
	}
	for _, name := range c.ModeNames() {
		m, _ := c.Mode(name)
		switch {
		case m.MinSize <= 0 || m.MaxSize < m.MinSize:
			return fmt.Errorf("%w: mode %s: size range [%v, %v]", ErrInvalidConfig, name, m.MinSize, m.MaxSize)
		case m.BaseSpeed <= 0 || m.MaxSpeed < m.BaseSpeed:
			return fmt.Errorf("%w: mode %s: speed range [%v, %v]", ErrInvalidConfig, name, m.BaseSpeed, m.MaxSpeed)
		case m.SpawnIntervalMs < 0 || m.MinSpawnIntervalMs < 0 || m.MinSpawnIntervalMs > m.SpawnIntervalMs:
			return fmt.Errorf("%w: mode %s: spawn interval %dms (min %dms)", ErrInvalidConfig, name, m.SpawnIntervalMs, m.MinSpawnIntervalMs)
		case m.MaxBubbles < 0:
			return fmt.Errorf("%w: mode %s: max bubbles %d", ErrInvalidConfig, name, m.MaxBubbles)
		case m.NegativeBubbleChance < 0 || m.NegativeBubbleChance > 1:
			return fmt.Errorf("%w: mode %s: negative chance %v", ErrInvalidConfig, name, m.NegativeBubbleChance)
		case m.SpawnWidthFraction <= 0 || m.SpawnWidthFraction > 1:
			return fmt.Errorf("%w: mode %s: spawn width fraction %v", ErrInvalidConfig, name, m.SpawnWidthFraction)
		}
	}
	if c.Growth.Factor < 1 || c.Growth.IntervalMs <= 0 {
		return fmt.Errorf("%w: growth %+v", ErrInvalidConfig, c.Growth)
	}
	s := c.Scoring
	if s.ComboThreshold <= 0 || s.MaxMultiplier < 1 {
		return fmt.Errorf("%w: combo threshold %d, max multiplier %d", ErrInvalidConfig, s.ComboThreshold, s.MaxMultiplier)
	}
	if s.MouseHitArea <= 0 || s.TouchHitArea <= 0 {
		return fmt.Errorf("%w: hit area multipliers must be positive", ErrInvalidConfig)
	}
	if s.ParticleDecay <= 0 || s.ParticleDecay > 1 {
		return fmt.Errorf("%w: particle decay %v", ErrInvalidConfig, s.ParticleDecay)
	}
	return nil
}
