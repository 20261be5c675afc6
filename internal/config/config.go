package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBallCount         = 1000
	DefaultInteractionRadius = 75.0
	DefaultFPS               = 60
	DefaultTheme             = "portfolio"
	DefaultRelayAddr         = ":8080"
	DefaultDatabase          = "data/messages.db"

	MinRadius = 20.0
	MaxRadius = 250.0
	MinBalls  = 100
	MaxBalls  = 5000
	BallStep  = 100
)

type Config struct {
	BallCount         int           `yaml:"ball_count"`
	InteractionRadius float64       `yaml:"interaction_radius"`
	Interactive       bool          `yaml:"interactive"`
	Mode              string        `yaml:"mode"`
	FPS               int           `yaml:"fps"`
	Theme             string        `yaml:"theme"`
	Seed              int64         `yaml:"seed"`
	Portfolio         string        `yaml:"portfolio,omitempty"`
	Contact           ContactConfig `yaml:"contact"`
	Relay             RelayConfig   `yaml:"relay"`
}

type ContactConfig struct {
	// Endpoint is the relay the terminal's message command posts to.
	Endpoint string `yaml:"endpoint"`
}

type RelayConfig struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
}

func DefaultConfig() *Config {
	return &Config{
		BallCount:         DefaultBallCount,
		InteractionRadius: DefaultInteractionRadius,
		Interactive:       true,
		Mode:              "ambient",
		FPS:               DefaultFPS,
		Theme:             DefaultTheme,
		Relay: RelayConfig{
			Addr:     DefaultRelayAddr,
			Database: DefaultDatabase,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOnto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnto reads path over an existing config, such as a preset.
func LoadOnto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values the sliders would never produce.
func (c *Config) Validate() error {
	if c.InteractionRadius < MinRadius || c.InteractionRadius > MaxRadius {
		return fmt.Errorf("%w: %.0f", ErrRadiusBounds, c.InteractionRadius)
	}
	if c.BallCount < MinBalls || c.BallCount > MaxBalls {
		return fmt.Errorf("%w: %d", ErrBallBounds, c.BallCount)
	}
	if c.Mode != "ambient" && c.Mode != "bordered" {
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: %d", ErrFPS, c.FPS)
	}
	return nil
}

// ClampRadius pins r to the slider range.
func ClampRadius(r float64) float64 {
	return math.Max(MinRadius, math.Min(r, MaxRadius))
}

// ClampBalls pins n to the slider range and snaps it to the slider step.
func ClampBalls(n int) int {
	if n < MinBalls {
		return MinBalls
	}
	if n > MaxBalls {
		return MaxBalls
	}
	return (n + BallStep/2) / BallStep * BallStep
}
