package config

import (
	"fmt"
	"sort"
)

type Preset struct {
	Description string
	apply       func(*Config)
}

var Presets = map[string]Preset{
	"calm": {
		Description: "few slow dots, small pointer reach",
		apply: func(c *Config) {
			c.BallCount = 400
			c.InteractionRadius = 40
		},
	},
	"dense": {
		Description: "packed cloud with the default reach",
		apply: func(c *Config) {
			c.BallCount = 3000
		},
	},
	"storm": {
		Description: "maximum dots and a wide pointer push",
		apply: func(c *Config) {
			c.BallCount = 5000
			c.InteractionRadius = 250
		},
	},
	"sparse": {
		Description: "the minimum population",
		apply: func(c *Config) {
			c.BallCount = 100
			c.InteractionRadius = 120
		},
	},
	"bordered": {
		Description: "start in the terminal view with dots lining the window",
		apply: func(c *Config) {
			c.BallCount = 1500
			c.Mode = "bordered"
		},
	},
}

// GetPreset returns a fresh config with the named preset applied to the
// defaults.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	p.apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
