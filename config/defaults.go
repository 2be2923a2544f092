package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Starfall",
			Width:     800,
			Height:    600,
			MinWidth:  320,
			MinHeight: 240,
		},
		Physics: PhysicsConfig{
			GravityY:   300,
			TPS:        60,
			Iterations: 10,
		},
		Input: InputConfig{
			Keyboard: true,
			Touch:    true,
		},
	}
}
