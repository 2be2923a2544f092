// Package config holds the window, physics and input settings of the game.
package config

// Config is the top-level game configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
}

// WindowConfig sizes the logical playfield and the OS window limits.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
}

// PhysicsConfig tunes the Chipmunk space.
type PhysicsConfig struct {
	GravityY   float64 `yaml:"gravity_y"`
	TPS        int     `yaml:"tps"`
	Iterations int     `yaml:"iterations"`
}

// InputConfig enables the input sources.
type InputConfig struct {
	Keyboard bool `yaml:"keyboard"`
	Touch    bool `yaml:"touch"`
}
