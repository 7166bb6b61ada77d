package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
// It mirrors defaults/snake.yaml and is used if the embedded file fails to parse.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{},
		Speed: SpeedConfig{
			BaseRate: 10,
			PerLevel: 1,
			MaxRate:  30,
		},
		Theme: ThemeConfig{
			Head:         Sprite{Glyph: "██", Color: "green"},
			Body:         Sprite{Glyph: "██", Color: "dark_green"},
			Food:         Sprite{Glyph: "██", Color: "red"},
			Empty:        Sprite{Glyph: "  ", Color: "default"},
			ScoreColor:   "magenta",
			MessageColor: "white",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
