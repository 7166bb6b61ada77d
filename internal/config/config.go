// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all tunable settings for the game.
type SnakeConfig struct {
	Board BoardConfig `yaml:"board"`
	Speed SpeedConfig `yaml:"speed"`
	Theme ThemeConfig `yaml:"theme"`
}

// BoardConfig sets the grid size in cells. Zero fits the terminal.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig controls how fast the snake moves.
// Moves per second = base_rate + level*per_level, capped at max_rate.
type SpeedConfig struct {
	BaseRate int `yaml:"base_rate"`
	PerLevel int `yaml:"per_level"`
	MaxRate  int `yaml:"max_rate"`
}

// Rate returns the moves-per-second for the given level.
func (s SpeedConfig) Rate(level int) int {
	rate := s.BaseRate + level*s.PerLevel
	return core.Clamp(rate, 1, max(s.MaxRate, 1))
}

// Sprite is the two-column glyph and color used to draw one grid cell.
type Sprite struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Runes returns the glyph's two runes.
func (s Sprite) Runes() [2]rune {
	var out [2]rune
	i := 0
	for _, r := range s.Glyph {
		if i == 2 {
			break
		}
		out[i] = r
		i++
	}
	return out
}

// Resolved returns the sprite color, falling back to the default color.
func (s Sprite) Resolved() core.Color {
	c, _ := core.ParseColor(s.Color)
	return c
}

// ThemeConfig holds the sprites and text colors.
type ThemeConfig struct {
	Head         Sprite `yaml:"head"`
	Body         Sprite `yaml:"body"`
	Food         Sprite `yaml:"food"`
	Empty        Sprite `yaml:"empty"`
	ScoreColor   string `yaml:"score_color"`
	MessageColor string `yaml:"message_color"`
}

// MinBoardSide is the smallest configurable board edge.
const MinBoardSide = 4

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the config for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Board.Width < 0 || c.Board.Height < 0 {
		return fmt.Errorf("%w: board size must not be negative", ErrInvalidConfig)
	}
	if c.Board.Width != 0 && c.Board.Width < MinBoardSide {
		return fmt.Errorf("%w: board width %d is below %d", ErrInvalidConfig, c.Board.Width, MinBoardSide)
	}
	if c.Board.Height != 0 && c.Board.Height < MinBoardSide {
		return fmt.Errorf("%w: board height %d is below %d", ErrInvalidConfig, c.Board.Height, MinBoardSide)
	}
	if c.Speed.BaseRate <= 0 {
		return fmt.Errorf("%w: speed.base_rate must be positive", ErrInvalidConfig)
	}
	if c.Speed.PerLevel < 0 {
		return fmt.Errorf("%w: speed.per_level must not be negative", ErrInvalidConfig)
	}
	if c.Speed.MaxRate < c.Speed.BaseRate {
		return fmt.Errorf("%w: speed.max_rate %d is below base_rate %d", ErrInvalidConfig, c.Speed.MaxRate, c.Speed.BaseRate)
	}

	sprites := map[string]Sprite{
		"head":  c.Theme.Head,
		"body":  c.Theme.Body,
		"food":  c.Theme.Food,
		"empty": c.Theme.Empty,
	}
	for name, s := range sprites {
		if n := utf8.RuneCountInString(s.Glyph); n != 2 {
			return fmt.Errorf("%w: theme.%s.glyph must be 2 characters, got %d", ErrInvalidConfig, name, n)
		}
		if _, ok := core.ParseColor(s.Color); !ok {
			return fmt.Errorf("%w: theme.%s.color %q is unknown", ErrInvalidConfig, name, s.Color)
		}
	}
	for name, col := range map[string]string{"score_color": c.Theme.ScoreColor, "message_color": c.Theme.MessageColor} {
		if _, ok := core.ParseColor(col); !ok {
			return fmt.Errorf("%w: theme.%s %q is unknown", ErrInvalidConfig, name, col)
		}
	}
	return nil
}
