package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorDarkGreen
	ColorYellow
	ColorMagenta
	ColorWhite
	ColorGray
)

var colorNames = map[string]Color{
	"default":    ColorDefault,
	"red":        ColorRed,
	"green":      ColorGreen,
	"dark_green": ColorDarkGreen,
	"yellow":     ColorYellow,
	"magenta":    ColorMagenta,
	"white":      ColorWhite,
	"gray":       ColorGray,
}

// ParseColor looks up a color by its config name (e.g. "dark_green").
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}
