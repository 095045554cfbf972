package sokoban

import (
	"github.com/vovakirdan/sokoban/internal/config"
	"github.com/vovakirdan/sokoban/internal/core"
)

// Tile is how one board cell is drawn: two runes and a color.
type Tile struct {
	Glyph [2]rune
	Color core.Color
}

// Theme maps every tile kind to its look.
type Theme struct {
	Wall           Tile
	Floor          Tile
	Target         Tile
	Box            Tile
	BoxOnTarget    Tile
	Player         Tile
	PlayerOnTarget Tile
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return ThemeFromConfig(config.DefaultTheme())
}

// ThemeFromConfig builds a theme from configuration. Missing or invalid
// entries fall back to the built-in look.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	def := config.DefaultTheme()
	return Theme{
		Wall:           tileFrom(tc.Wall, def.Wall),
		Floor:          tileFrom(tc.Floor, def.Floor),
		Target:         tileFrom(tc.Target, def.Target),
		Box:            tileFrom(tc.Box, def.Box),
		BoxOnTarget:    tileFrom(tc.BoxOnTarget, def.BoxOnTarget),
		Player:         tileFrom(tc.Player, def.Player),
		PlayerOnTarget: tileFrom(tc.PlayerOnTarget, def.PlayerOnTarget),
	}
}

func tileFrom(s, fallback config.TileStyle) Tile {
	glyph := []rune(s.Glyph)
	if len(glyph) == 0 {
		glyph = []rune(fallback.Glyph)
	}
	if len(glyph) == 1 {
		glyph = append(glyph, glyph[0])
	}

	color, ok := core.ParseColor(s.Color)
	if !ok {
		color, _ = core.ParseColor(fallback.Color)
	}

	return Tile{Glyph: [2]rune{glyph[0], glyph[1]}, Color: color}
}
