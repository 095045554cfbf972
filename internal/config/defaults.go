package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration used when no YAML is available.
func Default() Config {
	return Config{
		Player:    "local",
		Database:  "~/.sokoban/sokoban.db",
		LevelsDir: "~/.sokoban/levels",
		Pack:      "classic",
		TickRate:  30,
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKeyPath: "~/.sokoban/host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: DefaultTheme(),
	}
}

// DefaultTheme returns the built-in board theme.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Wall:           TileStyle{Glyph: "██", Color: "gray"},
		Floor:          TileStyle{Glyph: "  ", Color: "default"},
		Target:         TileStyle{Glyph: "··", Color: "red"},
		Box:            TileStyle{Glyph: "[]", Color: "yellow"},
		BoxOnTarget:    TileStyle{Glyph: "[]", Color: "bright_green"},
		Player:         TileStyle{Glyph: "@@", Color: "bright_cyan"},
		PlayerOnTarget: TileStyle{Glyph: "@@", Color: "bright_magenta"},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
