// Package config provides YAML-based configuration loading for the sokoban
// platform: storage location, level packs, logging, the SSH server and the
// board theme.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Player    string      `yaml:"player" env:"PLAYER"`
	Database  string      `yaml:"database" env:"DB"`
	LevelsDir string      `yaml:"levels_dir" env:"LEVELS_DIR"`
	Pack      string      `yaml:"pack" env:"PACK"`
	TickRate  int         `yaml:"tick_rate" env:"TICK_RATE"`
	Log       LogConfig   `yaml:"log" envPrefix:"LOG_"`
	SSH       SSHConfig   `yaml:"ssh" envPrefix:"SSH_"`
	Theme     ThemeConfig `yaml:"theme"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // tint, charm, json or empty for the command default
	File   string `yaml:"file" env:"FILE"`
}

// SSHConfig defines the SSH server settings.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"ADDRESS"`
	HostKeyPath string        `yaml:"host_key" env:"HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
}

// ThemeConfig defines how each board tile is drawn. Every tile is two
// terminal columns wide.
type ThemeConfig struct {
	Wall           TileStyle `yaml:"wall"`
	Floor          TileStyle `yaml:"floor"`
	Target         TileStyle `yaml:"target"`
	Box            TileStyle `yaml:"box"`
	BoxOnTarget    TileStyle `yaml:"box_on_target"`
	Player         TileStyle `yaml:"player"`
	PlayerOnTarget TileStyle `yaml:"player_on_target"`
}

// TileStyle is the glyph and color name of one tile kind.
type TileStyle struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Log formats.
const (
	FormatTint  = "tint"
	FormatCharm = "charm"
	FormatJSON  = "json"
)
