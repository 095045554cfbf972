// Package formats provides pluggable level pack file format parsers.
// Parsers produce a neutral Pack description; the levels package turns it
// into playable data.
package formats

import (
	"fmt"
	"strings"
)

// Pack is a parsed level pack file.
type Pack struct {
	ID     string
	Title  string
	Levels []Level
}

// Level is a single parsed level: an identifier, a display name and the
// raw map rows using the standard Sokoban symbols.
type Level struct {
	ID   int
	Name string
	Map  []string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".xsb", ".sok"}
}

// Parse routes data to the parser registered for ext.
func Parse(data []byte, ext string) (Pack, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xsb", ".sok":
		return ParseXSB(data)
	default:
		return Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// finalize assigns missing level IDs and names and rejects packs that
// cannot be played.
func finalize(p Pack) (Pack, error) {
	if len(p.Levels) == 0 {
		return Pack{}, fmt.Errorf("pack %q has no levels", p.ID)
	}

	seen := make(map[int]bool, len(p.Levels))
	for i := range p.Levels {
		lvl := &p.Levels[i]
		if lvl.ID == 0 {
			lvl.ID = i + 1
		}
		if lvl.ID < 0 {
			return Pack{}, fmt.Errorf("level %d: negative id", lvl.ID)
		}
		if seen[lvl.ID] {
			return Pack{}, fmt.Errorf("duplicate level id %d", lvl.ID)
		}
		seen[lvl.ID] = true

		if len(lvl.Map) == 0 {
			return Pack{}, fmt.Errorf("level %d: empty map", lvl.ID)
		}
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", lvl.ID)
		}
	}
	return p, nil
}
