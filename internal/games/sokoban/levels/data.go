// Package levels provides level data, the built-in level packs and loading
// of user packs from disk.
// This package depends on core but the engine only sees Data.
package levels

import (
	"unicode/utf8"

	"github.com/vovakirdan/sokoban/internal/core"
)

// Map symbols.
const (
	SymbolWall           = '#'
	SymbolPlayer         = '@'
	SymbolPlayerOnTarget = '+'
	SymbolBox            = '$'
	SymbolBoxOnTarget    = '*'
	SymbolTarget         = '.'
	SymbolFloor          = ' '
)

// Data is a parsed level: grid size and the positions of every object.
type Data struct {
	Width   int
	Height  int
	Player  core.Point
	Boxes   []core.Point
	Targets []core.Point
	Walls   []core.Point
}

// ParseMap scans map rows into level data.
// Unknown characters are floor. When several players are present the last
// one wins; no other validation is performed.
func ParseMap(lines []string) Data {
	d := Data{Height: len(lines)}

	for y, line := range lines {
		d.Width = max(d.Width, utf8.RuneCountInString(line))

		x := 0
		for _, r := range line {
			p := core.Pt(x, y)
			switch r {
			case SymbolWall:
				d.Walls = append(d.Walls, p)
			case SymbolPlayer:
				d.Player = p
			case SymbolPlayerOnTarget:
				d.Player = p
				d.Targets = append(d.Targets, p)
			case SymbolBox:
				d.Boxes = append(d.Boxes, p)
			case SymbolBoxOnTarget:
				d.Boxes = append(d.Boxes, p)
				d.Targets = append(d.Targets, p)
			case SymbolTarget:
				d.Targets = append(d.Targets, p)
			}
			x++
		}
	}

	return d
}

// Clone returns a deep copy of the level data.
func (d Data) Clone() Data {
	return Data{
		Width:   d.Width,
		Height:  d.Height,
		Player:  d.Player,
		Boxes:   clonePoints(d.Boxes),
		Targets: clonePoints(d.Targets),
		Walls:   clonePoints(d.Walls),
	}
}

func clonePoints(src []core.Point) []core.Point {
	if src == nil {
		return nil
	}
	return append(make([]core.Point, 0, len(src)), src...)
}
