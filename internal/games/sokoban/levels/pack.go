package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels/formats"
)

// ErrLevelNotFound is returned when a level ID is not part of a pack.
var ErrLevelNotFound = errors.New("level not found")

// Level is a single puzzle of a pack.
type Level struct {
	ID   int
	Name string
	Map  []string
}

// Data parses the level map.
func (l Level) Data() Data {
	return ParseMap(l.Map)
}

// Pack is an ordered, immutable collection of levels.
type Pack struct {
	ID       string
	Title    string
	Levels   []Level
	FilePath string // empty for built-in packs
}

// FromFormat converts a parsed pack file into a Pack.
func FromFormat(fp formats.Pack) *Pack {
	p := &Pack{
		ID:     fp.ID,
		Title:  fp.Title,
		Levels: make([]Level, 0, len(fp.Levels)),
	}
	for _, l := range fp.Levels {
		p.Levels = append(p.Levels, Level{
			ID:   l.ID,
			Name: l.Name,
			Map:  append([]string(nil), l.Map...),
		})
	}
	if p.Title == "" {
		p.Title = p.ID
	}
	return p
}

// Count returns the number of levels in the pack.
func (p *Pack) Count() int {
	return len(p.Levels)
}

// Index returns the position of the level with the given ID, or -1.
func (p *Pack) Index(id int) int {
	for i, l := range p.Levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Level returns the level with the given ID.
func (p *Pack) Level(id int) (Level, error) {
	i := p.Index(id)
	if i < 0 {
		return Level{}, fmt.Errorf("%s: level %d: %w", p.ID, id, ErrLevelNotFound)
	}
	return p.Levels[i], nil
}

// At returns the level at position i.
func (p *Pack) At(i int) (Level, bool) {
	if i < 0 || i >= len(p.Levels) {
		return Level{}, false
	}
	return p.Levels[i], true
}

// Next returns the level following id. The second result is false when id
// is the last level or unknown.
func (p *Pack) Next(id int) (Level, bool) {
	i := p.Index(id)
	if i < 0 {
		return Level{}, false
	}
	return p.At(i + 1)
}

// Prev returns the level preceding id.
func (p *Pack) Prev(id int) (Level, bool) {
	i := p.Index(id)
	if i < 0 {
		return Level{}, false
	}
	return p.At(i - 1)
}

// IDs returns level IDs in pack order.
func (p *Pack) IDs() []int {
	ids := make([]int, len(p.Levels))
	for i, l := range p.Levels {
		ids[i] = l.ID
	}
	return ids
}

// FirstIncomplete returns the first level not present in completed,
// or the first level when every level is done.
func (p *Pack) FirstIncomplete(completed map[int]bool) Level {
	for _, l := range p.Levels {
		if !completed[l.ID] {
			return l
		}
	}
	return p.Levels[0]
}
