package sokoban

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
)

// Status messages shown below the board.
const (
	MsgNoMoreLevels = "No more levels in this pack"
	MsgFirstLevel   = "Already at the first level"
	MsgNothingUndo  = "Nothing to undo"
)

var actionDirections = map[core.Action]Direction{
	core.ActionUp:    Up,
	core.ActionDown:  Down,
	core.ActionLeft:  Left,
	core.ActionRight: Right,
}

// Game plays the levels of one pack: it owns the engine of the current
// level and handles restarts, level changes and the win celebration.
type Game struct {
	pack   *levels.Pack
	theme  Theme
	level  levels.Level
	index  int
	engine *Engine
	width  int
	height int

	cfg      core.RuntimeConfig
	rng      *rand.Rand
	tick     uint64
	message  string
	confetti celebration
}

// New creates a game positioned on the first level of pack.
// The pack must contain at least one level.
func New(pack *levels.Pack, theme Theme) *Game {
	g := &Game{
		pack:  pack,
		theme: theme,
		cfg:   core.DefaultConfig(),
		rng:   rand.New(rand.NewSource(0)),
	}
	g.load(0)
	return g
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.pack.ID
}

// Title returns the display name of the pack.
func (g *Game) Title() string {
	return g.pack.Title
}

// Pack returns the pack being played.
func (g *Game) Pack() *levels.Pack {
	return g.pack
}

// Level returns the current level.
func (g *Game) Level() levels.Level {
	return g.level
}

// Engine returns the engine of the current level.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Message returns the current status line, if any.
func (g *Game) Message() string {
	return g.message
}

// Reset applies the runtime config and restarts the current level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.load(g.index)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

// SelectLevel switches to the level with the given ID.
func (g *Game) SelectLevel(id int) error {
	if _, err := g.pack.Level(id); err != nil {
		return err
	}
	g.load(g.pack.Index(id))
	return nil
}

func (g *Game) load(i int) {
	lvl, ok := g.pack.At(i)
	if !ok {
		return
	}
	g.index = i
	g.level = lvl
	d := lvl.Data()
	g.engine = NewEngine(d)
	g.width, g.height = d.Width, d.Height
	g.message = ""
	g.confetti.clear()
}

// Step applies one input frame. At most one action is handled per frame;
// undo, restart and level changes take precedence over moves.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.message = ""
	var res core.StepResult

	switch {
	case in.Has(core.ActionUndo):
		u := g.engine.Undo()
		res.Undone = u.Undone
		if u.Undone {
			g.confetti.clear()
		} else {
			g.message = MsgNothingUndo
		}

	case in.Has(core.ActionRestart):
		g.load(g.index)
		res.Restarted = true

	case in.Has(core.ActionNext):
		if next, ok := g.pack.Next(g.level.ID); ok {
			g.load(g.pack.Index(next.ID))
			res.Switched = true
		} else {
			g.message = MsgNoMoreLevels
		}

	case in.Has(core.ActionPrev):
		if prev, ok := g.pack.Prev(g.level.ID); ok {
			g.load(g.pack.Index(prev.ID))
			res.Switched = true
		} else {
			g.message = MsgFirstLevel
		}

	default:
		// Moves are tried in Up, Down, Left, Right order.
		for a := core.ActionUp; a.IsMove(); a++ {
			if !in.Has(a) {
				continue
			}
			m := g.engine.Move(actionDirections[a])
			res.Moved = m.Moved
			res.Completed = m.Moved && m.Won
			break
		}
	}

	if res.Completed {
		g.confetti.burst(g.rng, g.cfg.ScreenW, g.cfg.ScreenH)
	}

	res.State = g.State()
	return res
}

// Tick advances animations by one frame.
func (g *Game) Tick() {
	g.tick++
	g.confetti.step()
}

// Celebrating reports whether the win animation is still running.
func (g *Game) Celebrating() bool {
	return g.confetti.active()
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	_, ok := g.pack.Next(g.level.ID)
	return ok
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		LevelID:    g.level.ID,
		LevelName:  g.level.Name,
		LevelIndex: g.index,
		LevelCount: g.pack.Count(),
		Moves:      g.engine.Moves(),
		Won:        g.engine.Won(),
	}
}

// WinMessage is the text shown when the current level is solved.
func (g *Game) WinMessage() string {
	return fmt.Sprintf("Level complete in %d moves", g.engine.Moves())
}
