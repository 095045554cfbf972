// Package sokoban implements the Sokoban rules engine and the game adapter
// that drives it from the platform.
package sokoban

import (
	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
)

// Position is a grid cell.
type Position = core.Point

// Direction names one of the four moves.
type Direction string

// Directions accepted by Move.
const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

var deltas = map[Direction]Position{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Delta returns the unit step for d.
func (d Direction) Delta() (Position, bool) {
	p, ok := deltas[d]
	return p, ok
}

// GameState is a read-only copy of the board.
type GameState struct {
	Player  Position
	Boxes   []Position
	Targets []Position
	Walls   []Position
	Moves   int
	Won     bool
}

// MoveResult reports the outcome of a Move.
type MoveResult struct {
	Moved bool
	Moves int
	Won   bool
}

// UndoResult reports the outcome of an Undo.
type UndoResult struct {
	Undone bool
	Moves  int
}

// Engine holds the state of one level being played. It is not safe for
// concurrent use; each session owns its own engine.
type Engine struct {
	player  Position
	boxes   []Position
	targets []Position
	walls   []Position
	wallSet map[Position]struct{}

	moves   int
	won     bool
	history *history
}

// NewEngine builds an engine from parsed level data. The data is copied, so
// the caller may reuse it to start the level again.
func NewEngine(data levels.Data) *Engine {
	d := data.Clone()

	e := &Engine{
		player:  d.Player,
		boxes:   d.Boxes,
		targets: d.Targets,
		walls:   d.Walls,
		wallSet: make(map[Position]struct{}, len(d.Walls)),
		history: newHistory(HistoryLimit),
	}
	for _, w := range d.Walls {
		e.wallSet[w] = struct{}{}
	}
	return e
}

// State returns a copy of the current board.
func (e *Engine) State() GameState {
	return GameState{
		Player:  e.player,
		Boxes:   clonePositions(e.boxes),
		Targets: clonePositions(e.targets),
		Walls:   clonePositions(e.walls),
		Moves:   e.moves,
		Won:     e.won,
	}
}

// Moves returns the number of successful moves.
func (e *Engine) Moves() int {
	return e.moves
}

// Won reports whether every target is covered.
func (e *Engine) Won() bool {
	return e.won
}

// HistoryLen returns the number of undo steps available.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// Move steps the player one cell in dir, pushing a box if one is in the way.
// Moves are ignored once the level is won, for unknown directions, and when
// the player or a pushed box would run into a wall or another box. Ignored
// moves leave state and history untouched.
func (e *Engine) Move(dir Direction) MoveResult {
	if e.won {
		return e.moveResult(false)
	}

	delta, ok := dir.Delta()
	if !ok {
		return e.moveResult(false)
	}

	next := e.player.Add(delta)
	if e.isWall(next) {
		return e.moveResult(false)
	}

	if i := e.boxAt(next); i >= 0 {
		beyond := next.Add(delta)
		if e.isWall(beyond) || e.boxAt(beyond) >= 0 {
			return e.moveResult(false)
		}
		e.saveState()
		e.boxes[i] = beyond
	} else {
		e.saveState()
	}

	e.player = next
	e.moves++
	e.won = e.checkWin()

	return e.moveResult(true)
}

// Undo restores the state before the most recent successful move.
// The level is always considered unsolved afterwards.
func (e *Engine) Undo() UndoResult {
	s, ok := e.history.Pop()
	if !ok {
		return UndoResult{Undone: false, Moves: e.moves}
	}

	e.player = s.player
	e.boxes = s.boxes
	e.moves = s.moves
	e.won = false

	return UndoResult{Undone: true, Moves: e.moves}
}

func (e *Engine) moveResult(moved bool) MoveResult {
	return MoveResult{Moved: moved, Moves: e.moves, Won: e.won}
}

func (e *Engine) saveState() {
	e.history.Push(snapshot{
		player: e.player,
		boxes:  clonePositions(e.boxes),
		moves:  e.moves,
	})
}

func (e *Engine) isWall(p Position) bool {
	_, ok := e.wallSet[p]
	return ok
}

func (e *Engine) boxAt(p Position) int {
	for i, b := range e.boxes {
		if b == p {
			return i
		}
	}
	return -1
}

func (e *Engine) checkWin() bool {
	for _, t := range e.targets {
		if e.boxAt(t) < 0 {
			return false
		}
	}
	return true
}

func clonePositions(src []Position) []Position {
	if src == nil {
		return nil
	}
	return append(make([]Position, 0, len(src)), src...)
}
