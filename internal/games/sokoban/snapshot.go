package sokoban

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Pack          string
	Level         int // Level ID
	Moves         int
	History       int // Undo steps available
	PlayerX       int
	PlayerY       int
	Boxes         int
	BoxesOnTarget int
	Particles     int
	State         GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.engine.State()

	state := StatePlaying
	switch {
	case g.tooSmall(g.cfg.ScreenW, g.cfg.ScreenH):
		state = StatePausedSmall
	case s.Won:
		state = StateWon
	}

	targets := positionSet(s.Targets)
	onTarget := 0
	for _, b := range s.Boxes {
		if _, ok := targets[b]; ok {
			onTarget++
		}
	}

	return Snapshot{
		Tick:          g.tick,
		Pack:          g.pack.ID,
		Level:         g.level.ID,
		Moves:         s.Moves,
		History:       g.engine.HistoryLen(),
		PlayerX:       s.Player.X,
		PlayerY:       s.Player.Y,
		Boxes:         len(s.Boxes),
		BoxesOnTarget: onTarget,
		Particles:     len(g.confetti.particles),
		State:         state,
	}
}
