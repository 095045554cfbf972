package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Animation ticks per second (default 30)
	Seed     int64 // RNG seed for cosmetic effects, 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID    int    // Identifier of the level being played
	LevelName  string // Display name of the level
	LevelIndex int    // Zero-based position in the pack
	LevelCount int    // Number of levels in the pack
	Moves      int    // Successful moves made on this level
	Won        bool   // All targets covered
}

// StepResult is returned by Game.Step() after each input.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	Moved     bool // A directional action changed the board
	Undone    bool // An undo restored a previous position
	Restarted bool // The level was reset to its initial layout
	Switched  bool // A different level was selected
	Completed bool // This step transitioned the level into the won state
}
