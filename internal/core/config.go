package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means the game falls back to its configured seed
	}
}

// GameState represents the current state of a game session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Frame     int    // Simulation frame counter
	Paused    bool   // Whether the simulation is paused
	Falling   int    // Pills still subject to gravity
	Locked    int    // Pills fixed on the board
	Snapshots int    // Snapshots held in history
	Status    string // Last status message (restore result, placement error...)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Locked is the number of pills that locked during this tick.
	Locked int
}
