package core

// RuntimeConfig contains per-run settings chosen by the platform layer.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in cells
	ScreenH  int   // Terminal height in cells
	TickRate int   // Frames per second requested from the frame pump
	Seed     int64 // RNG seed for deterministic terrain
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse run status the platform polls each frame.
type GameState struct {
	Score    int  // Current stash
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the simulation is paused
}
