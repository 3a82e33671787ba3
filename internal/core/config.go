package core

// RuntimeConfig contains configuration passed to the puzzle session at
// initialization. It adapts the engine to the terminal and seeds the
// deterministic tessellation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // UI ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic tessellation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}
