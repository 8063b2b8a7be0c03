package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 screen at 30 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the summary a game reports to the platform each tick.
type GameState struct {
	Score    int
	Level    int
	GameOver bool // lives ran out; the run may still be in name entry
	InMenu   bool // the game is on its title screen
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
