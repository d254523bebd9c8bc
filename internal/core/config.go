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
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the game has ended
	Won      bool   // Whether the game ended with every level cleared
	Paused   bool   // Whether the game is paused
	Level    string // Current level ID, empty for games without levels
	Moves    int    // Accepted moves on the current level
}

// EventType names something that happened during a tick.
type EventType string

// Events reported by games through StepResult.
const (
	EventPourApplied       EventType = "pour_applied"
	EventPourRejected      EventType = "pour_rejected"
	EventAnimationComplete EventType = "animation_complete"
	EventLevelSolved       EventType = "level_solved"
)

// Event is a single game event. Fields not relevant to a type are zero.
type Event struct {
	Type   EventType
	Level  string
	Source int
	Dest   int
	Count  int    // Units moved by an applied pour
	Reason string // Rejection reason
	Moves  int    // Moves used, set on EventLevelSolved
	Ticks  int    // Ticks spent on the level, set on EventLevelSolved
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
