package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int
	Level    int
	Length   int
	GameOver bool // Ended by collision or a full board
	Won      bool // Board filled completely
	Paused   bool
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventTurned EventKind = iota
	EventAte
	EventCrashedWall
	EventCrashedSelf
	EventBoardFull
	EventRestarted
)

// String returns the event name used in logs and metric labels.
func (k EventKind) String() string {
	switch k {
	case EventTurned:
		return "turned"
	case EventAte:
		return "ate"
	case EventCrashedWall:
		return "wall"
	case EventCrashedSelf:
		return "self"
	case EventBoardFull:
		return "board_full"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is emitted by the game during Step.
type Event struct {
	Kind EventKind
	At   Point
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred this tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
