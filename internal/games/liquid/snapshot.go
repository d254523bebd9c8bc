package liquid

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "random"
	Level     string // Current level ID
	Score     int
	Moves     int
	Cursor    int
	Selected  int      // -1 when nothing is selected
	Cylinders []string // Engine layout, bottom to top, e.g. "RRB."
	InFlight  int      // Pours still animating
	Hint      string   // Hinted move, empty when none is shown
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	snap := Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Level:    g.levelID,
		Score:    g.score,
		Cursor:   g.cursor,
		Selected: -1,
		InFlight: len(g.playbacks),
		State:    state,
	}
	if g.hint != nil {
		snap.Hint = g.hint.String()
	}

	if g.machine == nil {
		return snap
	}

	snap.Moves = g.machine.Moves()
	if id, ok := g.machine.Selected(); ok {
		snap.Selected = id
	}
	for _, c := range g.machine.Session().Cylinders() {
		// Strip the brackets of the "[RB..]" form
		s := c.String()
		snap.Cylinders = append(snap.Cylinders, s[1:len(s)-1])
	}
	return snap
}
