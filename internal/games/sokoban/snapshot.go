package sokoban

import "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
	StateError        GameStateType = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "campaign" or "single"
	Level   int    // Current level, 1-indexed
	LevelID string
	Moves   int
	Pushes  int
	Score   int // Levels solved this run
	Rows    []string
	Player  core.Coord
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.loadErr != nil:
		state = StateError
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		LevelID: g.level.ID,
		Score:   g.cleared,
		State:   state,
	}
	if g.scene != nil {
		snap.Moves = g.scene.Moves()
		snap.Pushes = g.scene.Pushes()
		snap.Rows = g.scene.Rows()
		snap.Player = g.scene.Player()
	}
	return snap
}
