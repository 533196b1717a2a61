package match3

import (
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateDragging    GameStateType = "dragging"
	StatePaused      GameStateType = "paused"
	StateSolved      GameStateType = "solved"
	StateNoMoves     GameStateType = "no_moves"
	StateGenFailed   GameStateType = "generation_failed"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	GameID   string
	Seed     int64
	Board    []string // Glyph rows, top row first
	Cursor   core.Position
	Moves    int
	Rejected int
	Boards   int
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.genErr != nil:
		state = StateGenFailed
	case g.gameOver:
		state = StateNoMoves
	case g.paused:
		state = StatePaused
	case g.solved:
		state = StateSolved
	case g.session.Dragging():
		state = StateDragging
	}

	return Snapshot{
		Tick:     g.tick,
		GameID:   g.id,
		Seed:     g.seed,
		Board:    strings.Split(g.Grid().String(), "\n"),
		Cursor:   g.cursor,
		Moves:    g.moves,
		Rejected: g.rejected,
		Boards:   g.boards,
		State:    state,
	}
}
