// Package match3 provides the drag-to-swap match-3 board for the platform.
package match3

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// hintTicks is how long a hint stays visible at 60 ticks per second.
const hintTicks = 120

// clearTicks is how long a cleared board stays up before the next one.
const clearTicks = 90

// keyStep is the drag distance, in tiles, of one arrow key press while a
// tile is grabbed.
const keyStep = 0.5

var (
	cfgMu      sync.RWMutex
	sharedCfg  = config.DefaultMatch3Config()
	startBoard *core.Grid
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.Match3Config) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	sharedCfg = cfg
}

// SetStartBoard makes games created afterwards play a copy of grid
// instead of a generated board, on start and on every restart. nil
// restores generation.
func SetStartBoard(grid *core.Grid) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if grid != nil {
		grid = grid.Clone()
	}
	startBoard = grid
}

func currentStartBoard() *core.Grid {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if startBoard == nil {
		return nil
	}
	return startBoard.Clone()
}

func currentConfig() config.Match3Config {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return sharedCfg
}

type tileOffset struct {
	offset core.Vec2
	z      int
}

// Game implements the match-3 board on top of core.Session.
type Game struct {
	id     string
	title  string
	preset config.BoardPreset
	cfg    config.Match3Config

	session *core.Session
	seed    int64
	genErr  error

	// Screen dimensions
	screenW int
	screenH int

	// Status
	tick     uint64
	moves       int
	rejected    int
	boards      int // Boards cleared since Reset
	paused      bool
	solved      bool
	solvedTicks int
	gameOver    bool
	tooSmall    bool

	// Keyboard state
	cursor  core.Position
	grabbed bool

	// Pointer state
	pointerDown bool
	lastPointer core.Vec2

	hint      core.Move
	hintTicks int

	offsets map[core.Position]tileOffset

	journal   storage.Journal
	source    string
	sessionID string
	log       *log.Logger
}

// New creates a game using the grid size from the shared config.
func New() *Game {
	return &Game{
		id:    "match3",
		title: "Match-3",
		log:   log.New(io.Discard),
	}
}

// NewPreset creates a game that always uses the preset board size.
func NewPreset(preset config.BoardPreset) *Game {
	cols, rows, _ := config.SizeForPreset(preset)
	return &Game{
		id:     "match3_" + string(preset),
		title:  fmt.Sprintf("Match-3 (%dx%d)", cols, rows),
		preset: preset,
		log:    log.New(io.Discard),
	}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	for _, p := range []config.BoardPreset{config.PresetSmall, config.PresetLarge, config.PresetHuge} {
		registry.Register("match3_"+string(p), func() registry.Game {
			return NewPreset(p)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetJournal makes the game record every board it plays and every
// finished swap attempt. source tags the sessions ("local", "ssh").
func (g *Game) SetJournal(j storage.Journal, source string) {
	g.journal = j
	g.source = source
}

// SessionID returns the journal session of the current board, or "" when
// no journal is attached.
func (g *Game) SessionID() string {
	return g.sessionID
}

// SetLogger routes engine notifications to l at debug level.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.log = l
}

// Config returns the configuration the current board was built with.
func (g *Game) Config() config.Match3Config {
	return g.cfg
}

// Reset generates a fresh board and clears the counters.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = currentConfig()
	if g.preset != "" {
		//nolint:errcheck // presets registered in init are always known
		config.ApplyMatch3Preset(&g.cfg, g.preset)
	}

	g.tick = 0
	g.moves = 0
	g.rejected = 0
	g.boards = 0
	g.paused = false
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.newBoard(cfg.Seed)
}

// newBoard replaces the board with the start board, if one is set, or a
// board generated from seed at the current grid size. Counters are kept.
func (g *Game) newBoard(seed int64) {
	g.seed = seed
	g.solved = false
	g.solvedTicks = 0

	if fixture := currentStartBoard(); fixture != nil {
		if g.session == nil {
			g.session = core.NewSession(fixture)
			g.session.SetObserver(g.observe)
		}
		g.session.SetMinRadius(g.cfg.Drag.MinRadius)
		g.LoadBoard(fixture)
		return
	}

	params := core.DefaultGenParams()
	params.Seed = seed
	params.MaxAttempts = g.cfg.Generator.MaxAttempts
	params.MaxRerolls = g.cfg.Generator.MaxRerolls

	grid, stats, err := core.GenerateWithStats(g.cfg.Grid.Columns, g.cfg.Grid.Rows, params)
	g.genErr = err
	g.gameOver = err != nil
	if err != nil {
		g.log.Error("board generation failed", "game", g.id, "seed", seed, "err", err)
		grid = core.NewGrid(max(g.cfg.Grid.Columns, 1), max(g.cfg.Grid.Rows, 1))
	} else {
		g.log.Debug("board generated", "game", g.id, "seed", seed,
			"attempts", stats.Attempts, "rerolls", stats.Rerolls)
	}

	if g.session == nil {
		g.session = core.NewSession(grid)
		g.session.SetObserver(g.observe)
	} else {
		g.session.Reset(grid)
	}
	g.session.SetMinRadius(g.cfg.Drag.MinRadius)
	g.resetInput(grid)

	g.Resize(g.screenW, g.screenH)
	if err == nil {
		g.startSession()
	}
}

// nextBoard moves on from a cleared board, keeping the counters.
func (g *Game) nextBoard() {
	g.boards++
	g.log.Info("next board", "game", g.id, "boards", g.boards, "moves", g.moves)
	moves, rejected := g.moves, g.rejected
	g.newBoard(g.seed + 1)
	g.moves, g.rejected = moves, rejected
}

// LoadBoard replaces the current board with grid, for fixtures and
// replays. The grid size overrides the configured one.
func (g *Game) LoadBoard(grid *core.Grid) {
	g.cfg.Grid.Columns = grid.Cols()
	g.cfg.Grid.Rows = grid.Rows()
	g.moves = 0
	g.rejected = 0
	g.solved = false
	g.solvedTicks = 0
	g.gameOver = !core.HasPossibleMove(grid)
	g.genErr = nil
	g.session.Reset(grid)
	g.resetInput(grid)
	g.Resize(g.screenW, g.screenH)
	g.startSession()
}

func (g *Game) resetInput(grid *core.Grid) {
	g.grabbed = false
	g.pointerDown = false
	g.hintTicks = 0
	g.offsets = make(map[core.Position]tileOffset)
	g.cursor = core.P(0, grid.Rows()-1)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	bw, bh := g.boardSize()
	g.tooSmall = w < bw+2 || h < bh+hudHeight+footerHeight+2
}

// Grid returns the current board.
func (g *Game) Grid() *core.Grid {
	return g.session.Grid()
}

// Err returns the generation error of the current board, if any.
func (g *Game) Err() error {
	return g.genErr
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	if in.Has(platformcore.ActionRestart) {
		g.Reset(platformcore.RuntimeConfig{
			ScreenW: g.screenW,
			ScreenH: g.screenH,
			Seed:    g.seed + 1,
		})
		return platformcore.StepResult{State: g.State()}
	}

	if g.tooSmall || g.gameOver {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.cancelDrag()
		}
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	// A cleared board keeps its run on screen until the next one arrives.
	if g.solved {
		g.solvedTicks--
		if g.solvedTicks <= 0 || in.Has(platformcore.ActionConfirm) {
			g.nextBoard()
		}
		return platformcore.StepResult{State: g.State()}
	}

	g.handleKeys(in)
	return platformcore.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Moves:    g.moves,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// observe receives every engine notification.
func (g *Game) observe(n core.Notification) {
	g.log.Debug("notification", "game", g.id, "event", n.String())

	switch n := n.(type) {
	case core.TileVisualOffset:
		g.offsets[n.Pos] = tileOffset{offset: n.Offset, z: n.Z}
	case core.TileReset:
		delete(g.offsets, n.Pos)
	case core.SwapCommitted:
		// The run stays on the board, so any later swap would pass the
		// whole-grid check. The board is done.
		g.moves++
		g.hintTicks = 0
		g.record(n.A, n.B, true)
		g.solved = true
		g.solvedTicks = clearTicks
		g.log.Info("board cleared", "game", g.id, "moves", g.moves)
	}
}

// handle feeds ev to the session, journaling rejected attempts.
func (g *Game) handle(ev core.Event) {
	from, to, attempted := g.pendingAttempt(ev)
	for _, n := range g.session.Handle(ev) {
		if _, ok := n.(core.SwapRejected); ok && attempted {
			g.rejected++
			g.record(from, to, false)
		}
	}
}

// pendingAttempt reports the swap a DragEnd would attempt. Drags towards
// the board edge have no target and are not journaled.
func (g *Game) pendingAttempt(ev core.Event) (from, to core.Position, ok bool) {
	if _, isEnd := ev.(core.DragEnd); !isEnd {
		return from, to, false
	}
	drag, active := g.session.Drag()
	if !active {
		return from, to, false
	}
	to, ok = drag.Target()
	return drag.Anchor, to, ok
}

// startSession opens a journal session for the current board.
func (g *Game) startSession() {
	g.sessionID = ""
	if g.journal == nil {
		return
	}
	id, err := g.journal.StartSession(storage.SessionRecord{
		GameID: g.id,
		Cols:   g.Grid().Cols(),
		Rows:   g.Grid().Rows(),
		Seed:   g.seed,
		Source: g.source,
	})
	if err != nil {
		g.log.Warn("journal session failed", "err", err)
		return
	}
	g.sessionID = id
}

func (g *Game) record(from, to core.Position, committed bool) {
	if g.journal == nil || g.sessionID == "" {
		return
	}
	_, err := g.journal.SaveMove(storage.MoveRecord{
		SessionID: g.sessionID,
		FromCol:   from.Col,
		FromRow:   from.Row,
		ToCol:     to.Col,
		ToRow:     to.Row,
		Committed: committed,
	})
	if err != nil {
		g.log.Warn("journal write failed", "err", err)
	}
}

func (g *Game) cancelDrag() {
	if g.session.Dragging() {
		g.handle(core.DragCancel{})
	}
	g.grabbed = false
	g.pointerDown = false
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Grab/Drop | Esc: Cancel | ?: Hint | R: New board | Q: Quit"
}
