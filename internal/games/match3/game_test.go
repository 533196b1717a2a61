package match3

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

type fakeJournal struct {
	sessions []storage.SessionRecord
	moves    []storage.MoveRecord
}

func (j *fakeJournal) StartSession(rec storage.SessionRecord) (string, error) {
	j.sessions = append(j.sessions, rec)
	return fmt.Sprintf("session-%d", len(j.sessions)), nil
}

func (j *fakeJournal) SaveMove(m storage.MoveRecord) (int64, error) {
	j.moves = append(j.moves, m)
	return int64(len(j.moves)), nil
}

// newTestGame returns a game on an 80x24 screen holding the board given
// top row first. Its only valid swap is (0,0) with (1,0).
func newTestGame(t *testing.T) (*Game, *fakeJournal) {
	t.Helper()
	grid, err := core.ParseBoardRows([]string{"STC", "CTS", "TPS"})
	if err != nil {
		t.Fatalf("ParseBoardRows failed: %v", err)
	}

	j := &fakeJournal{}
	g := New()
	g.SetJournal(j, "local")
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	g.LoadBoard(grid)
	return g, j
}

func press(g *Game, actions ...platformcore.Action) {
	for _, a := range actions {
		in := platformcore.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id         string
		cols, rows int
	}{
		{"match3", 6, 6},
		{"match3_small", 5, 5},
		{"match3_large", 8, 8},
		{"match3_huge", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if !registry.Exists(tc.id) {
				t.Fatalf("%s not registered", tc.id)
			}
			rg, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			g := rg.(*Game)
			g.Reset(platformcore.RuntimeConfig{ScreenW: 120, ScreenH: 40, Seed: 9})
			if g.Err() != nil {
				t.Fatalf("generation failed: %v", g.Err())
			}
			if g.Grid().Cols() != tc.cols || g.Grid().Rows() != tc.rows {
				t.Errorf("grid = %dx%d, want %dx%d", g.Grid().Cols(), g.Grid().Rows(), tc.cols, tc.rows)
			}
		})
	}
}

func TestResetDeterministic(t *testing.T) {
	a, b := New(), New()
	cfg := platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1234}
	a.Reset(cfg)
	b.Reset(cfg)

	sa, sb := a.Snapshot(), b.Snapshot()
	if strings.Join(sa.Board, "/") != strings.Join(sb.Board, "/") {
		t.Errorf("same seed produced different boards:\n%v\n%v", sa.Board, sb.Board)
	}
	if sa.State != StatePlaying {
		t.Errorf("State = %s, want %s", sa.State, StatePlaying)
	}
}

func TestKeyboardCommittedSwap(t *testing.T) {
	g, j := newTestGame(t)

	// Cursor starts top-left; walk it to the bottom-left tile.
	press(g, platformcore.ActionDown, platformcore.ActionDown)
	if g.cursor != core.P(0, 0) {
		t.Fatalf("cursor = %v, want (0,0)", g.cursor)
	}

	press(g, platformcore.ActionConfirm)
	if !g.grabbed || g.Snapshot().State != StateDragging {
		t.Fatal("Confirm should grab the tile under the cursor")
	}

	press(g, platformcore.ActionRight, platformcore.ActionConfirm)

	if g.moves != 1 || g.State().Moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
	if g.grabbed || g.session.Dragging() {
		t.Error("drag should be finished")
	}
	if len(g.offsets) != 0 {
		t.Errorf("offsets not reset: %v", g.offsets)
	}
	if got := g.Snapshot().Board; got[2] != "PTS" {
		t.Errorf("bottom row = %q, want %q", got[2], "PTS")
	}

	if len(j.moves) != 1 {
		t.Fatalf("journal has %d moves, want 1", len(j.moves))
	}
	want := storage.MoveRecord{SessionID: "session-2", FromCol: 0, FromRow: 0, ToCol: 1, ToRow: 0, Committed: true}
	if j.moves[0] != want {
		t.Errorf("journal = %+v, want %+v", j.moves[0], want)
	}
	if g.gameOver {
		t.Error("board with a run still has moves")
	}
}

func TestKeyboardRejectedSwap(t *testing.T) {
	g, j := newTestGame(t)
	before := g.Grid().Clone()

	// (1,1) to (2,1) forms nothing.
	press(g, platformcore.ActionDown, platformcore.ActionRight, platformcore.ActionConfirm)
	press(g, platformcore.ActionRight, platformcore.ActionConfirm)

	if !before.Equal(g.Grid()) {
		t.Errorf("rejected swap changed the board:\n%s", g.Grid())
	}
	if g.moves != 0 || g.rejected != 1 {
		t.Errorf("moves/rejected = %d/%d, want 0/1", g.moves, g.rejected)
	}
	if len(j.moves) != 1 || j.moves[0].Committed {
		t.Fatalf("journal = %+v, want one rejected move", j.moves)
	}
	if j.moves[0].FromCol != 1 || j.moves[0].FromRow != 1 || j.moves[0].ToCol != 2 || j.moves[0].ToRow != 1 {
		t.Errorf("journal move = %+v, want (1,1)->(2,1)", j.moves[0])
	}
}

func TestKeyboardCancel(t *testing.T) {
	g, j := newTestGame(t)
	before := g.Grid().Clone()

	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionConfirm)
	press(g, platformcore.ActionRight)
	if len(g.offsets) != 2 {
		t.Fatalf("expected anchor and neighbor offsets, got %v", g.offsets)
	}

	press(g, platformcore.ActionCancel)
	if g.grabbed || g.session.Dragging() {
		t.Error("Cancel should end the drag")
	}
	if len(g.offsets) != 0 {
		t.Errorf("offsets not reset: %v", g.offsets)
	}
	if !before.Equal(g.Grid()) || len(j.moves) != 0 {
		t.Error("Cancel must not swap or journal")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g, _ := newTestGame(t)

	press(g, platformcore.ActionUp, platformcore.ActionLeft)
	if g.cursor != core.P(0, 2) {
		t.Errorf("cursor = %v, want (0,2)", g.cursor)
	}
	press(g, platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionRight)
	if g.cursor != core.P(2, 2) {
		t.Errorf("cursor = %v, want (2,2)", g.cursor)
	}
}

func TestPointerSwap(t *testing.T) {
	g, j := newTestGame(t)

	// 3 columns of 5 chars centered on 80 columns; bottom row at lines 7-8.
	bx, by := g.boardOrigin()
	if bx != 32 || by != 3 {
		t.Fatalf("boardOrigin() = (%d, %d), want (32, 3)", bx, by)
	}

	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: 34, Y: 7})
	if !g.session.Dragging() {
		t.Fatal("press on a tile should start a drag")
	}
	drag, _ := g.session.Drag()
	if drag.Anchor != core.P(0, 0) {
		t.Fatalf("anchor = %v, want (0,0)", drag.Anchor)
	}

	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerMotion, X: 39, Y: 7})
	drag, _ = g.session.Drag()
	if !drag.HasDirection || drag.Direction != core.SwapRight {
		t.Fatalf("direction = %v (%v), want Right", drag.Direction, drag.HasDirection)
	}

	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerRelease, X: 39, Y: 7})
	if g.moves != 1 || len(j.moves) != 1 || !j.moves[0].Committed {
		t.Errorf("moves = %d, journal = %+v, want one committed swap", g.moves, j.moves)
	}
}

func TestPointerOutsideBoardIgnored(t *testing.T) {
	g, _ := newTestGame(t)

	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: 2, Y: 2})
	if g.session.Dragging() || g.pointerDown {
		t.Error("press outside the board should be ignored")
	}

	// Motion and release without a press do nothing.
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerMotion, X: 40, Y: 7})
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerRelease, X: 40, Y: 7})
	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
}

func TestPointerVerticalDragFlipsY(t *testing.T) {
	g, _ := newTestGame(t)

	// Press the middle tile and drag one line up the screen.
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: 39, Y: 5})
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerMotion, X: 39, Y: 4})

	drag, ok := g.session.Drag()
	if !ok || drag.Anchor != core.P(1, 1) {
		t.Fatalf("drag = %+v, want anchor (1,1)", drag)
	}
	if drag.Direction != core.SwapUp {
		t.Errorf("direction = %v, want Up", drag.Direction)
	}

	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerCancel})
	if g.session.Dragging() {
		t.Error("cancel should end the drag")
	}
}

func TestHint(t *testing.T) {
	g, _ := newTestGame(t)

	press(g, platformcore.ActionHint)
	if g.hintTicks == 0 {
		t.Fatal("hint not shown")
	}
	want := core.Move{A: core.P(0, 0), B: core.P(1, 0)}
	if g.hint != want {
		t.Errorf("hint = %+v, want %+v", g.hint, want)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g, _ := newTestGame(t)

	press(g, platformcore.ActionPause, platformcore.ActionDown)
	if !g.State().Paused || g.cursor != core.P(0, 2) {
		t.Errorf("paused game moved the cursor to %v", g.cursor)
	}
	press(g, platformcore.ActionPause, platformcore.ActionDown)
	if g.cursor != core.P(0, 1) {
		t.Errorf("cursor = %v after resume, want (0,1)", g.cursor)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 5, Seed: 1})

	if !g.State().Paused {
		t.Error("tiny screen should pause the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize should unpause the game")
	}
}

func TestGenerationFailure(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Grid.Columns, cfg.Grid.Rows = 2, 2
	cfg.Generator.MaxAttempts = 3
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(config.DefaultMatch3Config()) })

	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	if !errors.Is(g.Err(), core.ErrGenerationExhausted) {
		t.Fatalf("Err() = %v, want ErrGenerationExhausted", g.Err())
	}
	if !g.State().GameOver || g.Snapshot().State != StateGenFailed {
		t.Error("failed generation should end the game")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "NO PLAYABLE BOARD") {
		t.Error("failure overlay not rendered")
	}
}

func TestRestartGeneratesNewBoard(t *testing.T) {
	g, j := newTestGame(t)
	press(g, platformcore.ActionRestart)

	if g.Grid().Cols() != 6 || g.Grid().Rows() != 6 {
		t.Errorf("restart grid = %dx%d, want 6x6", g.Grid().Cols(), g.Grid().Rows())
	}
	if g.seed != 2 {
		t.Errorf("seed = %d, want 2", g.seed)
	}
	if len(j.moves) != 0 {
		t.Error("restart should not journal moves")
	}
	if len(j.sessions) != 3 || g.SessionID() != "session-3" {
		t.Errorf("restart should open a new journal session, got %d (%q)", len(j.sessions), g.SessionID())
	}
}

func TestJournalSessions(t *testing.T) {
	_, j := newTestGame(t)

	if len(j.sessions) != 2 {
		t.Fatalf("journal has %d sessions, want 2 (generated and loaded)", len(j.sessions))
	}
	loaded := j.sessions[1]
	if loaded.GameID != "match3" || loaded.Cols != 3 || loaded.Rows != 3 || loaded.Source != "local" {
		t.Errorf("loaded session = %+v", loaded)
	}
	if j.sessions[0].Seed != 1 || j.sessions[0].Cols != 6 {
		t.Errorf("generated session = %+v", j.sessions[0])
	}
}

func TestRenderBoard(t *testing.T) {
	g, _ := newTestGame(t)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	// Top row "STC" sits on line 3; each glyph is the middle of a 3-wide cell.
	row := screen.Row(3)
	for i, glyph := range "STC" {
		x := 32 + i*5 + 2
		if got := screen.Get(x, 3); got != glyph {
			t.Errorf("glyph at (%d, 3) = %q, want %q (row %q)", x, got, glyph, row)
		}
	}
	if screen.Get(33, 3) != '>' {
		t.Errorf("cursor marker missing: %q", row)
	}
	if c := screen.GetCell(34, 3); c.Color != platformcore.ColorBlue {
		t.Errorf("square colour = %v, want blue", c.Color)
	}
	if !strings.Contains(screen.Row(1), "Moves: 0") {
		t.Errorf("HUD = %q", screen.Row(1))
	}
}

func TestRenderDraggedTileOffset(t *testing.T) {
	g, _ := newTestGame(t)
	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionConfirm, platformcore.ActionRight)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	// Anchor (0,0) shifted half a tile right: Round(0.5*5) = 3 columns.
	if got := screen.Get(32+3+2, 7); got != 'T' {
		t.Errorf("dragged tile at x=37 = %q, want 'T' (row %q)", got, screen.Row(7))
	}
	if screen.Get(36, 7) != '[' {
		t.Errorf("grab marker missing: %q", screen.Row(7))
	}
}

func TestStartBoardSurvivesRestart(t *testing.T) {
	fixture, err := core.ParseBoardRows([]string{"STC", "CTS", "TPS"})
	if err != nil {
		t.Fatalf("ParseBoardRows failed: %v", err)
	}
	SetStartBoard(fixture)
	t.Cleanup(func() { SetStartBoard(nil) })

	j := &fakeJournal{}
	g := New()
	g.SetJournal(j, "local")
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 4})

	if !g.Grid().Equal(fixture) {
		t.Fatalf("board = \n%s\nwant\n%s", g.Grid(), fixture)
	}
	if g.State().GameOver {
		t.Fatal("fixture has a move, game should be playable")
	}

	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionConfirm,
		platformcore.ActionRight, platformcore.ActionConfirm)
	if g.Grid().Equal(fixture) {
		t.Fatal("swap should have changed the board")
	}

	press(g, platformcore.ActionRestart)
	if !g.Grid().Equal(fixture) {
		t.Errorf("restart should reload the fixture, got\n%s", g.Grid())
	}
	if len(j.sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(j.sessions))
	}
}

func TestClearedBoardTakesNoMoreSwaps(t *testing.T) {
	g, j := newTestGame(t)

	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionConfirm,
		platformcore.ActionRight, platformcore.ActionConfirm)
	if g.Snapshot().State != StateSolved {
		t.Fatalf("State = %s, want %s", g.Snapshot().State, StateSolved)
	}
	cleared := g.Grid().Clone()

	// Swapping C and S at the right edge forms nothing new, but the run
	// left by the first swap is still on the board.
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: 44, Y: 3})
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerMotion, X: 44, Y: 5})
	g.Pointer(platformcore.PointerEvent{Kind: platformcore.PointerRelease, X: 44, Y: 5})
	press(g, platformcore.ActionUp, platformcore.ActionLeft)

	if g.session.Dragging() || !g.Grid().Equal(cleared) {
		t.Errorf("cleared board accepted input:\n%s", g.Grid())
	}
	if g.moves != 1 || len(j.moves) != 1 {
		t.Errorf("moves = %d, journal = %+v, want the single first swap", g.moves, j.moves)
	}

	press(g, platformcore.ActionConfirm)
	if g.solved || g.boards != 1 || g.moves != 1 {
		t.Errorf("solved/boards/moves = %v/%d/%d, want false/1/1", g.solved, g.boards, g.moves)
	}
	if core.HasAnyRun(g.Grid()) {
		t.Errorf("next board starts with a run:\n%s", g.Grid())
	}
}

func TestClearedBoardAdvancesByItself(t *testing.T) {
	fixture, err := core.ParseBoardRows([]string{"STC", "CTS", "TPS"})
	if err != nil {
		t.Fatalf("ParseBoardRows failed: %v", err)
	}
	SetStartBoard(fixture)
	t.Cleanup(func() { SetStartBoard(nil) })

	j := &fakeJournal{}
	g := New()
	g.SetJournal(j, "local")
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 4})

	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionConfirm,
		platformcore.ActionRight, platformcore.ActionConfirm)
	if !g.solved {
		t.Fatal("committed swap should clear the board")
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "MATCH!") {
		t.Error("cleared board overlay missing")
	}

	for range clearTicks {
		g.Step(platformcore.NewInputFrame())
	}

	if g.solved {
		t.Fatal("cleared board should give way to the next one")
	}
	if !g.Grid().Equal(fixture) {
		t.Errorf("next board = \n%s\nwant the start board", g.Grid())
	}
	snap := g.Snapshot()
	if snap.Boards != 1 || snap.Moves != 1 || snap.State != StatePlaying {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(j.sessions) != 2 {
		t.Errorf("sessions = %d, want one per board", len(j.sessions))
	}
}

func TestEdgeDragNotJournaled(t *testing.T) {
	g, j := newTestGame(t)
	before := g.Grid().Clone()

	// Cursor starts on (0,2); Left points off the board.
	press(g, platformcore.ActionConfirm, platformcore.ActionLeft, platformcore.ActionConfirm)

	if g.session.Dragging() || !before.Equal(g.Grid()) {
		t.Error("edge drag should end without a swap")
	}
	if len(j.moves) != 0 {
		t.Errorf("journal = %+v, want no rows for a drag without a target", j.moves)
	}
}
