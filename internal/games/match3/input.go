package match3

import (
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// handleKeys drives the cursor and keyboard drags.
//
// Without a grabbed tile the arrows move the cursor. Confirm grabs the
// tile under the cursor; the arrows then drag it keyStep tiles per press
// and a second Confirm releases it.
func (g *Game) handleKeys(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	if in.Has(platformcore.ActionCancel) && g.grabbed {
		g.cancelDrag()
		return
	}

	var delta core.Vec2
	switch {
	case in.Has(platformcore.ActionUp):
		delta = core.V(0, 1)
	case in.Has(platformcore.ActionDown):
		delta = core.V(0, -1)
	case in.Has(platformcore.ActionLeft):
		delta = core.V(-1, 0)
	case in.Has(platformcore.ActionRight):
		delta = core.V(1, 0)
	}

	if delta != (core.Vec2{}) {
		if g.grabbed {
			g.handle(core.DragMove{Delta: delta.Scale(core.V(keyStep, keyStep))})
		} else {
			g.moveCursor(int(delta.X), int(delta.Y))
		}
	}

	if in.Has(platformcore.ActionConfirm) {
		if g.grabbed {
			g.handle(core.DragEnd{})
			g.grabbed = false
			return
		}
		if g.session.Dragging() {
			return
		}
		g.handle(core.DragStart{Pos: g.cursor})
		g.grabbed = g.session.Dragging()
	}
}

func (g *Game) moveCursor(dc, dr int) {
	grid := g.Grid()
	g.cursor.Col = platformcore.Clamp(g.cursor.Col+dc, 0, grid.Cols()-1)
	g.cursor.Row = platformcore.Clamp(g.cursor.Row+dr, 0, grid.Rows()-1)
}

// showHint highlights the first available swap.
func (g *Game) showHint() {
	moves := core.PossibleMoves(g.Grid())
	if len(moves) == 0 {
		return
	}
	g.hint = moves[0]
	g.hintTicks = hintTicks
}

// Pointer handles mouse input in screen cells.
func (g *Game) Pointer(ev platformcore.PointerEvent) {
	if g.tooSmall || g.gameOver || g.paused || g.solved || g.grabbed {
		return
	}

	p := g.toWorld(ev.X, ev.Y)
	switch ev.Kind {
	case platformcore.PointerPress:
		if g.pointerDown {
			return
		}
		pos, ok := g.layout().CellAt(p)
		if !ok {
			return
		}
		g.handle(core.DragStart{Pos: pos, Start: p})
		if g.session.Dragging() {
			g.pointerDown = true
			g.lastPointer = p
			g.cursor = pos
		}

	case platformcore.PointerMotion:
		if !g.pointerDown {
			return
		}
		g.handle(core.DragMove{Delta: g.layout().Delta(g.lastPointer, p)})
		g.lastPointer = p

	case platformcore.PointerRelease:
		if !g.pointerDown {
			return
		}
		if p != g.lastPointer {
			g.handle(core.DragMove{Delta: g.layout().Delta(g.lastPointer, p)})
		}
		g.handle(core.DragEnd{})
		g.pointerDown = false

	case platformcore.PointerCancel:
		g.cancelDrag()
	}
}

// layout maps world coordinates onto the board.
func (g *Game) layout() core.Layout {
	return core.NewLayout(g.Grid(), float64(g.cfg.Grid.CellSize))
}

// toWorld converts a screen cell into world units relative to the board's
// top-left corner, using the center of the character cell.
func (g *Game) toWorld(x, y int) core.Vec2 {
	bx, by := g.boardOrigin()
	size := float64(g.cfg.Grid.CellSize)
	return core.Vec2{
		X: (float64(x-bx) + 0.5) * size / float64(g.cfg.Terminal.CellWidth),
		Y: (float64(y-by) + 0.5) * size / float64(g.cfg.Terminal.CellHeight),
	}
}
