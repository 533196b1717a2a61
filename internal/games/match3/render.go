package match3

import (
	"fmt"
	"sort"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	hudHeight    = 2 // Title and status lines above the board frame
	footerHeight = 1 // Controls line below the board frame
)

// tileColors maps tile kinds onto screen colours.
var tileColors = map[core.Tile]platformcore.Color{
	core.TilePentagon: platformcore.ColorMagenta,
	core.TileTriangle: platformcore.ColorYellow,
	core.TileSquare:   platformcore.ColorBlue,
	core.TileCircle:   platformcore.ColorRed,
	core.TileDiamond:  platformcore.ColorCyan,
	core.TileStar:     platformcore.ColorGreen,
}

// boardSize returns the board size in screen cells, without the frame.
func (g *Game) boardSize() (w, h int) {
	return g.cfg.Grid.Columns * g.cfg.Terminal.CellWidth, g.cfg.Grid.Rows * g.cfg.Terminal.CellHeight
}

// boardOrigin returns the screen cell of the board's top-left tile.
func (g *Game) boardOrigin() (x, y int) {
	bw, _ := g.boardSize()
	return (g.screenW - bw) / 2, hudHeight + 1
}

// tileOrigin returns the top-left screen cell of pos shifted by off tiles.
func (g *Game) tileOrigin(pos core.Position, off core.Vec2) (x, y int) {
	bx, by := g.boardOrigin()
	cw, ch := g.cfg.Terminal.CellWidth, g.cfg.Terminal.CellHeight
	rows := g.Grid().Rows()
	x = bx + pos.Col*cw + platformcore.Round(off.X*float64(cw))
	y = by + (rows-1-pos.Row)*ch + platformcore.Round(-off.Y*float64(ch))
	return x, y
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bx, by := g.boardOrigin()
	bw, bh := g.boardSize()

	g.renderHUD(dst)
	dst.DrawBox(platformcore.NewRect(bx-1, by-1, bw+2, bh+2), platformcore.ColorGray)
	g.renderTiles(dst)
	dst.DrawTextCentered(by+bh+1, g.Controls())
	g.renderOverlays(dst, bx+bw/2, by+bh/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and counters.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextCentered(0, g.title)
	dst.DrawTextCentered(1, fmt.Sprintf("Moves: %d  Rejected: %d  Cleared: %d  %dx%d",
		g.moves, g.rejected, g.boards, g.Grid().Cols(), g.Grid().Rows()))
}

// renderTiles draws resting tiles first, then displaced ones by Z so the
// dragged tile ends up on top.
func (g *Game) renderTiles(dst *platformcore.Screen) {
	grid := g.Grid()

	for col := 0; col < grid.Cols(); col++ {
		for row := 0; row < grid.Rows(); row++ {
			pos := core.P(col, row)
			if _, moving := g.offsets[pos]; moving {
				continue
			}
			g.drawTile(dst, pos, core.Vec2{})
		}
	}

	moving := make([]core.Position, 0, len(g.offsets))
	for pos := range g.offsets {
		moving = append(moving, pos)
	}
	sort.Slice(moving, func(i, j int) bool {
		return g.offsets[moving[i]].z < g.offsets[moving[j]].z
	})
	for _, pos := range moving {
		g.drawTile(dst, pos, g.offsets[pos].offset)
	}
}

// drawTile draws one tile as a bracketed glyph on the tile's middle line.
func (g *Game) drawTile(dst *platformcore.Screen, pos core.Position, off core.Vec2) {
	t := g.Grid().At(pos)
	x, y := g.tileOrigin(pos, off)
	cx := x + (g.cfg.Terminal.CellWidth-3)/2
	cy := y + (g.cfg.Terminal.CellHeight-1)/2

	left, right := ' ', ' '
	switch {
	case g.grabbed && g.isAnchor(pos):
		left, right = '[', ']'
	case pos == g.cursor && !g.session.Dragging():
		left, right = '>', '<'
	case g.hintTicks > 0 && (pos == g.hint.A || pos == g.hint.B):
		left, right = '*', '*'
	}

	dst.Set(cx, cy, left)
	dst.SetColored(cx+1, cy, t.Glyph(), tileColors[t])
	dst.Set(cx+2, cy, right)
}

func (g *Game) isAnchor(pos core.Position) bool {
	drag, ok := g.session.Drag()
	return ok && drag.Anchor == pos
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.solved:
		drawOverlay(dst, centerX, centerY, "MATCH!", "Space for the next board")
	case g.genErr != nil:
		drawOverlay(dst, centerX, centerY, "NO PLAYABLE BOARD", g.genErr.Error(), "Press R to retry")
	case g.gameOver:
		drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", fmt.Sprintf("Moves: %d", g.moves), "Press R for a new board")
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, platformcore.ColorBrightWhite)
	}
}
