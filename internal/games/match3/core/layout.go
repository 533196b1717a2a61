package core

import "math"

// Layout maps pointer coordinates onto a board whose tiles are CellSize
// units square. Pointer coordinates have their origin at the top-left of
// the board and grow downward; board rows grow upward.
type Layout struct {
	Cols, Rows int
	CellSize   float64
}

// NewLayout creates the layout for g.
func NewLayout(g *Grid, cellSize float64) Layout {
	return Layout{Cols: g.Cols(), Rows: g.Rows(), CellSize: cellSize}
}

// CellAt returns the tile under pointer position p.
func (l Layout) CellAt(p Vec2) (Position, bool) {
	if l.CellSize <= 0 || p.X < 0 || p.Y < 0 {
		return Position{}, false
	}
	col := int(math.Floor(p.X / l.CellSize))
	row := l.Rows - 1 - int(math.Floor(p.Y/l.CellSize))
	pos := Position{Col: col, Row: row}
	if col >= l.Cols || row < 0 {
		return Position{}, false
	}
	return pos, true
}

// Delta converts a pointer movement into cell units with Y pointing up.
func (l Layout) Delta(from, to Vec2) Vec2 {
	if l.CellSize <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (to.X - from.X) / l.CellSize,
		Y: -(to.Y - from.Y) / l.CellSize,
	}
}

// Origin returns the pointer position of the top-left corner of pos.
func (l Layout) Origin(pos Position) Vec2 {
	return Vec2{
		X: float64(pos.Col) * l.CellSize,
		Y: float64(l.Rows-1-pos.Row) * l.CellSize,
	}
}
