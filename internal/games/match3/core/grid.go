package core

import (
	"fmt"
	"strings"
)

// Position addresses a grid cell. Row 0 is the bottom row.
type Position struct {
	Col int
	Row int
}

// P is a convenience constructor for Position.
func P(col, row int) Position {
	return Position{Col: col, Row: row}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Neighbor returns the position one step in the given direction.
func (p Position) Neighbor(d SwapDirection) Position {
	dc, dr := d.Offset()
	return Position{Col: p.Col + dc, Row: p.Row + dr}
}

// Adjacent reports whether two positions differ by exactly 1 in exactly one axis.
func (p Position) Adjacent(q Position) bool {
	dc := abs(p.Col - q.Col)
	dr := abs(p.Row - q.Row)
	return dc+dr == 1
}

// Grid is a rectangular table of tiles.
// Cells are stored column-major: cells[col][row].
type Grid struct {
	cols  int
	rows  int
	cells [][]Tile
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := &Grid{cols: cols, rows: rows}
	g.cells = make([][]Tile, cols)
	for c := range g.cells {
		g.cells[c] = make([]Tile, rows)
	}
	return g
}

// GridFromRows builds a grid from row slices, where rows[0] is row 0.
// All rows must have the same length.
func GridFromRows(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	cols := len(rows[0])
	g := NewGrid(cols, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("match3: row %d has %d cells, want %d", r, len(row), cols)
		}
		for c, t := range row {
			g.cells[c][r] = t
		}
	}
	return g, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Col >= 0 && p.Col < g.cols && p.Row >= 0 && p.Row < g.rows
}

// At returns the tile at p, or TileNone when p is out of bounds.
func (g *Grid) At(p Position) Tile {
	if !g.InBounds(p) {
		return TileNone
	}
	return g.cells[p.Col][p.Row]
}

// Set stores a tile at p. Out-of-bounds writes are ignored.
// Gameplay code must go through CommitSwap; Set exists for the
// generator and for building fixtures.
func (g *Grid) Set(p Position, t Tile) {
	if g.InBounds(p) {
		g.cells[p.Col][p.Row] = t
	}
}

// swap exchanges two cells without any validation.
func (g *Grid) swap(a, b Position) {
	g.cells[a.Col][a.Row], g.cells[b.Col][b.Row] = g.cells[b.Col][b.Row], g.cells[a.Col][a.Row]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.cols, g.rows)
	for c := range g.cells {
		copy(clone.cells[c], g.cells[c])
	}
	return clone
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.cols != other.cols || g.rows != other.rows {
		return false
	}
	for c := range g.cells {
		for r := range g.cells[c] {
			if g.cells[c][r] != other.cells[c][r] {
				return false
			}
		}
	}
	return true
}

// IsFull reports whether no cell is empty.
func (g *Grid) IsFull() bool {
	for c := range g.cells {
		for _, t := range g.cells[c] {
			if t.IsNone() {
				return false
			}
		}
	}
	return true
}

// String renders the grid with the top row first, one glyph per cell.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := g.rows - 1; r >= 0; r-- {
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.cells[c][r].Glyph())
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
