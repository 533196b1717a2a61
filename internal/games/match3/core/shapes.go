package core

// MinRunLength is the minimum number of equal adjacent tiles forming a run.
const MinRunLength = 3

// Run is a maximal line of equal adjacent tiles, ordered left to right
// (horizontal) or bottom to top (vertical).
type Run []Position

// Horizontal reports whether the run lies in a single row.
func (r Run) Horizontal() bool {
	return len(r) > 1 && r[0].Row == r[1].Row
}

// Contains reports whether the run covers p.
func (r Run) Contains(p Position) bool {
	for _, q := range r {
		if q == p {
			return true
		}
	}
	return false
}

// FindRuns returns every run in the grid. Horizontal runs come first, row by
// row from row 0, then vertical runs column by column from column 0.
// A horizontal and a vertical run may share a cell; each is reported once.
func FindRuns(g *Grid) []Run {
	var runs []Run

	for row := 0; row < g.rows; row++ {
		col := 0
		for col < g.cols {
			t := g.cells[col][row]
			if t.IsNone() {
				col++
				continue
			}
			next := col + 1
			for next < g.cols && g.cells[next][row] == t {
				next++
			}
			if next-col >= MinRunLength {
				run := make(Run, 0, next-col)
				for c := col; c < next; c++ {
					run = append(run, Position{Col: c, Row: row})
				}
				runs = append(runs, run)
			}
			col = next
		}
	}

	for col := 0; col < g.cols; col++ {
		row := 0
		for row < g.rows {
			t := g.cells[col][row]
			if t.IsNone() {
				row++
				continue
			}
			next := row + 1
			for next < g.rows && g.cells[col][next] == t {
				next++
			}
			if next-row >= MinRunLength {
				run := make(Run, 0, next-row)
				for r := row; r < next; r++ {
					run = append(run, Position{Col: col, Row: r})
				}
				runs = append(runs, run)
			}
			row = next
		}
	}

	return runs
}

// HasAnyRun reports whether the grid contains at least one run.
// It only compares each cell with its two predecessors and stops at the
// first hit, scanning rows before columns.
func HasAnyRun(g *Grid) bool {
	for row := 0; row < g.rows; row++ {
		for col := 2; col < g.cols; col++ {
			t := g.cells[col][row]
			if t.IsNone() {
				continue
			}
			if g.cells[col-1][row] == t && g.cells[col-2][row] == t {
				return true
			}
		}
	}

	for col := 0; col < g.cols; col++ {
		column := g.cells[col]
		for row := 2; row < g.rows; row++ {
			t := column[row]
			if t.IsNone() {
				continue
			}
			if column[row-1] == t && column[row-2] == t {
				return true
			}
		}
	}

	return false
}
