package core

// SwapDirection is the direction a dragged tile travels toward its neighbor.
type SwapDirection int

const (
	SwapLeft SwapDirection = iota
	SwapRight
	SwapUp
	SwapDown
)

// AllDirections lists the four swap directions.
var AllDirections = [4]SwapDirection{SwapLeft, SwapRight, SwapUp, SwapDown}

// Offset returns the (column, row) step for the direction. Up is +1 row.
func (d SwapDirection) Offset() (dc, dr int) {
	switch d {
	case SwapLeft:
		return -1, 0
	case SwapRight:
		return 1, 0
	case SwapUp:
		return 0, 1
	case SwapDown:
		return 0, -1
	default:
		return 0, 0
	}
}

// Horizontal reports whether the direction lies on the horizontal axis.
func (d SwapDirection) Horizontal() bool {
	return d == SwapLeft || d == SwapRight
}

// Opposite returns the reverse direction.
func (d SwapDirection) Opposite() SwapDirection {
	switch d {
	case SwapLeft:
		return SwapRight
	case SwapRight:
		return SwapLeft
	case SwapUp:
		return SwapDown
	default:
		return SwapUp
	}
}

// String returns the direction name.
func (d SwapDirection) String() string {
	switch d {
	case SwapLeft:
		return "left"
	case SwapRight:
		return "right"
	case SwapUp:
		return "up"
	case SwapDown:
		return "down"
	default:
		return "unknown"
	}
}

// Move is a pair of cells whose swap would create a run.
type Move struct {
	A Position
	B Position
}

// validPair checks that both positions are in bounds and distinct.
func validPair(g *Grid, a, b Position) bool {
	return a != b && g.InBounds(a) && g.InBounds(b)
}

// CanSwap reports whether exchanging a and b would create a run.
// The grid is restored before returning. Adjacency is not checked here.
func CanSwap(g *Grid, a, b Position) bool {
	if !validPair(g, a, b) {
		return false
	}
	g.swap(a, b)
	result := HasAnyRun(g)
	g.swap(a, b)
	return result
}

// CommitSwap exchanges a and b and keeps the result only if it creates a
// run. On failure the grid is left exactly as it was.
func CommitSwap(g *Grid, a, b Position) bool {
	if !validPair(g, a, b) {
		return false
	}
	g.swap(a, b)
	if HasAnyRun(g) {
		return true
	}
	g.swap(a, b)
	return false
}

// HasPossibleMove reports whether any right or up neighbor swap creates a run.
func HasPossibleMove(g *Grid) bool {
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			p := Position{Col: col, Row: row}
			if col < g.cols-1 && CanSwap(g, p, p.Neighbor(SwapRight)) {
				return true
			}
			if row < g.rows-1 && CanSwap(g, p, p.Neighbor(SwapUp)) {
				return true
			}
		}
	}
	return false
}

// PossibleMoves returns every right or up neighbor swap that creates a run.
func PossibleMoves(g *Grid) []Move {
	var moves []Move
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			p := Position{Col: col, Row: row}
			if col < g.cols-1 && CanSwap(g, p, p.Neighbor(SwapRight)) {
				moves = append(moves, Move{A: p, B: p.Neighbor(SwapRight)})
			}
			if row < g.rows-1 && CanSwap(g, p, p.Neighbor(SwapUp)) {
				moves = append(moves, Move{A: p, B: p.Neighbor(SwapUp)})
			}
		}
	}
	return moves
}
