package core

import "math"

// MinRad is the drag distance, in cell units, below which no direction is resolved.
const MinRad = 0.2

// Vec2 is a 2D vector in cell units. Y grows upward.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied component-wise by s.
func (v Vec2) Scale(s Vec2) Vec2 {
	return Vec2{X: v.X * s.X, Y: v.Y * s.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Clamp restricts each component to [lo, hi].
func (v Vec2) Clamp(lo, hi float64) Vec2 {
	return Vec2{X: clampF(v.X, lo, hi), Y: clampF(v.Y, lo, hi)}
}

// DirectionSet is a small set of swap directions.
type DirectionSet uint8

// With returns the set with d added.
func (s DirectionSet) With(d SwapDirection) DirectionSet {
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s DirectionSet) Has(d SwapDirection) bool {
	return s&(1<<uint(d)) != 0
}

// DragState tracks one in-progress drag gesture.
type DragState struct {
	Anchor Position // Tile being dragged
	Start  Vec2     // Pointer coordinate at press, caller units
	Delta  Vec2     // Accumulated movement in cell units

	Direction    SwapDirection
	HasDirection bool

	// Banned holds directions that would leave the grid. Fixed at drag start.
	Banned DirectionSet

	// Neighbors maps each direction to the in-bounds orthogonal neighbor.
	Neighbors map[SwapDirection]Position

	// Highlighted is the neighbor currently displaced toward the anchor.
	Highlighted    Position
	HasHighlighted bool

	// Radius overrides MinRad when positive.
	Radius float64
}

// NewDragState creates the drag state for a press on anchor inside a
// cols x rows grid.
func NewDragState(anchor Position, start Vec2, cols, rows int) *DragState {
	var banned DirectionSet
	if anchor.Col == 0 {
		banned = banned.With(SwapLeft)
	}
	if anchor.Col == cols-1 {
		banned = banned.With(SwapRight)
	}
	if anchor.Row == 0 {
		banned = banned.With(SwapDown)
	}
	if anchor.Row == rows-1 {
		banned = banned.With(SwapUp)
	}

	neighbors := make(map[SwapDirection]Position, 4)
	for _, d := range AllDirections {
		n := anchor.Neighbor(d)
		if n.Col >= 0 && n.Col < cols && n.Row >= 0 && n.Row < rows {
			neighbors[d] = n
		}
	}

	return &DragState{
		Anchor:    anchor,
		Start:     start,
		Banned:    banned,
		Neighbors: neighbors,
	}
}

func (s *DragState) radius() float64 {
	if s.Radius > 0 {
		return s.Radius
	}
	return MinRad
}

// Move accumulates delta and re-resolves the direction.
func (s *DragState) Move(delta Vec2) {
	s.Delta = s.Delta.Add(delta)
	s.Direction, s.HasDirection = s.nextDirection()
}

// nextDirection applies the resolution rule with axis lock.
func (s *DragState) nextDirection() (SwapDirection, bool) {
	x, y := s.Delta.X, s.Delta.Y
	ax, ay := math.Abs(x), math.Abs(y)
	if r := s.radius(); ax < r && ay < r {
		return 0, false
	}

	if !s.HasDirection {
		if ax > ay {
			if x > 0 {
				return SwapRight, true
			}
			return SwapLeft, true
		}
		if y > 0 {
			return SwapUp, true
		}
		return SwapDown, true
	}

	// Locked: flip freely along the current axis only.
	if s.Direction.Horizontal() {
		if x > 0 {
			return SwapRight, true
		}
		return SwapLeft, true
	}
	if y < 0 {
		return SwapDown, true
	}
	return SwapUp, true
}

// LiveDelta returns the visual offset of the dragged tile: clamped to one
// cell, kept out of banned directions and squeezed to the drag radius off-axis.
func (s *DragState) LiveDelta() Vec2 {
	d := s.Delta.Clamp(-1, 1)
	if s.Banned.Has(SwapLeft) {
		d.X = math.Max(d.X, 0)
	}
	if s.Banned.Has(SwapRight) {
		d.X = math.Min(d.X, 0)
	}
	if s.Banned.Has(SwapDown) {
		d.Y = math.Max(d.Y, 0)
	}
	if s.Banned.Has(SwapUp) {
		d.Y = math.Min(d.Y, 0)
	}

	r := s.radius()
	switch {
	case !s.HasDirection:
		return d.Scale(Vec2{X: r, Y: r})
	case s.Direction.Horizontal():
		return d.Scale(Vec2{X: 1, Y: r})
	default:
		return d.Scale(Vec2{X: r, Y: 1})
	}
}

// NeighborDelta returns the visual offset of the neighbor under the drag:
// the negated anchor offset along the locked axis only.
func (s *DragState) NeighborDelta() Vec2 {
	if !s.HasDirection {
		return Vec2{}
	}
	live := s.LiveDelta()
	if s.Direction.Horizontal() {
		return Vec2{X: -live.X}
	}
	return Vec2{Y: -live.Y}
}

// Target returns the neighbor in the resolved direction, if it exists and
// the direction is not banned.
func (s *DragState) Target() (Position, bool) {
	if !s.HasDirection || s.Banned.Has(s.Direction) {
		return Position{}, false
	}
	n, ok := s.Neighbors[s.Direction]
	return n, ok
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
