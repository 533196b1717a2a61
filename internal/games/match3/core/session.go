package core

// Observer receives every notification a Session emits.
type Observer func(Notification)

// Session owns a grid and the optional active drag. It processes events one
// at a time and is not safe for concurrent use.
type Session struct {
	grid     *Grid
	drag     *DragState
	observer Observer
	radius   float64
}

// NewSession creates an idle session over g.
func NewSession(g *Grid) *Session {
	return &Session{grid: g}
}

// SetObserver installs fn to be called with each emitted notification.
func (s *Session) SetObserver(fn Observer) {
	s.observer = fn
}

// SetMinRadius changes the direction threshold for drags started after
// the call. Non-positive values restore MinRad.
func (s *Session) SetMinRadius(r float64) {
	s.radius = r
}

// Grid returns the session grid.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Dragging reports whether a gesture is active.
func (s *Session) Dragging() bool {
	return s.drag != nil
}

// Drag returns a copy of the active drag state.
func (s *Session) Drag() (DragState, bool) {
	if s.drag == nil {
		return DragState{}, false
	}
	return *s.drag, true
}

// Handle applies one event and returns the resulting notifications.
// Events that do not fit the current state are ignored.
func (s *Session) Handle(ev Event) []Notification {
	var out []Notification
	switch e := ev.(type) {
	case DragStart:
		out = s.dragStart(e)
	case DragMove:
		out = s.dragMove(e)
	case DragEnd:
		out = s.dragEnd()
	case DragCancel:
		out = s.dragCancel()
	}

	if s.observer != nil {
		for _, n := range out {
			s.observer(n)
		}
	}
	return out
}

func (s *Session) dragStart(e DragStart) []Notification {
	if s.drag != nil {
		return nil
	}
	if !s.grid.InBounds(e.Pos) || s.grid.At(e.Pos).IsNone() {
		return nil
	}
	s.drag = NewDragState(e.Pos, e.Start, s.grid.Cols(), s.grid.Rows())
	s.drag.Radius = s.radius
	return nil
}

func (s *Session) dragMove(e DragMove) []Notification {
	if s.drag == nil {
		return nil
	}
	d := s.drag
	d.Move(e.Delta)

	out := []Notification{
		TileVisualOffset{Pos: d.Anchor, Offset: d.LiveDelta(), Z: ZDragged},
	}

	var next Position
	hasNext := false
	if d.HasDirection {
		next, hasNext = d.Neighbors[d.Direction]
	}

	if d.HasHighlighted && (!hasNext || next != d.Highlighted) {
		out = append(out, TileReset{Pos: d.Highlighted})
		d.HasHighlighted = false
	}
	if hasNext {
		d.Highlighted = next
		d.HasHighlighted = true
		out = append(out, TileVisualOffset{Pos: next, Offset: d.NeighborDelta(), Z: ZNeighbor})
	}

	return out
}

func (s *Session) dragEnd() []Notification {
	if s.drag == nil {
		return nil
	}
	d := s.drag

	var out []Notification
	if d.HasDirection {
		target, ok := d.Target()
		if ok && CanSwap(s.grid, d.Anchor, target) && CommitSwap(s.grid, d.Anchor, target) {
			out = append(out, SwapCommitted{A: d.Anchor, B: target})
		} else {
			out = append(out, SwapRejected{})
		}
	}

	out = append(out, s.resets()...)
	s.drag = nil
	return out
}

func (s *Session) dragCancel() []Notification {
	if s.drag == nil {
		return nil
	}
	out := s.resets()
	s.drag = nil
	return out
}

// resets snaps back the anchor and any highlighted neighbor.
func (s *Session) resets() []Notification {
	out := []Notification{TileReset{Pos: s.drag.Anchor}}
	if s.drag.HasHighlighted {
		out = append(out, TileReset{Pos: s.drag.Highlighted})
	}
	return out
}

// Reset replaces the grid and drops any active drag without notifications.
func (s *Session) Reset(g *Grid) {
	s.grid = g
	s.drag = nil
}
