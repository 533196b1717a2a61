package core

import "fmt"

// Event is an abstract input event consumed by Session.Handle.
type Event interface {
	isEvent()
}

// DragStart is a press on the tile at Pos.
type DragStart struct {
	Pos   Position
	Start Vec2
}

// DragMove carries pointer movement already converted to cell units.
type DragMove struct {
	Delta Vec2
}

// DragEnd is the pointer release.
type DragEnd struct{}

// DragCancel aborts the gesture without attempting a swap.
type DragCancel struct{}

func (DragStart) isEvent()  {}
func (DragMove) isEvent()   {}
func (DragEnd) isEvent()    {}
func (DragCancel) isEvent() {}

// Notification is an outbound state change for the renderer.
type Notification interface {
	fmt.Stringer
	isNotification()
}

// Z-order hints for TileVisualOffset.
const (
	ZNeighbor = 0
	ZDragged  = 1
)

// TileVisualOffset places a tile away from its resting cell by Offset cells.
type TileVisualOffset struct {
	Pos    Position
	Offset Vec2
	Z      int
}

// TileReset snaps a tile back to its resting cell.
type TileReset struct {
	Pos Position
}

// SwapCommitted reports that the tiles at A and B exchanged cells.
type SwapCommitted struct {
	A Position
	B Position
}

// SwapRejected reports a gesture that ended without creating a run.
type SwapRejected struct{}

func (TileVisualOffset) isNotification() {}
func (TileReset) isNotification()        {}
func (SwapCommitted) isNotification()    {}
func (SwapRejected) isNotification()     {}

func (n TileVisualOffset) String() string {
	return fmt.Sprintf("offset %s by (%.2f,%.2f) z=%d", n.Pos, n.Offset.X, n.Offset.Y, n.Z)
}

func (n TileReset) String() string {
	return fmt.Sprintf("reset %s", n.Pos)
}

func (n SwapCommitted) String() string {
	return fmt.Sprintf("swap %s <-> %s", n.A, n.B)
}

func (SwapRejected) String() string {
	return "swap rejected"
}
