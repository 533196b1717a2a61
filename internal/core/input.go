package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor or drag up
	ActionDown           // S, J, Down arrow - move cursor or drag down
	ActionLeft           // A, H, Left arrow - move cursor or drag left
	ActionRight          // D, L, Right arrow - move cursor or drag right
	ActionConfirm        // Space, Enter - grab or release the tile under the cursor
	ActionCancel         // Escape, X - drop a grabbed tile without swapping
	ActionHint           // ? - highlight a valid swap
	ActionRestart        // R key - generate a fresh board
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// PointerKind distinguishes the phases of a pointer gesture.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMotion
	PointerRelease
	PointerCancel
)

// PointerEvent is a mouse event in screen cell coordinates.
// The platform translates terminal mouse messages into these; games map
// them onto their own board geometry.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}
