package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"vim down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, core.ActionDown},
		{"wasd left", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"space grabs", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm},
		{"enter grabs", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"escape cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel},
		{"hint", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, core.ActionHint},
		{"pause", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause},
		{"restart", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, want %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Error("left should not quit")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("frame should contain ActionLeft")
	}

	if !keys.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c should quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is not a frame action")
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		kind core.PointerKind
		ok   bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.PointerPress, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.PointerCancel, true},
		{"motion", tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, core.PointerMotion, true},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}, core.PointerRelease, true},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := MapMouse(tc.msg)
			if ok != tc.ok {
				t.Fatalf("MapMouse ok = %v, want %v", ok, tc.ok)
			}
			if ok && ev.Kind != tc.kind {
				t.Errorf("Kind = %v, want %v", ev.Kind, tc.kind)
			}
			if ev.X != tc.msg.X || ev.Y != tc.msg.Y {
				t.Errorf("position = (%d, %d), want (%d, %d)", ev.X, ev.Y, tc.msg.X, tc.msg.Y)
			}
		})
	}
}
