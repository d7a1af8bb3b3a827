package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a key event. The raw key is always
// kept, so games that match symbols or digits see it even when no action
// is bound. isQuit reports a request to leave the host.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (ev core.InputEvent, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.KeyDown(key, core.ActionQuit), true
	}

	var action core.Action
	switch key {
	case "w", "up":
		action = core.ActionUp
	case "s", "down":
		action = core.ActionDown
	case "a", "left":
		action = core.ActionLeft
	case "d", "right":
		action = core.ActionRight
	case " ":
		action = core.ActionToggle
	case "enter":
		action = core.ActionConfirm
	case "b", "esc":
		action = core.ActionBack
	case "p":
		action = core.ActionPause
	case "r":
		action = core.ActionRestart
	}

	return core.KeyDown(key, action), false
}

// MapMouse translates a mouse message to a pointer event in screen cells.
// held tells whether the left button was down before this message; the
// returned bool is false for messages games do not care about.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, held bool) (core.InputEvent, bool) {
	pos := core.Vec{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.InputEvent{}, false
		}
		return core.PointerDown(pos), true
	case tea.MouseActionMotion:
		if !held {
			return core.InputEvent{}, false
		}
		return core.Drag(pos), true
	case tea.MouseActionRelease:
		if !held {
			return core.InputEvent{}, false
		}
		return core.DragEnd(pos), true
	}

	return core.InputEvent{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionTierDown
	MenuActionTierUp
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionTierDown
	case "d", "right", "l":
		return MenuActionTierUp
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
