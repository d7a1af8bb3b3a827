package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games see both the raw key (for symbol-matching games) and this action.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionToggle         // Space - place/toggle at cursor
	ActionConfirm        // Enter - submit, launch, test
	ActionBack           // B, Escape - leave the scene
	ActionRestart        // R - retry after a terminal state
	ActionPause          // P - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit the host
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
	case ActionToggle:
		return "Toggle"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// EventKind distinguishes raw input events forwarded by the host.
type EventKind int

const (
	EventNone EventKind = iota
	EventPointerDown
	EventDrag
	EventDragEnd
	EventKeyDown
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventDrag:
		return "drag"
	case EventDragEnd:
		return "drag-end"
	case EventKeyDown:
		return "key-down"
	default:
		return "none"
	}
}

// InputEvent is a single host input event.
// Pointer events carry canvas coordinates in Pos; key events carry the
// key name (e.g. "a", "enter", "left") and its mapped Action.
type InputEvent struct {
	Kind   EventKind
	Pos    Vec
	Key    string
	Action Action
}

// PointerDown builds a pointer-down event at canvas position p.
func PointerDown(p Vec) InputEvent {
	return InputEvent{Kind: EventPointerDown, Pos: p}
}

// Drag builds a drag event at canvas position p.
func Drag(p Vec) InputEvent {
	return InputEvent{Kind: EventDrag, Pos: p}
}

// DragEnd builds a drag-end (release) event at canvas position p.
func DragEnd(p Vec) InputEvent {
	return InputEvent{Kind: EventDragEnd, Pos: p}
}

// KeyDown builds a key event.
func KeyDown(key string, action Action) InputEvent {
	return InputEvent{Kind: EventKeyDown, Key: key, Action: action}
}

// InputFrame holds every input event delivered during one simulation tick,
// in arrival order.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(events ...InputEvent) InputFrame {
	return InputFrame{Events: events}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(ev InputEvent) {
	f.Events = append(f.Events, ev)
}

// Has returns true if a key event with the given action arrived this frame.
func (f InputFrame) Has(a Action) bool {
	for _, ev := range f.Events {
		if ev.Kind == EventKeyDown && ev.Action == a {
			return true
		}
	}
	return false
}

// Empty reports whether no events arrived.
func (f InputFrame) Empty() bool {
	return len(f.Events) == 0
}

// Clear resets the frame for the next tick, keeping capacity.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}
