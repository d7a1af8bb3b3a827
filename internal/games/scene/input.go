package scene

import "github.com/vovakirdan/tui-minilab/internal/core"

// Digit returns the value of a "0".."9" key event.
func Digit(ev core.InputEvent) (int, bool) {
	if ev.Kind != core.EventKeyDown || len(ev.Key) != 1 {
		return 0, false
	}
	c := ev.Key[0]
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

// Cursor is a wrapping selection index over n items.
type Cursor struct {
	Index int
	N     int
}

// Move shifts the cursor by delta, wrapping around.
func (c *Cursor) Move(delta int) {
	if c.N <= 0 {
		c.Index = 0
		return
	}
	c.Index = ((c.Index+delta)%c.N + c.N) % c.N
}

// Steer applies directional key events to the cursor. Vertical moves
// shift by rowLen so grids and single rows share one implementation.
func (c *Cursor) Steer(ev core.InputEvent, rowLen int) bool {
	if ev.Kind != core.EventKeyDown {
		return false
	}
	switch ev.Action {
	case core.ActionLeft:
		c.Move(-1)
	case core.ActionRight:
		c.Move(1)
	case core.ActionUp:
		c.Move(-rowLen)
	case core.ActionDown:
		c.Move(rowLen)
	default:
		return false
	}
	return true
}

// Picks reports whether ev selects the item under the cursor.
func Picks(ev core.InputEvent) bool {
	return ev.Kind == core.EventKeyDown &&
		(ev.Action == core.ActionToggle || ev.Action == core.ActionConfirm)
}
