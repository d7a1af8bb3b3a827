package scene

import (
	"fmt"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// DrawHUD draws the title on the left and status on the right of row 0,
// and a hint on row 1.
func (b *Base) DrawHUD(dst *core.Screen, title, hint string) {
	dst.DrawTextColor(0, 0, title, core.ColorBrightBlue)

	status := fmt.Sprintf("Score: %d", b.Score)
	if b.Goal > 0 {
		status = fmt.Sprintf("%d/%d  %s", b.Progress, b.Goal, status)
	}
	if b.timed {
		status = fmt.Sprintf("%s  Time: %ds", status, b.Clock.Seconds())
	}
	color := core.ColorWhite
	if b.Penalty.Active() {
		color = core.ColorBrightRed
	}
	dst.DrawTextColor(dst.Width()-len(status)-1+b.Penalty.Offset(), 0, status, color)

	dst.DrawTextColor(0, 1, hint, core.ColorGray)
}

// DrawOverlay draws the pause, too-small or terminal overlay when one
// applies. It returns true when an overlay was drawn.
func (b *Base) DrawOverlay(dst *core.Screen) bool {
	switch {
	case b.tooSmall:
		dst.Clear()
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal")
		return true
	case b.Phase == core.PhaseTerminal:
		dst.Pen(outcomeColor(b.Outcome))
		dst.DrawMessage(b.terminalTitle(), "R: retry   B: exit")
		dst.Pen(core.ColorDefault)
		return true
	case b.Paused:
		dst.DrawMessage("PAUSED", "P: resume")
		return true
	}
	return false
}

func (b *Base) terminalTitle() string {
	switch b.Outcome {
	case core.OutcomeWon:
		return fmt.Sprintf("COMPLETE!  Score: %d", b.Score)
	case core.OutcomeLost:
		if b.Expired() {
			return "TIME'S UP"
		}
		return "TRY AGAIN"
	default:
		return fmt.Sprintf("FINISHED  Score: %d", b.Score)
	}
}

func outcomeColor(o core.Outcome) core.Color {
	switch o {
	case core.OutcomeWon:
		return core.ColorBrightGreen
	case core.OutcomeLost:
		return core.ColorBrightRed
	default:
		return core.ColorBrightYellow
	}
}

// ToScreen converts a canvas point to a screen cell, shaken by the penalty.
func (b *Base) ToScreen(p core.Vec) (int, int) {
	x, y := b.Viewport().ToCell(p)
	return x + b.Penalty.Offset(), y
}

// BoxToScreen converts a canvas box to screen cells, shaken by the penalty.
func (b *Base) BoxToScreen(box core.Box) core.Rect {
	r := b.Viewport().BoxToRect(box)
	r.X += b.Penalty.Offset()
	return r
}

// Label draws text centered on a canvas box.
func (b *Base) Label(dst *core.Screen, box core.Box, text string, c core.Color) {
	r := b.BoxToScreen(box)
	x := r.X + (r.W-len([]rune(text)))/2
	y := r.Y + r.H/2
	dst.DrawTextColor(x, y, text, c)
}
