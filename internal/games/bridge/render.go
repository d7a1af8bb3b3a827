package bridge

import (
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Render draws the platforms, beams, vehicle and HUD.
func (g *Game) Render(dst *core.Screen) {
	hint := "←/→ select  Space beam  Enter test"
	if g.Phase == core.PhaseEvaluating {
		hint = "Testing..."
	}
	g.DrawHUD(dst, g.Title(), hint)

	dst.Pen(core.ColorGray)
	dst.DrawRect(g.BoxToScreen(g.left), '▓')
	dst.DrawRect(g.BoxToScreen(g.right), '▓')

	for slot, beam := range g.beams {
		r := g.BoxToScreen(g.beamBox(slot))
		r.H = 1
		switch {
		case beam != nil:
			dst.Pen(core.ColorYellow)
			dst.DrawRect(r, '═')
		case g.Active():
			dst.Pen(core.ColorGray)
			dst.DrawRect(r, '·')
		}
		if g.Active() && slot == g.cursor.Index {
			dst.Pen(core.ColorBrightYellow)
			dst.DrawHLine(r.X, r.Y+1, r.W, '^')
		}
	}

	dst.Pen(core.ColorBrightBlue)
	if g.Outcome == core.OutcomeLost {
		dst.Pen(core.ColorBrightRed)
	}
	dst.DrawRect(g.BoxToScreen(g.vehicle.Box()), '█')
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}
