package marble

import (
	"fmt"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Render draws the ramp grid, obstacles, goal, marble and HUD.
func (g *Game) Render(dst *core.Screen) {
	hint := fmt.Sprintf("Arrows move  Space ramp  Enter launch  Ramps: %d/%d", g.Progress, g.p.MaxRamps)
	if g.Phase == core.PhaseEvaluating {
		hint = "Rolling..."
	}
	g.DrawHUD(dst, g.Title(), hint)

	if g.Active() {
		r := g.BoxToScreen(g.cellBox(g.cursor.Index))
		dst.Pen(core.ColorGray)
		dst.DrawBox(r)
	}

	for cell, rp := range g.grid {
		if rp.slope == SlopeNone {
			continue
		}
		r := g.BoxToScreen(g.cellBox(cell))
		ch := '\\'
		if rp.slope == SlopeUp {
			ch = '/'
		}
		dst.Pen(core.ColorYellow)
		for i := 0; i < r.W; i++ {
			// Spread the glyph diagonally across the cell.
			y := r.Y + i*r.H/max(r.W, 1)
			if rp.slope == SlopeUp {
				y = r.Y + (r.W-1-i)*r.H/max(r.W, 1)
			}
			dst.Set(r.X+i, y, ch)
		}
	}

	dst.Pen(core.ColorGray)
	for _, ob := range g.obstacles {
		dst.DrawRect(g.BoxToScreen(ob), '▓')
	}

	gx, gy := g.ToScreen(g.goal)
	dst.DrawTextColor(gx-1, gy, "(◎)", core.ColorBrightGreen)

	dst.Pen(core.ColorBrightBlue)
	if g.Outcome == core.OutcomeLost {
		dst.Pen(core.ColorBrightRed)
	}
	mx, my := g.ToScreen(g.marble.Center())
	dst.Set(mx, my, '●')
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}
