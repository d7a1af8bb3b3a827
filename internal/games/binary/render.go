package binary

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

const (
	bitsY   = 220
	bitsH   = 120
	marginX = 40
	checkY  = 440
	checkW  = 200
	checkH  = 80
)

func (g *Game) bitBox(pos int) core.Box {
	w := (g.Config.CanvasW - 2*marginX) / float64(len(g.bits))
	return core.Box{X: marginX + float64(pos)*w, Y: bitsY, W: w - 8, H: bitsH}
}

func (g *Game) checkBox() core.Box {
	return core.Box{X: (g.Config.CanvasW - checkW) / 2, Y: checkY, W: checkW, H: checkH}
}

// Render draws the target, the bit switches and the HUD.
func (g *Game) Render(dst *core.Screen) {
	g.DrawHUD(dst, g.Title(), "0-9 flip bit  ←/→ + Space flip  Enter check")

	tx, ty := g.ToScreen(core.Vec{X: g.Config.CanvasW / 2, Y: 80})
	target := fmt.Sprintf("Build the number %d", g.target)
	color := core.ColorBrightYellow
	if g.Phase == core.PhaseEvaluating {
		target = fmt.Sprintf("%d = %d  ✓", g.Value(), g.target)
		color = core.ColorBrightGreen
	}
	dst.DrawTextColor(tx-len([]rune(target))/2, ty, target, color)

	for pos := range g.bits {
		i := g.bitAt(pos)
		box := g.bitBox(pos)
		r := g.BoxToScreen(box)

		c := core.ColorGray
		face := "0"
		if g.bits[i] {
			c = core.ColorBrightGreen
			face = "1"
		}
		if pos == g.cursor.Index {
			c = core.ColorBrightYellow
		}
		dst.Pen(c)
		dst.DrawBox(r)
		g.Label(dst, box, face, c)
		dst.DrawTextColor(r.X+1, r.Y+r.H, strconv.Itoa(1<<i), core.ColorGray)
	}

	box := g.checkBox()
	dst.Pen(core.ColorWhite)
	dst.DrawBox(g.BoxToScreen(box))
	g.Label(dst, box, fmt.Sprintf("= %d", g.Value()), core.ColorWhite)
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}
