package reaction

import (
	"strings"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

const (
	buttonY = 440
	buttonH = 100
	marginX = 40
)

func (g *Game) buttonBox(i int) core.Box {
	w := (g.Config.CanvasW - 2*marginX) / float64(len(g.symbols))
	return core.Box{X: marginX + float64(i)*w, Y: buttonY, W: w - 10, H: buttonH}
}

// Render draws the symbol to press, the key row and the HUD.
func (g *Game) Render(dst *core.Screen) {
	g.DrawHUD(dst, g.Title(), "Press the key shown in the box")

	big := core.Box{X: g.Config.CanvasW/2 - 100, Y: 100, W: 200, H: 200}
	color := core.ColorBrightYellow
	if g.Penalty.Active() {
		color = core.ColorBrightRed
	}
	dst.Pen(color)
	dst.DrawBox(g.BoxToScreen(big))
	g.Label(dst, big, strings.ToUpper(g.Current()), color)

	for i, s := range g.symbols {
		box := g.buttonBox(i)
		dst.Pen(core.ColorGray)
		dst.DrawBox(g.BoxToScreen(box))
		g.Label(dst, box, strings.ToUpper(s), core.ColorWhite)
	}
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}
