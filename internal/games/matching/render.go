package matching

import (
	"github.com/vovakirdan/tui-minilab/internal/core"
)

const (
	topY    = 20
	bottomY = 580
	marginX = 40
	colGap  = 80
	rowGap  = 8
)

func (g *Game) cellBox(col, row int) core.Box {
	n := float64(len(g.pairs))
	h := (bottomY - topY) / n
	w := (g.Config.CanvasW - 2*marginX - colGap) / 2
	x := marginX + float64(col)*(w+colGap)
	return core.Box{X: x, Y: topY + float64(row)*h, W: w, H: h - rowGap}
}

// Render draws both columns and the HUD.
func (g *Game) Render(dst *core.Screen) {
	g.DrawHUD(dst, g.Title(), "Pick a label, then its example  ←/→ column  Enter pick")

	for row := range g.labels {
		g.drawCell(dst, colLabels, row, g.labels[row], g.pairs[g.labels[row]].Label)
		g.drawCell(dst, colExamples, row, g.examples[row], g.pairs[g.examples[row]].Example)
	}
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}

func (g *Game) drawCell(dst *core.Screen, col, row, pair int, text string) {
	box := g.cellBox(col, row)
	color := core.ColorWhite
	switch {
	case g.matched[pair]:
		color = core.ColorGreen
	case col == colLabels && pair == g.selected:
		color = core.ColorCyan
	case col == g.col && row == g.row.Index:
		color = core.ColorBrightYellow
	}
	if g.Penalty.Active() && col == colExamples && row == g.row.Index {
		color = core.ColorBrightRed
	}
	r := g.BoxToScreen(box)
	dst.Pen(color)
	dst.DrawBox(r)
	g.Label(dst, box, text, color)
}
