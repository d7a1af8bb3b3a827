package dragfit

import (
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Canvas layout: tray on the left, board on the right.
const (
	pieceW  = 200
	pieceH  = 80
	trayX   = 40
	boardX  = 440
	topY    = 40
	rowStep = 130
)

func (g *Game) trayPos(i int) core.Vec {
	return core.Vec{X: trayX, Y: topY + float64(i)*g.rowStep()}
}

func (g *Game) rowStep() float64 {
	n := len(g.fittings)
	if n <= 4 {
		return rowStep
	}
	return (g.Config.CanvasH - topY) / float64(n)
}

func (g *Game) pieceBox(pos core.Vec) core.Box {
	return core.Box{X: pos.X, Y: pos.Y, W: pieceW, H: pieceH}
}

func (g *Game) slotBox(s int) core.Box {
	return core.Box{X: boardX, Y: topY + float64(s)*g.rowStep(), W: pieceW + 80, H: pieceH}
}

// Render draws the board, the pieces and the HUD.
func (g *Game) Render(dst *core.Screen) {
	hint := "Drag pieces onto slots  or  ←/→ + Space pick, Space drop"
	g.DrawHUD(dst, g.Title(), hint)

	for s, fit := range g.slots {
		box := g.slotBox(s)
		color := core.ColorGray
		if g.filled[s] {
			color = core.ColorGreen
		} else if g.holding && s == g.cursor.Index {
			color = core.ColorBrightYellow
		}
		dst.Pen(color)
		dst.DrawBox(g.BoxToScreen(box))
		r := g.BoxToScreen(box)
		dst.DrawTextColor(r.X+1, r.Y, g.fittings[fit].Slot, color)
	}

	// Draw the dragged piece last so it sits on top.
	order := make([]int, 0, len(g.pieces))
	for i := range g.pieces {
		if i != g.dragging {
			order = append(order, i)
		}
	}
	if g.dragging >= 0 {
		order = append(order, g.dragging)
	}

	for _, i := range order {
		p := g.pieces[i]
		box := g.pieceBox(p.pos)
		color := core.ColorWhite
		switch {
		case p.placed:
			color = core.ColorBrightGreen
		case g.holding && i == g.held, i == g.dragging:
			color = core.ColorCyan
		case !g.holding && i == g.cursor.Index:
			color = core.ColorBrightYellow
		}
		r := g.BoxToScreen(box)
		dst.Pen(color)
		dst.DrawRect(r, ' ')
		dst.DrawBox(r)
		g.Label(dst, box, g.fittings[p.fit].Piece, color)
	}
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}
