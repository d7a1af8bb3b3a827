package assembly

import (
	"fmt"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Canvas layout.
const (
	buildY    = 80
	buildH    = 220
	trayY     = 420
	trayH     = 120
	marginX   = 20
	slotGapPx = 10
)

func (g *Game) trayBox(slot int) core.Box {
	n := float64(len(g.tray))
	w := (g.Config.CanvasW - 2*marginX) / n
	return core.Box{X: marginX + float64(slot)*w, Y: trayY, W: w - slotGapPx, H: trayH}
}

func (g *Game) buildBox(part int) core.Box {
	n := float64(len(g.parts))
	w := (g.Config.CanvasW - 2*marginX) / n
	return core.Box{X: marginX + float64(part)*w, Y: buildY, W: w - slotGapPx, H: buildH}
}

// Render draws the build area, the tray and the HUD.
func (g *Game) Render(dst *core.Screen) {
	hint := "←/→ select  Enter place  1-8 pick"
	if g.Active() && g.Progress < len(g.parts) {
		hint = fmt.Sprintf("Step %d: %s", g.Progress+1, g.parts[g.Progress].Hint)
	}
	g.DrawHUD(dst, g.Title(), hint)

	for i, p := range g.parts {
		box := g.buildBox(i)
		r := g.BoxToScreen(box)
		if g.placed[i] {
			dst.Pen(core.ColorGreen)
			dst.DrawBox(r)
			g.Label(dst, box, abbreviate(p.Name, r.W-2), core.ColorBrightGreen)
		} else {
			dst.Pen(core.ColorGray)
			dst.DrawBox(r)
			g.Label(dst, box, fmt.Sprintf("%d", i+1), core.ColorGray)
		}
	}

	for slot, part := range g.tray {
		box := g.trayBox(slot)
		r := g.BoxToScreen(box)
		color := core.ColorWhite
		if slot == g.cursor.Index {
			color = core.ColorBrightYellow
		}
		if g.placed[part] {
			color = core.ColorGray
		}
		dst.Pen(color)
		dst.DrawBox(r)
		name := g.parts[part].Name
		if g.placed[part] {
			name = "✓"
		}
		g.Label(dst, box, abbreviate(name, r.W-2), color)
	}
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}

// abbreviate trims s to at most n runes.
func abbreviate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
