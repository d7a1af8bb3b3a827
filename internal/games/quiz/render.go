package quiz

import (
	"fmt"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

func (g *Game) buttonBox(i int) core.Box {
	return core.Box{X: 160 + float64(i)*280, Y: 380, W: 200, H: 100}
}

// Render draws the prompt, the two answers and the HUD.
func (g *Game) Render(dst *core.Screen) {
	g.DrawHUD(dst, g.Title(), "Y / N  or  ←/→ + Enter")

	if s := g.Current(); s != nil {
		x, y := g.ToScreen(core.Vec{X: 40, Y: 120})
		dst.DrawTextColor(x, y, fmt.Sprintf("Question %d of %d", g.Progress+1, len(g.scenarios)), core.ColorGray)
		for i, line := range wrap(s.Prompt, dst.Width()-2*x) {
			dst.DrawTextColor(x, y+2+i, line, core.ColorWhite)
		}
	}

	for i, text := range []string{"YES", "NO"} {
		box := g.buttonBox(i)
		color := core.ColorWhite
		if i == g.choice.Index {
			color = core.ColorBrightYellow
		}
		if g.Penalty.Active() && i == g.choice.Index {
			color = core.ColorBrightRed
		}
		dst.Pen(color)
		dst.DrawBox(g.BoxToScreen(box))
		g.Label(dst, box, text, color)
	}
	dst.Pen(core.ColorDefault)

	g.DrawOverlay(dst)
}

// wrap splits text into lines of at most width runes on spaces.
func wrap(text string, width int) []string {
	if width < 10 {
		width = 10
	}
	var lines []string
	line := ""
	word := ""
	flush := func() {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
		word = ""
	}
	for _, r := range text {
		if r == ' ' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
