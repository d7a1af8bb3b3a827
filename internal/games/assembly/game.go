// Package assembly implements Ordered Assembly: build a computer by placing
// its parts in the one order that works, before the countdown runs out.
package assembly

import (
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

// Part is one component of the build.
type Part struct {
	Name string
	Hint string
}

// Parts lists every part in canonical build order. A tier uses a prefix.
var Parts = []Part{
	{"Case", "Everything else is mounted inside it"},
	{"Power Supply", "Feeds electricity to every other part"},
	{"Motherboard", "The board every chip plugs into"},
	{"CPU", "The brain that runs instructions"},
	{"CPU Cooler", "Keeps the brain from overheating"},
	{"RAM", "Short-term memory for running programs"},
	{"Storage", "Keeps files when the power is off"},
	{"Graphics Card", "Draws the picture on the screen"},
}

// Points awarded per placed part; seconds left are added on completion.
const pointsPerPart = 10

// Game implements Ordered Assembly.
type Game struct {
	scene.Base

	parts  []Part
	placed []bool
	tray   []int // tray slot -> part index, shuffled
	cursor scene.Cursor
}

// New creates a new Ordered Assembly game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameAssembly, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameAssembly
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Build a PC"
}

// Reset builds a fresh round from the tier parameters.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	n := core.Clamp(sc.Assembly.Parts, 1, len(Parts))

	g.Begin(sc, rt, n)
	g.StartCountdown(sc.Assembly.TimerSeconds)

	g.parts = Parts[:n]
	g.placed = make([]bool, n)
	g.tray = g.Shuffle(n)
	g.cursor = scene.Cursor{N: n}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Frame(in) {
		return g.Result()
	}

	if g.Expired() {
		g.Finish(core.OutcomeLost)
		return g.Result()
	}

	for _, ev := range in.Events {
		if !g.Active() {
			break
		}
		g.handle(ev)
	}

	return g.Result()
}

func (g *Game) handle(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventPointerDown:
		for slot := range g.tray {
			if g.trayBox(slot).Contains(ev.Pos) {
				g.cursor.Index = slot
				g.place(slot)
				return
			}
		}
	case core.EventKeyDown:
		if d, ok := scene.Digit(ev); ok && d >= 1 && d <= len(g.tray) {
			g.cursor.Index = d - 1
			g.place(d - 1)
			return
		}
		if scene.Picks(ev) {
			g.place(g.cursor.Index)
			return
		}
		g.cursor.Steer(ev, 1)
	}
}

// place tries to put the part in the given tray slot into the build.
func (g *Game) place(slot int) {
	part := g.tray[slot]
	if g.placed[part] {
		return
	}

	g.Phase = core.PhaseEvaluating
	if part != g.Progress {
		g.Reject()
		g.Phase = core.PhaseActive
		return
	}

	g.placed[part] = true
	g.Progress++
	g.Score += pointsPerPart

	if g.Progress == len(g.parts) {
		g.Score += g.Clock.Seconds()
		g.Finish(core.OutcomeWon)
		return
	}
	g.Phase = core.PhaseActive
}

// Placed reports whether every part has been placed.
func (g *Game) Placed() []bool {
	return append([]bool(nil), g.placed...)
}

// Tray returns the shuffled tray order as part indexes.
func (g *Game) Tray() []int {
	return append([]int(nil), g.tray...)
}
