// Package binary implements the Binary-Value Builder: switch bits on and off
// until they spell the decimal target.
package binary

import (
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

const (
	pointsPerTarget = 10
	feedbackTicks   = 20 // pause between a correct answer and the next target
)

// Value returns the sum of 2^i over every set bit i.
func Value(bits []bool) int {
	v := 0
	for i, on := range bits {
		if on {
			v |= 1 << i
		}
	}
	return v
}

// Game implements the Binary-Value Builder.
type Game struct {
	scene.Base

	bits   []bool // bits[i] is worth 2^i
	target int
	cursor scene.Cursor // display position, 0 is the most significant bit
}

// New creates a new Binary-Value Builder game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameBinary, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameBinary
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Binary Builder"
}

// Reset starts a round with all bits off and a fresh target.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	g.Begin(sc, rt, sc.Binary.Targets)

	g.bits = make([]bool, sc.Binary.Bits)
	g.cursor = scene.Cursor{N: sc.Binary.Bits}
	g.target = 0
	g.nextTarget()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Frame(in) {
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
		for pos := range g.bits {
			if g.bitBox(pos).Contains(ev.Pos) {
				g.cursor.Index = pos
				g.Toggle(g.bitAt(pos))
				return
			}
		}
		if g.checkBox().Contains(ev.Pos) {
			g.submit()
		}
	case core.EventKeyDown:
		if d, ok := scene.Digit(ev); ok {
			if d < len(g.bits) {
				g.Toggle(d)
			}
			return
		}
		switch ev.Action {
		case core.ActionToggle:
			g.Toggle(g.bitAt(g.cursor.Index))
		case core.ActionConfirm:
			g.submit()
		default:
			g.cursor.Steer(ev, 0)
		}
	}
}

// bitAt maps a display position to a bit index.
func (g *Game) bitAt(pos int) int {
	return len(g.bits) - 1 - pos
}

// Toggle flips bit i. Out of range indexes are ignored.
func (g *Game) Toggle(i int) {
	if i < 0 || i >= len(g.bits) || !g.Active() {
		return
	}
	g.bits[i] = !g.bits[i]
}

// Value returns the number the bits currently spell.
func (g *Game) Value() int {
	return Value(g.bits)
}

// Target returns the number to build.
func (g *Game) Target() int {
	return g.target
}

func (g *Game) submit() {
	g.Phase = core.PhaseEvaluating
	if g.Value() != g.target {
		g.Reject()
		g.Phase = core.PhaseActive
		return
	}

	g.Progress++
	g.Score += pointsPerTarget
	if g.Progress >= g.Goal {
		g.Finish(core.OutcomeWon)
		return
	}

	// Stay in Evaluating while the correct answer is shown.
	g.Timers.After(feedbackTicks, func() {
		g.nextTarget()
		g.Phase = core.PhaseActive
	})
}

func (g *Game) nextTarget() {
	for i := range g.bits {
		g.bits[i] = false
	}
	hi := g.Config.Binary.MaxTarget()
	if hi < 1 {
		g.target = 0
		return
	}
	prev := g.target
	for {
		g.target = 1 + g.RNG.Intn(hi)
		if g.target != prev || hi == 1 {
			return
		}
	}
}
