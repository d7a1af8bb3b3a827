// Package bridge implements the Physics Structure-Span game: lay beams
// across a gap, then drive a vehicle over them.
package bridge

import (
	"github.com/solarlune/resolv"
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/physics"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

const (
	vehicleStartX = 40
	pointsPerBeam = 10
	worldPadding  = 200
)

// Game implements the Physics Structure-Span game.
type Game struct {
	scene.Base

	p       config.BridgeParams
	world   *physics.World
	vehicle *physics.Body
	left    core.Box
	right   core.Box
	beams   []*resolv.Object // per slot, nil when empty
	cursor  scene.Cursor

	simTicks int
}

// New creates a new bridge game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameBridge, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameBridge
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bridge Builder"
}

// Reset rebuilds the platforms, clears every beam and parks the vehicle.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	g.p = sc.Bridge
	slots := 1
	if g.p.BeamWidth > 0 {
		slots = max(int(g.p.Gap/g.p.BeamWidth), 1)
	}
	g.Begin(sc, rt, slots)

	g.world = physics.NewWorld(sc.CanvasW+worldPadding, sc.CanvasH+worldPadding)
	ground := sc.CanvasH - g.p.DeckY
	g.left = core.Box{X: 0, Y: g.p.DeckY, W: g.p.PlatformWidth, H: ground}
	rightX := g.p.PlatformWidth + float64(slots)*g.p.BeamWidth
	g.right = core.Box{X: rightX, Y: g.p.DeckY, W: max(sc.CanvasW-rightX, g.p.VehicleW), H: ground}
	g.world.AddStatic(g.left, physics.TagSolid)
	g.world.AddStatic(g.right, physics.TagSolid)

	g.beams = make([]*resolv.Object, slots)
	g.cursor = scene.Cursor{N: slots}

	g.vehicle = g.world.NewBody(g.startBox(), g.p.VehicleMass)
	g.simTicks = 0
}

func (g *Game) startBox() core.Box {
	return core.Box{X: vehicleStartX, Y: g.p.DeckY - g.p.VehicleH, W: g.p.VehicleW, H: g.p.VehicleH}
}

func (g *Game) beamBox(slot int) core.Box {
	return core.Box{
		X: g.p.PlatformWidth + float64(slot)*g.p.BeamWidth,
		Y: g.p.DeckY,
		W: g.p.BeamWidth,
		H: g.p.BeamHeight,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Frame(in) {
		return g.Result()
	}

	switch g.Phase {
	case core.PhaseActive:
		for _, ev := range in.Events {
			if !g.Active() {
				break
			}
			g.handle(ev)
		}
	case core.PhaseEvaluating:
		g.simulate()
	}
	return g.Result()
}

func (g *Game) handle(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventPointerDown:
		for slot := range g.beams {
			b := g.beamBox(slot)
			// Accept clicks anywhere in the column above or below the slot.
			if ev.Pos.X >= b.X && ev.Pos.X < b.X+b.W {
				g.cursor.Index = slot
				g.ToggleBeam(slot)
				return
			}
		}
	case core.EventKeyDown:
		switch ev.Action {
		case core.ActionToggle:
			g.ToggleBeam(g.cursor.Index)
		case core.ActionConfirm:
			g.Launch()
		default:
			g.cursor.Steer(ev, 0)
		}
	}
}

// ToggleBeam places or removes the beam in a slot.
func (g *Game) ToggleBeam(slot int) {
	if slot < 0 || slot >= len(g.beams) || !g.Active() {
		return
	}
	if g.beams[slot] != nil {
		g.world.Remove(g.beams[slot])
		g.beams[slot] = nil
		g.Progress--
		return
	}
	g.beams[slot] = g.world.AddStatic(g.beamBox(slot), physics.TagSolid)
	g.Progress++
}

// Launch starts the test run. Beams are fixed until the run ends.
func (g *Game) Launch() {
	if !g.Active() {
		return
	}
	g.vehicle.Place(core.Vec{X: vehicleStartX, Y: g.p.DeckY - g.p.VehicleH})
	g.simTicks = 0
	g.Phase = core.PhaseEvaluating
}

func (g *Game) simulate() {
	g.simTicks++

	force := core.Vec{X: g.p.Force}
	g.vehicle.Step(force, g.Config.Gravity, 1, physics.TagSolid)
	if g.p.MaxSpeed > 0 {
		g.vehicle.Vel.X = core.ClampF(g.vehicle.Vel.X, -g.p.MaxSpeed, g.p.MaxSpeed)
	}

	// Lose is checked first; the two predicates cannot both hold.
	switch {
	case g.Lost():
		g.Finish(core.OutcomeLost)
	case g.Won():
		g.Score = g.Progress * pointsPerBeam
		g.Finish(core.OutcomeWon)
	case g.simTicks >= g.simLimit():
		// The vehicle stalled; let the player change the bridge.
		g.vehicle.Place(core.Vec{X: vehicleStartX, Y: g.p.DeckY - g.p.VehicleH})
		g.Phase = core.PhaseActive
	}
}

func (g *Game) simLimit() int {
	secs := g.p.MaxSimSeconds
	if secs <= 0 {
		secs = 20
	}
	return secs * g.TickRate
}

// Won reports whether the vehicle reached the far platform upright.
func (g *Game) Won() bool {
	v := g.vehicle
	return v.Pos.X+v.W >= g.right.X+g.p.WinMargin &&
		v.Pos.Y <= g.p.CollapseLine() &&
		v.Vel.Y <= g.p.FallThreshold
}

// Lost reports whether the vehicle dropped below the deck or is falling.
func (g *Game) Lost() bool {
	v := g.vehicle
	return v.Pos.Y > g.p.CollapseLine() || v.Vel.Y > g.p.FallThreshold
}

// Beams reports which slots hold a beam.
func (g *Game) Beams() []bool {
	out := make([]bool, len(g.beams))
	for i, b := range g.beams {
		out[i] = b != nil
	}
	return out
}
