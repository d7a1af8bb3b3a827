// Package marble implements the Physics Path-Builder game: place ramps on
// a grid so a launched marble rolls into the goal.
package marble

import (
	"github.com/solarlune/resolv"
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/physics"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

const (
	rampThickness  = 6
	obstacleW      = 20
	obstacleH      = 120
	bounce         = 0.5
	scoreBase      = 50
	pointsPerSpare = 10
	worldPadding   = 400
)

// Slope of a ramp cell.
type Slope int

const (
	SlopeNone Slope = iota
	SlopeDown       // "\" rolls the marble right
	SlopeUp         // "/" rolls the marble left
)

// next cycles none -> \ -> / -> none.
func (s Slope) next() Slope {
	return (s + 1) % 3
}

// dir is the horizontal roll direction.
func (s Slope) dir() float64 {
	switch s {
	case SlopeDown:
		return 1
	case SlopeUp:
		return -1
	}
	return 0
}

type ramp struct {
	slope Slope
	obj   *resolv.Object
}

// Game implements the Physics Path-Builder game.
type Game struct {
	scene.Base

	p         config.MarbleParams
	world     *physics.World
	marble    *physics.Body
	cols      int
	rows      int
	grid      []ramp
	slopes    map[*resolv.Object]Slope
	obstacles []core.Box
	goal      core.Vec
	cursor    scene.Cursor

	simTicks int
}

// New creates a new marble game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameMarble, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameMarble
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Marble Run"
}

// Reset clears the grid and lays out the goal and obstacles for the tier.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	g.Begin(sc, rt, 0)
	g.p = sc.Marble

	cs := g.p.CellSize
	if cs <= 0 {
		cs = 100
		g.p.CellSize = cs
	}
	g.cols = max(int(sc.CanvasW/cs), 1)
	g.rows = max(int(sc.CanvasH/cs), 1)
	g.grid = make([]ramp, g.cols*g.rows)
	g.slopes = make(map[*resolv.Object]Slope)
	g.cursor = scene.Cursor{N: len(g.grid)}

	g.world = physics.NewWorld(sc.CanvasW+worldPadding, sc.CanvasH+worldPadding)
	g.goal = core.Vec{X: g.p.StartX + g.p.GoalDistance, Y: g.p.DropLine - 2*g.p.GoalRadius}

	g.obstacles = g.obstacles[:0]
	n := g.p.Obstacles
	for i := 0; i < n; i++ {
		x := g.p.StartX + g.p.GoalDistance*float64(i+1)/float64(n+1)
		box := core.Box{X: x - obstacleW/2, Y: g.goal.Y - obstacleH - 20, W: obstacleW, H: obstacleH}
		g.obstacles = append(g.obstacles, box)
		g.world.AddStatic(box, physics.TagObstacle)
	}

	size := g.p.MarbleSize
	g.marble = g.world.NewBody(core.Box{X: g.p.StartX, Y: g.p.StartY, W: size, H: size}, 1)
	g.simTicks = 0
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
		if cell, ok := g.cellAt(ev.Pos); ok {
			g.cursor.Index = cell
			g.Cycle(cell)
		}
	case core.EventKeyDown:
		switch ev.Action {
		case core.ActionToggle:
			g.Cycle(g.cursor.Index)
		case core.ActionConfirm:
			g.Launch()
		default:
			g.cursor.Steer(ev, g.cols)
		}
	}
}

func (g *Game) cellAt(p core.Vec) (int, bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, false
	}
	col, row := int(p.X/g.p.CellSize), int(p.Y/g.p.CellSize)
	if col >= g.cols || row >= g.rows {
		return 0, false
	}
	return row*g.cols + col, true
}

func (g *Game) cellBox(cell int) core.Box {
	cs := g.p.CellSize
	col, row := cell%g.cols, cell/g.cols
	return core.Box{X: float64(col) * cs, Y: float64(row) * cs, W: cs, H: cs}
}

func (g *Game) rampBox(cell int) core.Box {
	b := g.cellBox(cell)
	return core.Box{X: b.X, Y: b.Y + b.H/2 - rampThickness/2, W: b.W, H: rampThickness}
}

// Blocked reports whether a cell holds the launch point or the goal.
func (g *Game) Blocked(cell int) bool {
	b := g.cellBox(cell)
	return b.Contains(core.Vec{X: g.p.StartX, Y: g.p.StartY}) || b.Contains(g.goal)
}

// Cycle rotates the ramp in a cell through none, "\" and "/".
// Blocked cells and ramps beyond the limit are rejected.
func (g *Game) Cycle(cell int) {
	if cell < 0 || cell >= len(g.grid) || !g.Active() {
		return
	}
	if g.Blocked(cell) {
		g.Reject()
		return
	}

	r := &g.grid[cell]
	if r.slope == SlopeNone && g.p.MaxRamps > 0 && g.Progress >= g.p.MaxRamps {
		g.Reject()
		return
	}

	r.slope = r.slope.next()
	switch r.slope {
	case SlopeNone:
		delete(g.slopes, r.obj)
		g.world.Remove(r.obj)
		r.obj = nil
		g.Progress--
	case SlopeDown:
		r.obj = g.world.AddStatic(g.rampBox(cell), physics.TagSolid)
		g.Progress++
	}
	if r.obj != nil {
		g.slopes[r.obj] = r.slope
	}
}

// Launch fires the marble from the start point. Ramps are fixed until
// the run ends.
func (g *Game) Launch() {
	if !g.Active() {
		return
	}
	g.resetMarble()
	g.marble.Vel.X = g.p.LaunchVelocity
	g.simTicks = 0
	g.Phase = core.PhaseEvaluating
}

func (g *Game) resetMarble() {
	g.marble.Place(core.Vec{X: g.p.StartX, Y: g.p.StartY})
}

func (g *Game) simulate() {
	g.simTicks++

	c := g.marble.Step(core.Vec{}, g.Config.Gravity, 1, physics.TagSolid, physics.TagObstacle)
	if c.X != nil {
		g.marble.Vel.X = -c.ImpactVX * bounce
	}
	if c.Y != nil && g.marble.OnGround {
		g.marble.Vel.X += g.slopes[c.Y].dir() * g.Config.Gravity.Y / 2
	}

	// Lose is checked first; the two predicates cannot both hold.
	switch {
	case g.Lost():
		g.Finish(core.OutcomeLost)
	case g.Won():
		spare := max(g.p.MaxRamps-g.Progress, 0)
		g.Score = scoreBase + spare*pointsPerSpare
		g.Finish(core.OutcomeWon)
	case g.simTicks >= g.simLimit():
		g.resetMarble()
		g.Phase = core.PhaseActive
	}
}

func (g *Game) simLimit() int {
	secs := g.p.MaxSimSeconds
	if secs <= 0 {
		secs = 15
	}
	return secs * g.TickRate
}

// Lost reports whether the marble dropped past the drop line.
func (g *Game) Lost() bool {
	return g.marble.Pos.Y > g.p.DropLine
}

// Won reports whether the marble reached the goal above the drop line.
func (g *Game) Won() bool {
	return !g.Lost() && core.Dist(g.marble.Center(), g.goal) <= g.p.GoalRadius
}

// Slopes returns the ramp in every cell, row by row.
func (g *Game) Slopes() []Slope {
	out := make([]Slope, len(g.grid))
	for i, r := range g.grid {
		out[i] = r.slope
	}
	return out
}
