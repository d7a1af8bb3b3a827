// Package dragfit implements Drag-Assembly: drag each named piece onto the
// slot with the matching name.
package dragfit

import (
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

// Fitting is a piece and the slot it belongs in.
type Fitting struct {
	Piece string
	Slot  string
}

// Fittings is the pool a round draws from.
var Fittings = []Fitting{
	{"CPU", "CPU socket"},
	{"RAM stick", "DIMM slot"},
	{"Graphics card", "PCIe slot"},
	{"SSD", "M.2 slot"},
	{"Fan cable", "Fan header"},
	{"Power cable", "24-pin port"},
}

// piece is a draggable item.
type piece struct {
	fit    int      // index into fittings
	home   core.Vec // tray position (top-left)
	pos    core.Vec // current position (top-left)
	placed bool
}

// Game implements Drag-Assembly.
type Game struct {
	scene.Base

	fittings []Fitting
	pieces   []piece
	slots    []int // slot position -> fitting index
	filled   []bool

	dragging int      // piece index, -1 when idle
	grab     core.Vec // pointer offset inside the dragged piece

	holding bool // keyboard mode: a piece is picked up
	held    int
	cursor  scene.Cursor // over pieces, or over slots while holding
}

// New creates a new Drag-Assembly game.
func New() *Game {
	return &Game{dragging: -1}
}

func init() {
	registry.Register(config.GameDragFit, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameDragFit
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Plug It In"
}

// Reset lays out a fresh board.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	n := core.Clamp(sc.DragFit.Slots, 1, len(Fittings))
	g.Begin(sc, rt, n)

	g.fittings = Fittings[:n]
	g.slots = g.Shuffle(n)
	g.filled = make([]bool, n)

	order := g.Shuffle(n)
	g.pieces = make([]piece, n)
	for i, fit := range order {
		home := g.trayPos(i)
		g.pieces[i] = piece{fit: fit, home: home, pos: home}
	}

	g.dragging = -1
	g.holding = false
	g.cursor = scene.Cursor{N: n}
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
		g.dragging = -1
		for i := range g.pieces {
			p := &g.pieces[i]
			if !p.placed && g.pieceBox(p.pos).Contains(ev.Pos) {
				g.dragging = i
				g.grab = ev.Pos.Sub(p.pos)
				return
			}
		}
	case core.EventDrag:
		if g.dragging >= 0 {
			g.pieces[g.dragging].pos = ev.Pos.Sub(g.grab)
		}
	case core.EventDragEnd:
		if g.dragging >= 0 {
			i := g.dragging
			g.dragging = -1
			g.pieces[i].pos = ev.Pos.Sub(g.grab)
			g.drop(i)
		}
	case core.EventKeyDown:
		g.handleKey(ev)
	}
}

func (g *Game) handleKey(ev core.InputEvent) {
	if !scene.Picks(ev) {
		g.cursor.Steer(ev, 0)
		return
	}

	if !g.holding {
		if !g.pieces[g.cursor.Index].placed {
			g.held = g.cursor.Index
			g.holding = true
			g.cursor.Index = 0
		}
		return
	}

	// Drop the held piece onto the slot under the cursor.
	i, slot := g.held, g.cursor.Index
	g.holding = false
	g.cursor.Index = 0
	c := g.slotBox(slot).Center()
	g.pieces[i].pos = core.Vec{X: c.X - pieceW/2, Y: c.Y - pieceH/2}
	g.drop(i)
}

// drop evaluates a released piece against the nearest slot.
func (g *Game) drop(i int) {
	p := &g.pieces[i]
	center := g.pieceBox(p.pos).Center()

	slot, dist := -1, 0.0
	for s := range g.slots {
		d := core.Dist(center, g.slotBox(s).Center())
		if slot < 0 || d < dist {
			slot, dist = s, d
		}
	}

	if slot < 0 || dist > g.Config.DragFit.SnapRadius {
		// Dropped away from every slot: not an attempt.
		p.pos = p.home
		return
	}

	g.Phase = core.PhaseEvaluating
	if g.filled[slot] || g.slots[slot] != p.fit {
		g.Reject()
		p.pos = p.home
		g.Phase = core.PhaseActive
		return
	}

	sc := g.slotBox(slot).Center()
	p.pos = core.Vec{X: sc.X - pieceW/2, Y: sc.Y - pieceH/2}
	p.placed = true
	g.filled[slot] = true
	g.Progress++
	g.Score += 10

	if g.Progress == len(g.slots) {
		g.Finish(core.OutcomeWon)
		return
	}
	g.Phase = core.PhaseActive
}

// SlotOf returns the slot position expecting the given piece.
func (g *Game) SlotOf(i int) int {
	for s, fit := range g.slots {
		if fit == g.pieces[i].fit {
			return s
		}
	}
	return -1
}
