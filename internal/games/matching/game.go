// Package matching implements Matching Pairs: pick a label, then the
// example that belongs to it.
package matching

import (
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

// Pair is a label and the example that matches it.
type Pair struct {
	Label   string
	Example string
}

// Pool is every pair a round can draw from.
var Pool = []Pair{
	{"Input device", "Keyboard"},
	{"Output device", "Monitor"},
	{"Long-term storage", "SSD"},
	{"Processor", "CPU"},
	{"Network device", "Router"},
	{"Working memory", "RAM"},
	{"Application", "Web browser"},
	{"Power source", "Battery"},
}

const (
	colLabels   = 0
	colExamples = 1
)

// Game implements Matching Pairs.
type Game struct {
	scene.Base

	pairs    []Pair
	labels   []int // row -> pair index
	examples []int // row -> pair index
	matched  []bool

	selected int // pair index of the picked label, -1 when none
	col      int
	row      scene.Cursor
}

// New creates a new Matching Pairs game.
func New() *Game {
	return &Game{selected: -1}
}

func init() {
	registry.Register(config.GameMatching, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameMatching
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Matching Pairs"
}

// Reset draws the round's pairs and shuffles both columns.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	n := core.Clamp(sc.Matching.Pairs, 1, len(Pool))
	g.Begin(sc, rt, n)

	g.pairs = make([]Pair, n)
	for i, p := range g.Shuffle(len(Pool))[:n] {
		g.pairs[i] = Pool[p]
	}
	g.labels = g.Shuffle(n)
	g.examples = g.Shuffle(n)
	g.matched = make([]bool, n)
	g.selected = -1
	g.col = colLabels
	g.row = scene.Cursor{N: n}
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
		for row := range g.labels {
			if g.cellBox(colLabels, row).Contains(ev.Pos) {
				g.col, g.row.Index = colLabels, row
				g.pickLabel(g.labels[row])
				return
			}
			if g.cellBox(colExamples, row).Contains(ev.Pos) {
				g.col, g.row.Index = colExamples, row
				g.pickExample(g.examples[row])
				return
			}
		}
	case core.EventKeyDown:
		switch {
		case scene.Picks(ev):
			if g.col == colLabels {
				g.pickLabel(g.labels[g.row.Index])
			} else {
				g.pickExample(g.examples[g.row.Index])
			}
		case ev.Action == core.ActionLeft || ev.Action == core.ActionRight:
			g.col = 1 - g.col
		default:
			g.row.Steer(ev, 1)
		}
	}
}

func (g *Game) pickLabel(pair int) {
	if g.matched[pair] {
		return
	}
	g.selected = pair
	g.col = colExamples
}

func (g *Game) pickExample(pair int) {
	if g.selected < 0 || g.matched[pair] {
		return
	}

	g.Phase = core.PhaseEvaluating
	if pair != g.selected {
		// The label stays picked so the player can try another example.
		g.Reject()
		g.Phase = core.PhaseActive
		return
	}

	g.matched[pair] = true
	g.selected = -1
	g.col = colLabels
	g.Progress++
	g.Score += g.Config.Matching.PointsPerPair

	if g.Score >= g.Config.Matching.TargetScore() {
		g.Finish(core.OutcomeWon)
		return
	}
	g.Phase = core.PhaseActive
}

// LabelRow returns the row showing the label of pair p.
func (g *Game) LabelRow(p int) int {
	return indexOf(g.labels, p)
}

// ExampleRow returns the row showing the example of pair p.
func (g *Game) ExampleRow(p int) int {
	return indexOf(g.examples, p)
}

func indexOf(rows []int, v int) int {
	for i, x := range rows {
		if x == v {
			return i
		}
	}
	return -1
}
