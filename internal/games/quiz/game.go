// Package quiz implements the Binary-Choice Quiz: a fixed, ordered list of
// yes/no scenarios.
package quiz

import (
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

// Scenario is one yes/no question.
type Scenario struct {
	Prompt string
	Answer bool
}

// Scenarios is asked in this order every round.
var Scenarios = []Scenario{
	{"A website asks for your password in a pop-up. Type it in?", false},
	{"Lock your screen before leaving the computer?", true},
	{"A stranger online asks for your home address. Share it?", false},
	{"Use a different password for each account?", true},
	{"An email says you won a prize. Click the link?", false},
	{"Ask an adult before downloading a new app?", true},
	{"Is it safe to turn off updates forever?", false},
	{"Back up your homework to another drive?", true},
}

// Game implements the Binary-Choice Quiz.
type Game struct {
	scene.Base

	scenarios []Scenario
	missed    bool // the current scenario already had a wrong answer
	choice    scene.Cursor
}

// New creates a new quiz game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameQuiz, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameQuiz
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Yes or No?"
}

// Reset starts from the first scenario.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	n := len(Scenarios)
	if q := sc.Quiz.Questions; q > 0 && q < n {
		n = q
	}
	g.Begin(sc, rt, n)

	g.scenarios = Scenarios[:n]
	g.missed = false
	g.choice = scene.Cursor{N: 2}
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
		if g.buttonBox(0).Contains(ev.Pos) {
			g.Answer(true)
		} else if g.buttonBox(1).Contains(ev.Pos) {
			g.Answer(false)
		}
	case core.EventKeyDown:
		switch {
		case ev.Key == "y":
			g.Answer(true)
		case ev.Key == "n":
			g.Answer(false)
		case scene.Picks(ev):
			g.Answer(g.choice.Index == 0)
		default:
			g.choice.Steer(ev, 0)
		}
	}
}

// Answer submits an answer to the current scenario.
func (g *Game) Answer(yes bool) {
	if !g.Active() {
		return
	}

	g.Phase = core.PhaseEvaluating
	if yes != g.scenarios[g.Progress].Answer {
		g.missed = true
		g.Reject()
		g.Phase = core.PhaseActive
		return
	}

	if !g.missed {
		g.Score++
	}
	g.missed = false
	g.Progress++
	g.choice.Index = 0

	if g.Progress == len(g.scenarios) {
		g.Finish(core.OutcomeTallied)
		return
	}
	g.Phase = core.PhaseActive
}

// Current returns the scenario being asked, or nil when finished.
func (g *Game) Current() *Scenario {
	if g.Progress >= len(g.scenarios) {
		return nil
	}
	return &g.scenarios[g.Progress]
}
