// Package reaction implements Timed Reaction Matching: press the key shown
// on screen as many times as possible before the clock runs out.
package reaction

import (
	"strings"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/games/scene"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

// Game implements Timed Reaction Matching.
type Game struct {
	scene.Base

	symbols []string
	current int // index into symbols
}

// New creates a new Timed Reaction Matching game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(config.GameReaction, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameReaction
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Quick Keys"
}

// Reset starts a round with a full clock and a fresh symbol.
func (g *Game) Reset(sc config.SceneConfig, rt core.RuntimeConfig) {
	g.Begin(sc, rt, 0)
	g.StartCountdown(sc.Reaction.Seconds)

	g.symbols = make([]string, len(sc.Reaction.Symbols))
	for i, s := range sc.Reaction.Symbols {
		g.symbols[i] = strings.ToLower(s)
	}
	g.current = -1
	g.next()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Frame(in) {
		return g.Result()
	}

	if g.Expired() {
		// Only correct presses count; mistakes are reported separately.
		g.Finish(core.OutcomeTallied)
		return g.Result()
	}

	for _, ev := range in.Events {
		g.handle(ev)
	}
	return g.Result()
}

func (g *Game) handle(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventPointerDown:
		for i := range g.symbols {
			if g.buttonBox(i).Contains(ev.Pos) {
				g.press(i)
				return
			}
		}
	case core.EventKeyDown:
		if len([]rune(ev.Key)) != 1 {
			return
		}
		g.press(g.indexOf(strings.ToLower(ev.Key)))
	}
}

// press evaluates one attempt; -1 is a key outside the pool.
func (g *Game) press(i int) {
	g.Phase = core.PhaseEvaluating
	defer func() { g.Phase = core.PhaseActive }()

	if i != g.current {
		g.Reject()
		return
	}
	g.Score++
	g.Progress++
	g.next()
}

func (g *Game) indexOf(key string) int {
	for i, s := range g.symbols {
		if s == key {
			return i
		}
	}
	return -1
}

// next picks a symbol different from the current one.
func (g *Game) next() {
	if len(g.symbols) == 0 {
		g.current = -1
		return
	}
	if len(g.symbols) == 1 {
		g.current = 0
		return
	}
	if g.current < 0 {
		g.current = g.RNG.Intn(len(g.symbols))
		return
	}
	n := g.RNG.Intn(len(g.symbols) - 1)
	if n >= g.current {
		n++
	}
	g.current = n
}

// Current returns the symbol to press.
func (g *Game) Current() string {
	if g.current < 0 {
		return ""
	}
	return g.symbols[g.current]
}
