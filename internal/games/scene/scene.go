// Package scene holds the bookkeeping every mini-game shares: the phase
// machine, the tick scheduler, an optional countdown, the penalty shake
// and the terminal retry/exit handling.
package scene

import (
	"math/rand"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Minimum screen size every game can lay itself out in.
const (
	MinWidth  = 40
	MinHeight = 16
)

// Base is embedded by each game. Fields are exported so games can read and
// set them directly; the methods keep the phase transitions consistent.
type Base struct {
	Config config.SceneConfig
	RNG    *rand.Rand
	Timers *core.Scheduler
	Clock  core.Countdown

	Phase    core.Phase
	Outcome  core.Outcome
	Score    int
	Mistakes int
	Progress int
	Goal     int
	Paused   bool
	Tick     uint64
	Penalty  core.Penalty

	ScreenW  int
	ScreenH  int
	TickRate int

	timed    bool
	tooSmall bool
	rejected bool
	intent   core.Intent
}

// Begin resets the shared state for a fresh round. The game is left
// Initializing; its first Step makes it Active.
func (b *Base) Begin(scene config.SceneConfig, rt core.RuntimeConfig, goal int) {
	if b.Timers != nil {
		b.Timers.Stop()
	}
	rate := rt.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}

	*b = Base{
		Config:   scene,
		RNG:      rand.New(rand.NewSource(rt.Seed)),
		Timers:   core.NewScheduler(),
		Phase:    core.PhaseInitializing,
		Goal:     goal,
		ScreenW:  rt.ScreenW,
		ScreenH:  rt.ScreenH,
		TickRate: rate,
	}
	b.tooSmall = b.ScreenW < MinWidth || b.ScreenH < MinHeight
}

// StartCountdown makes the round timed.
func (b *Base) StartCountdown(seconds int) {
	b.Clock = core.NewCountdown(seconds, b.TickRate)
	b.timed = true
}

// Timed reports whether the round runs against a countdown.
func (b *Base) Timed() bool {
	return b.timed
}

// Frame runs the per-tick preamble. It returns true when the game should
// process input and simulate this tick; false while terminal, paused or
// laid out on a screen that is too small.
//
// The countdown only moves inside Frame, so a paused or hidden game never
// loses time. Games check Expired afterwards.
func (b *Base) Frame(in core.InputFrame) bool {
	b.Tick++
	b.rejected = false
	b.intent = core.IntentNone

	if b.Phase == core.PhaseTerminal {
		b.intent = core.TerminalIntent(in)
		return false
	}
	if in.Has(core.ActionBack) {
		b.intent = core.IntentExit
		return false
	}
	if b.Phase == core.PhaseInitializing {
		b.Phase = core.PhaseActive
	}
	if in.Has(core.ActionPause) {
		b.Paused = !b.Paused
	}
	if b.Paused || b.tooSmall {
		return false
	}

	b.Penalty.Tick()
	b.Timers.Advance()
	if b.timed {
		b.Clock.Tick()
	}
	return b.Phase != core.PhaseTerminal
}

// Expired reports whether a timed round ran out of time.
func (b *Base) Expired() bool {
	return b.timed && b.Clock.Expired()
}

// Reject records a move that did not match the expected transition.
// Progress is untouched; only the shake and the mistake counter change.
func (b *Base) Reject() {
	b.Mistakes++
	b.Penalty.Trigger()
	b.rejected = true
}

// Finish enters the terminal phase and cancels every pending timer.
func (b *Base) Finish(o core.Outcome) {
	b.Phase = core.PhaseTerminal
	b.Outcome = o
	b.Paused = false
	b.Penalty.Reset()
	b.Timers.CancelAll()
}

// Active reports whether the game accepts moves right now.
func (b *Base) Active() bool {
	return b.Phase == core.PhaseActive
}

// State returns the host-visible snapshot.
func (b *Base) State() core.GameState {
	secs := -1
	if b.timed {
		secs = b.Clock.Seconds()
	}
	return core.GameState{
		Phase:       b.Phase,
		Outcome:     b.Outcome,
		Score:       b.Score,
		Mistakes:    b.Mistakes,
		Progress:    b.Progress,
		Goal:        b.Goal,
		SecondsLeft: secs,
		Paused:      b.Paused || b.tooSmall,
	}
}

// Result builds the StepResult for this tick.
func (b *Base) Result() core.StepResult {
	return core.StepResult{
		State:    b.State(),
		Intent:   b.intent,
		Rejected: b.rejected,
	}
}

// Resize lays the game out for a new screen size. Game state is kept.
func (b *Base) Resize(width, height int) {
	b.ScreenW, b.ScreenH = width, height
	b.tooSmall = width < MinWidth || height < MinHeight
}

// StopTimers stops the round's scheduler for good.
func (b *Base) StopTimers() {
	if b.Timers != nil {
		b.Timers.Stop()
	}
}

// TooSmall reports whether the screen cannot fit the game.
func (b *Base) TooSmall() bool {
	return b.tooSmall
}

// Viewport maps the scene canvas onto the play area below the HUD.
func (b *Base) Viewport() core.Viewport {
	return b.Config.Viewport(b.ScreenW, b.ScreenH)
}

// Shuffle returns a permutation of 0..n-1 from the round's RNG.
func (b *Base) Shuffle(n int) []int {
	return b.RNG.Perm(n)
}
