package core

// RuntimeConfig contains host-side parameters passed to games at Reset.
// Tier-dependent parameters travel separately in config.SceneConfig.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for shuffles and target generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Ticks converts seconds to simulation ticks at the configured rate.
func (c RuntimeConfig) Ticks(seconds float64) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return int(seconds * float64(rate))
}

// Phase is the coarse state every mini-game moves through.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseActive
	PhaseEvaluating
	PhaseTerminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome qualifies a terminal phase.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeTallied // Score-only games with no win/lose
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeTallied:
		return "tallied"
	default:
		return "none"
	}
}

// Intent is a navigation request raised from inside a scene and forwarded
// to the host.
type Intent int

const (
	IntentNone Intent = iota
	IntentRetry
	IntentExit
)

// GameState is the host-visible snapshot of a game.
type GameState struct {
	Phase       Phase
	Outcome     Outcome
	Score       int  // Points, correct matches or tally
	Mistakes    int  // Rejected moves (penalties)
	Progress    int  // Units of the goal completed (parts placed, targets matched...)
	Goal        int  // Units needed; 0 when the game is open-ended
	SecondsLeft int  // Countdown, -1 when the game is untimed
	Paused      bool // Whether the game is paused
}

// Terminal reports whether the game has ended.
func (s GameState) Terminal() bool {
	return s.Phase == PhaseTerminal
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	Intent   Intent
	Rejected bool // A move was rejected this tick
}

// TerminalIntent maps retry/exit keys to intents. Games call it once they
// are terminal, since nothing else is accepted there.
func TerminalIntent(in InputFrame) Intent {
	if in.Has(ActionRestart) {
		return IntentRetry
	}
	if in.Has(ActionBack) {
		return IntentExit
	}
	return IntentNone
}
