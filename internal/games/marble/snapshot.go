package marble

import "github.com/vovakirdan/tui-minilab/internal/core"

// Snapshot captures the round for determinism testing.
type Snapshot struct {
	Tick     uint64
	Phase    core.Phase
	Outcome  core.Outcome
	Slopes   []Slope
	Marble   core.Vec
	Velocity core.Vec
	SimTicks int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.Tick,
		Phase:    g.Phase,
		Outcome:  g.Outcome,
		Slopes:   g.Slopes(),
		Marble:   g.marble.Pos,
		Velocity: g.marble.Vel,
		SimTicks: g.simTicks,
	}
}
