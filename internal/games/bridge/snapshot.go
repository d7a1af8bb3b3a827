package bridge

import "github.com/vovakirdan/tui-minilab/internal/core"

// Snapshot captures the round for determinism testing.
type Snapshot struct {
	Tick     uint64
	Phase    core.Phase
	Outcome  core.Outcome
	Beams    []bool
	Vehicle  core.Vec
	Velocity core.Vec
	SimTicks int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.Tick,
		Phase:    g.Phase,
		Outcome:  g.Outcome,
		Beams:    g.Beams(),
		Vehicle:  g.vehicle.Pos,
		Velocity: g.vehicle.Vel,
		SimTicks: g.simTicks,
	}
}
