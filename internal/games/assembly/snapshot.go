package assembly

import "github.com/vovakirdan/tui-minilab/internal/core"

// Snapshot captures the round for determinism testing.
type Snapshot struct {
	Tick        uint64
	Phase       core.Phase
	Outcome     core.Outcome
	Progress    int
	Score       int
	Mistakes    int
	SecondsLeft int
	Tray        []int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:        g.Tick,
		Phase:       g.Phase,
		Outcome:     g.Outcome,
		Progress:    g.Progress,
		Score:       g.Score,
		Mistakes:    g.Mistakes,
		SecondsLeft: g.Clock.Seconds(),
		Tray:        g.Tray(),
	}
}
