package matching

import "github.com/vovakirdan/tui-minilab/internal/core"

// Snapshot captures the round for determinism testing.
type Snapshot struct {
	Tick     uint64
	Phase    core.Phase
	Score    int
	Mistakes int
	Matched  int
	Selected int
	Labels   []int
	Examples []int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.Tick,
		Phase:    g.Phase,
		Score:    g.Score,
		Mistakes: g.Mistakes,
		Matched:  g.Progress,
		Selected: g.selected,
		Labels:   append([]int(nil), g.labels...),
		Examples: append([]int(nil), g.examples...),
	}
}
