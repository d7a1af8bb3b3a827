package marble

import (
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

func newGame(t *testing.T, tier config.Tier) *Game {
	t.Helper()
	sc, err := config.NewBuilder(config.DefaultTables()).Build(config.GameMarble, tier)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g := New()
	g.Reset(sc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Step(core.NewInputFrame())
	return g
}

func cell(g *Game, col, row int) int {
	return row*g.cols + col
}

func TestLayoutFollowsTier(t *testing.T) {
	tests := []struct {
		tier      config.Tier
		goalX     float64
		obstacles int
	}{
		{config.TierLow, 380, 0},
		{config.TierMid, 540, 1},
		{config.TierHigh, 660, 2},
	}

	for _, tc := range tests {
		g := newGame(t, tc.tier)
		if g.goal.X != tc.goalX || g.goal.Y != 520 {
			t.Errorf("tier %d: goal %+v", tc.tier, g.goal)
		}
		if len(g.obstacles) != tc.obstacles {
			t.Errorf("tier %d: %d obstacles, expected %d", tc.tier, len(g.obstacles), tc.obstacles)
		}
		if g.cols != 8 || g.rows != 6 {
			t.Errorf("tier %d: grid %dx%d, expected 8x6", tc.tier, g.cols, g.rows)
		}
	}
}

func TestNoRampsLoses(t *testing.T) {
	g := newGame(t, config.TierLow)
	g.Step(core.NewInputFrame(core.KeyDown("enter", core.ActionConfirm)))

	var res core.StepResult
	for i := 0; i < g.simLimit() && g.Phase == core.PhaseEvaluating; i++ {
		res = g.Step(core.NewInputFrame())
	}
	if res.State.Outcome != core.OutcomeLost {
		t.Fatalf("outcome %v, expected lost (marble at %+v)", res.State.Outcome, g.marble.Pos)
	}
}

func TestMarbleAtGoalWins(t *testing.T) {
	g := newGame(t, config.TierLow)
	g.Cycle(cell(g, 2, 2))
	g.Launch()

	half := g.p.MarbleSize / 2
	g.marble.Place(core.Vec{X: g.goal.X - half, Y: g.goal.Y - half})
	res := g.Step(core.NewInputFrame())

	if res.State.Outcome != core.OutcomeWon {
		t.Fatalf("outcome %v, expected won", res.State.Outcome)
	}
	if want := scoreBase + (g.p.MaxRamps-1)*pointsPerSpare; res.State.Score != want {
		t.Errorf("score %d, expected %d", res.State.Score, want)
	}
}

func TestRampLayoutsReachGoal(t *testing.T) {
	type placed struct {
		col, row int
		slope    Slope
	}
	tests := []struct {
		name  string
		tier  config.Tier
		ramps []placed
	}{
		{"easy single ramp", config.TierLow, []placed{{1, 3, SlopeDown}}},
		{"normal high ramp", config.TierMid, []placed{{1, 1, SlopeDown}}},
		{"normal low ramp", config.TierMid, []placed{{2, 3, SlopeDown}}},
		{"hard two ramps", config.TierHigh, []placed{{1, 1, SlopeDown}, {5, 5, SlopeDown}}},
		{"hard crossed ramps", config.TierHigh, []placed{{2, 3, SlopeUp}, {3, 3, SlopeDown}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, tc.tier)
			for _, r := range tc.ramps {
				c := cell(g, r.col, r.row)
				for g.Slopes()[c] != r.slope {
					g.Cycle(c)
				}
			}
			g.Launch()

			var res core.StepResult
			for i := 0; i < g.simLimit() && g.Phase == core.PhaseEvaluating; i++ {
				res = g.Step(core.NewInputFrame())
			}
			if res.State.Outcome != core.OutcomeWon {
				t.Fatalf("outcome %v, expected won (marble at %+v, goal %+v)", res.State.Outcome, g.marble.Pos, g.goal)
			}
			if want := scoreBase + (g.p.MaxRamps-len(tc.ramps))*pointsPerSpare; res.State.Score != want {
				t.Errorf("score %d, expected %d", res.State.Score, want)
			}
		})
	}
}

func TestPredicatesAreExclusive(t *testing.T) {
	g := newGame(t, config.TierMid)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 5000; i++ {
		g.marble.Pos = core.Vec{
			X: g.goal.X + rng.Float64()*120 - 60,
			Y: g.p.DropLine + rng.Float64()*120 - 90,
		}
		if g.Won() && g.Lost() {
			t.Fatalf("won and lost both hold at %+v", g.marble.Pos)
		}
	}
}

func TestRampCatchesMarble(t *testing.T) {
	g := newGame(t, config.TierLow)
	c := cell(g, 1, 2)
	g.Cycle(c)
	g.Launch()

	top := g.rampBox(c).Y - g.p.MarbleSize
	landed, fastest := false, 0.0
	for i := 0; i < 60 && g.Phase == core.PhaseEvaluating; i++ {
		g.Step(core.NewInputFrame())
		if g.marble.OnGround && math.Abs(g.marble.Pos.Y-top) < 1e-6 {
			landed = true
		}
		fastest = math.Max(fastest, g.marble.Vel.X)
	}

	if !landed {
		t.Fatal("marble never rested on the ramp")
	}
	if fastest <= g.p.LaunchVelocity {
		t.Errorf("ramp did not accelerate the marble: max vx %v", fastest)
	}
}

func TestCycleRamps(t *testing.T) {
	g := newGame(t, config.TierLow)
	c := cell(g, 3, 3)

	want := []Slope{SlopeDown, SlopeUp, SlopeNone}
	for i, s := range want {
		g.Step(core.NewInputFrame(core.PointerDown(g.cellBox(c).Center())))
		if got := g.Slopes()[c]; got != s {
			t.Fatalf("cycle %d: slope %v, expected %v", i, got, s)
		}
	}
	if g.Progress != 0 || len(g.slopes) != 0 {
		t.Errorf("ramp count %d, tracked %d after full cycle", g.Progress, len(g.slopes))
	}
}

func TestBlockedCellsRejected(t *testing.T) {
	g := newGame(t, config.TierLow)

	start, _ := g.cellAt(core.Vec{X: g.p.StartX, Y: g.p.StartY})
	goal, _ := g.cellAt(g.goal)
	for _, c := range []int{start, goal} {
		g.cursor.Index = c
		res := g.Step(core.NewInputFrame(core.KeyDown(" ", core.ActionToggle)))
		if !res.Rejected || g.Slopes()[c] != SlopeNone {
			t.Errorf("cell %d: rejected=%v slope=%v", c, res.Rejected, g.Slopes()[c])
		}
	}
}

func TestRampLimit(t *testing.T) {
	g := newGame(t, config.TierLow)

	for col := 0; col < g.p.MaxRamps; col++ {
		g.Cycle(cell(g, col, 0))
	}
	if g.Progress != g.p.MaxRamps {
		t.Fatalf("placed %d ramps, expected %d", g.Progress, g.p.MaxRamps)
	}

	g.Cycle(cell(g, 0, 4))
	if g.Slopes()[cell(g, 0, 4)] != SlopeNone || g.Mistakes != 1 {
		t.Errorf("ramp beyond the limit accepted")
	}

	// Re-sloping an existing ramp is not a new ramp.
	g.Cycle(cell(g, 0, 0))
	if g.Slopes()[cell(g, 0, 0)] != SlopeUp || g.Mistakes != 1 {
		t.Errorf("existing ramp could not be re-sloped")
	}
}

func TestRetryRestoresStart(t *testing.T) {
	g := newGame(t, config.TierLow)
	g.Cycle(cell(g, 1, 2))
	g.Launch()
	for i := 0; i < g.simLimit() && g.Phase == core.PhaseEvaluating; i++ {
		g.Step(core.NewInputFrame())
	}

	res := g.Step(core.NewInputFrame(core.KeyDown("r", core.ActionRestart)))
	if res.Intent != core.IntentRetry {
		t.Fatalf("intent %v, expected retry", res.Intent)
	}

	g.Reset(g.Config, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	if g.Progress != 0 || g.marble.Pos != (core.Vec{X: g.p.StartX, Y: g.p.StartY}) {
		t.Errorf("reset left progress %d, marble %+v", g.Progress, g.marble.Pos)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() Snapshot {
		g := newGame(t, config.TierHigh)
		g.Cycle(cell(g, 1, 2))
		g.Cycle(cell(g, 2, 2))
		g.Cycle(cell(g, 4, 3))
		g.Cycle(cell(g, 4, 3))
		g.Launch()
		for i := 0; i < 120; i++ {
			g.Step(core.NewInputFrame())
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, config.TierMid)
	g.Cycle(cell(g, 2, 2))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(screen.Row(0), g.Title()) {
		t.Errorf("HUD missing title: %q", screen.Row(0))
	}
	for _, want := range []string{"\\", "◎", "●", "▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
