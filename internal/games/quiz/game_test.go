package quiz

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	sc, err := config.NewBuilder(config.DefaultTables()).Build(config.GameQuiz, config.TierLow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g := New()
	g.Reset(sc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Step(core.NewInputFrame())
	return g
}

func answerKey(yes bool) core.InputFrame {
	if yes {
		return core.NewInputFrame(core.KeyDown("y", core.ActionNone))
	}
	return core.NewInputFrame(core.KeyDown("n", core.ActionNone))
}

func TestScenariosAreAskedInOrder(t *testing.T) {
	g := newGame(t)
	for i, s := range Scenarios {
		if g.Current().Prompt != s.Prompt {
			t.Fatalf("question %d = %q, expected %q", i, g.Current().Prompt, s.Prompt)
		}
		g.Step(answerKey(s.Answer))
	}

	st := g.State()
	if st.Outcome != core.OutcomeTallied || st.Score != len(Scenarios) {
		t.Errorf("final state = %+v", st)
	}
}

func TestWrongAnswerKeepsScenario(t *testing.T) {
	g := newGame(t)
	first := g.Current().Prompt

	res := g.Step(answerKey(!Scenarios[0].Answer))
	if !res.Rejected {
		t.Fatal("wrong answer should be rejected")
	}
	if g.Current().Prompt != first || g.State().Progress != 0 {
		t.Error("wrong answer must not advance")
	}

	g.Step(answerKey(Scenarios[0].Answer))
	if g.State().Progress != 1 {
		t.Fatal("right answer should advance")
	}
	if g.State().Score != 0 {
		t.Errorf("a scenario answered on the second try should not score, got %d", g.State().Score)
	}
}

func TestTallyIgnoresMistakeCount(t *testing.T) {
	g := newGame(t)
	for i, s := range Scenarios {
		if i%2 == 0 {
			g.Step(answerKey(!s.Answer))
			g.Step(answerKey(!s.Answer))
		}
		g.Step(answerKey(s.Answer))
	}

	st := g.State()
	if st.Score != len(Scenarios)/2 {
		t.Errorf("tally = %d, expected %d", st.Score, len(Scenarios)/2)
	}
	if st.Mistakes != len(Scenarios) {
		t.Errorf("mistakes = %d, expected %d", st.Mistakes, len(Scenarios))
	}
}

func TestCursorAndPointerAnswers(t *testing.T) {
	g := newGame(t)

	// Cursor starts on YES; move to NO if that is the right answer.
	in := core.NewInputFrame()
	if !Scenarios[0].Answer {
		in.Push(core.KeyDown("right", core.ActionRight))
	}
	in.Push(core.KeyDown("enter", core.ActionConfirm))
	g.Step(in)
	if g.State().Progress != 1 {
		t.Fatal("cursor answer not accepted")
	}

	idx := 0
	if !Scenarios[1].Answer {
		idx = 1
	}
	g.Step(core.NewInputFrame(core.PointerDown(g.buttonBox(idx).Center())))
	if g.State().Progress != 2 {
		t.Error("pointer answer not accepted")
	}
}

func TestQuestionLimit(t *testing.T) {
	sc, _ := config.NewBuilder(config.DefaultTables()).Build(config.GameQuiz, config.TierLow)
	sc.Quiz.Questions = 3
	g := New()
	g.Reset(sc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.State().Goal != 3 {
		t.Errorf("goal = %d, expected 3", g.State().Goal)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five" {
		t.Errorf("wrap lost words: %v", lines)
	}
}

func TestRetryStartsFromFirstScenario(t *testing.T) {
	g := newGame(t)
	g.Step(answerKey(Scenarios[0].Answer))
	g.Step(answerKey(!Scenarios[1].Answer))
	if st := g.State(); st.Progress != 1 || st.Score != 1 || st.Mistakes != 1 || !g.missed {
		t.Fatalf("setup state = %+v, missed=%v", st, g.missed)
	}

	g.Reset(g.Config, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})
	if st := g.State(); st.Progress != 0 || st.Score != 0 || st.Mistakes != 0 {
		t.Errorf("state after retry = %+v", st)
	}
	if g.missed {
		t.Error("retry should forget the missed answer")
	}
	if g.Current().Prompt != Scenarios[0].Prompt {
		t.Errorf("retry asks %q, expected the first scenario", g.Current().Prompt)
	}

	// The first answer after a retry counts again.
	g.Step(core.NewInputFrame())
	g.Step(answerKey(Scenarios[0].Answer))
	if g.State().Score != 1 {
		t.Errorf("score = %d after a clean answer", g.State().Score)
	}
}
