package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/render"
	"github.com/vovakirdan/tui-minilab/internal/session"
	"github.com/vovakirdan/tui-minilab/internal/storage"

	_ "github.com/vovakirdan/tui-minilab/internal/games/quiz"
	_ "github.com/vovakirdan/tui-minilab/internal/games/reaction"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testHost(t *testing.T, backends render.Factory) *Host {
	t.Helper()
	return testHostWithDelay(t, backends, 0)
}

func testHostWithDelay(t *testing.T, backends render.Factory, teardown time.Duration) *Host {
	t.Helper()
	if backends == nil {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI256)
		backends = render.NewFactory(r, 0)
	}
	settings := config.DefaultSessionSettings()
	settings.TeardownDelay = teardown
	settings.RestoreDelayTicks = 3

	logger := log.New(io.Discard)
	manager := session.NewManager(session.Options{
		Settings: settings,
		Policy:   session.NewPolicy(0),
		Backends: backends,
		Env:      render.Environment{Term: "xterm-256color", Profile: termenv.ANSI256},
		Logger:   logger,
	})
	t.Cleanup(func() { manager.DestroySession(context.Background()) })

	return &Host{
		Manager:  manager,
		Logger:   logger,
		Tier:     config.TierMid,
		Seed:     11,
		TickRate: 60,
		Width:    80,
		Height:   24,
	}
}

// start runs Init and feeds the created session back into the model.
func start(t *testing.T, m GameModel) (GameModel, tea.Cmd) {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	next, tick := m.Update(cmd())
	return next.(GameModel), tick
}

func tick(t *testing.T, m GameModel) (GameModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, m.Session())
	next, cmd := m.Update(TickMsg{Time: time.Now(), Session: m.Session().ID()})
	return next.(GameModel), cmd
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		key    string
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, "up", core.ActionUp, false},
		{"wasd left", runes("a"), "a", core.ActionLeft, false},
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace}, " ", core.ActionToggle, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, "enter", core.ActionConfirm, false},
		{"escape goes back", tea.KeyMsg{Type: tea.KeyEscape}, "esc", core.ActionBack, false},
		{"restart", runes("r"), "r", core.ActionRestart, false},
		{"digit keeps key", runes("7"), "7", core.ActionNone, false},
		{"symbol keeps key", runes("y"), "y", core.ActionNone, false},
		{"q quits", runes("q"), "q", core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c", core.ActionQuit, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, quit := km.MapKey(tc.msg)
			assert.Equal(t, core.EventKeyDown, ev.Kind)
			assert.Equal(t, tc.key, ev.Key)
			assert.Equal(t, tc.action, ev.Action)
			assert.Equal(t, tc.quit, quit)
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	press := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	motion := tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 6, Y: 4, Action: tea.MouseActionRelease}

	ev, ok := km.MapMouse(press, false)
	require.True(t, ok)
	assert.Equal(t, core.EventPointerDown, ev.Kind)
	assert.Equal(t, core.Vec{X: 3, Y: 4}, ev.Pos)

	ev, ok = km.MapMouse(motion, true)
	require.True(t, ok)
	assert.Equal(t, core.EventDrag, ev.Kind)

	ev, ok = km.MapMouse(release, true)
	require.True(t, ok)
	assert.Equal(t, core.EventDragEnd, ev.Kind)

	_, ok = km.MapMouse(motion, false)
	assert.False(t, ok, "hover without a button is ignored")
	_, ok = km.MapMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false)
	assert.False(t, ok, "only the left button points")
}

func TestMenuTierAndSelection(t *testing.T) {
	m := NewMenuModel(config.TierHigh, 100, 30)
	require.NotEmpty(t, m.items)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	assert.Equal(t, config.TierHigh, m.Tier(), "tier stops at the top")

	for range 3 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m = next.(MenuModel)
	}
	assert.Equal(t, config.TierLow, m.Tier(), "tier stops at the bottom")
	assert.Contains(t, m.View(), "Tier 1: easy")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, m.items[0].GameID, m.Selected().GameID)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, next.(MenuModel).WantsScoreboard())
}

func TestGameModelRunsSession(t *testing.T) {
	host := testHost(t, nil)
	m, cmd := start(t, NewGameModel(host, config.GameQuiz, config.TierLow))
	require.NotNil(t, m.Session())
	assert.NotNil(t, cmd, "the tick loop starts")

	m, cmd = tick(t, m)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Yes or No?")
	assert.Equal(t, uint64(1), m.Session().Ticks())

	// A tick for another session is dropped without rescheduling.
	next, cmd := m.Update(TickMsg{Session: "stale"})
	assert.Nil(t, cmd)
	assert.Equal(t, uint64(1), next.(GameModel).Session().Ticks())
}

func TestGameModelBackReturnsToMenu(t *testing.T) {
	host := testHost(t, nil)
	m, _ := start(t, NewGameModel(host, config.GameReaction, config.TierLow))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(GameModel)
	m, cmd := tick(t, m)

	require.NotNil(t, cmd, "teardown runs as a command")
	assert.False(t, m.BackToMenu(), "the menu waits for teardown")
	assert.Nil(t, m.Session())
	assert.Contains(t, m.View(), "Closing...")

	next, cmd = m.Update(cmd())
	m = next.(GameModel)
	assert.Nil(t, cmd)
	assert.True(t, m.BackToMenu())
	assert.Nil(t, host.Manager.Current(), "leaving destroys the session")
}

func TestGameModelExitDoesNotWaitForTeardown(t *testing.T) {
	const delay = 300 * time.Millisecond
	host := testHostWithDelay(t, nil, delay)
	m, _ := start(t, NewGameModel(host, config.GameReaction, config.TierLow))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(GameModel)

	began := time.Now()
	m, cmd := tick(t, m)
	assert.Less(t, time.Since(began), delay/3, "update returned before the teardown delay")
	require.NotNil(t, cmd)

	began = time.Now()
	msg := cmd()
	assert.GreaterOrEqual(t, time.Since(began), delay, "the command carries the delay")
	assert.IsType(t, sessionDestroyedMsg{}, msg)

	next, _ = m.Update(msg)
	assert.True(t, next.(GameModel).BackToMenu())
}

func TestGameModelFocusControlsVisibility(t *testing.T) {
	host := testHost(t, nil)
	m, _ := start(t, NewGameModel(host, config.GameQuiz, config.TierLow))

	next, _ := m.Update(tea.BlurMsg{})
	m = next.(GameModel)
	assert.False(t, m.Session().Visible())

	next, _ = m.Update(tea.FocusMsg{})
	assert.True(t, next.(GameModel).Session().Visible())
}

func TestGameModelForwardsPointerInput(t *testing.T) {
	host := testHost(t, nil)
	m, _ := start(t, NewGameModel(host, config.GameQuiz, config.TierLow))

	next, _ := m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(GameModel)
	assert.True(t, m.held)

	next, _ = m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionRelease})
	assert.False(t, next.(GameModel).held)
}

func TestGameModelCreationErrorOffersRetry(t *testing.T) {
	fail := true
	host := testHost(t, func(mode render.Mode) (render.Backend, error) {
		if fail {
			return nil, errors.New("no device")
		}
		return render.NewFallback(), nil
	})

	m, cmd := start(t, NewGameModel(host, config.GameQuiz, config.TierLow))
	assert.Nil(t, cmd)
	require.Error(t, m.Err())
	assert.Nil(t, m.Session())
	assert.Contains(t, m.View(), "Could not start the game")
	assert.True(t, host.Manager.Policy().Downgraded())

	fail = false
	next, cmd := m.Update(runes("r"))
	m = next.(GameModel)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(GameModel)
	require.NoError(t, m.Err())
	require.NotNil(t, m.Session())
	assert.Equal(t, render.ModeFallback, m.Session().Mode())
}

func TestGameModelQuitDestroysSession(t *testing.T) {
	host := testHost(t, nil)
	m, _ := start(t, NewGameModel(host, config.GameQuiz, config.TierLow))

	next, cmd := m.Update(runes("q"))
	m = next.(GameModel)
	assert.False(t, m.IsQuitting(), "quitting waits for teardown")
	require.NotNil(t, cmd)

	next, cmd = m.Update(cmd())
	assert.True(t, next.(GameModel).IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, host.Manager.Current())
}

func TestAppModelFlow(t *testing.T) {
	host := testHost(t, nil)
	app := NewAppModel(host)
	assert.Contains(t, app.View(), "M I N I L A B")

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(AppModel)
	assert.Equal(t, screenGame, app.screen)
	require.NotNil(t, cmd)

	next, _ = app.Update(cmd())
	app = next.(AppModel)
	require.NotNil(t, app.game.Session())

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	app = next.(AppModel)
	next, cmd = app.Update(TickMsg{Session: app.game.Session().ID()})
	app = next.(AppModel)
	assert.Equal(t, screenGame, app.screen)
	require.NotNil(t, cmd)
	next, _ = app.Update(cmd())
	app = next.(AppModel)
	assert.Equal(t, screenMenu, app.screen)

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(AppModel)
	assert.Equal(t, screenScores, app.screen)
	assert.Contains(t, app.View(), "No runs yet")

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, screenMenu, next.(AppModel).screen)
}

func TestDirectAppQuitsWhenGameExits(t *testing.T) {
	host := testHost(t, nil)
	app := NewDirectAppModel(host, config.GameQuiz)

	next, _ := app.Update(app.Init()())
	app = next.(AppModel)
	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEscape})
	app = next.(AppModel)
	next, cmd := app.Update(TickMsg{Session: app.game.Session().ID()})
	app = next.(AppModel)
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestResultRecorder(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	record := ResultRecorder(store, log.New(io.Discard))
	record(session.Result{GameID: config.GameQuiz, Tier: config.TierLow, Outcome: core.OutcomeTallied, Score: 4, Ticks: 600})
	record(session.Result{GameID: config.GameQuiz, Tier: config.TierLow, Outcome: core.OutcomeTallied, Score: 0})
	record(session.Result{GameID: config.GameBridge, Tier: config.TierHigh, Outcome: core.OutcomeLost})

	quiz, err := store.TopResults(config.GameQuiz, 10)
	require.NoError(t, err)
	require.Len(t, quiz, 1, "empty tallies are skipped")
	assert.Equal(t, 4, quiz[0].Score)
	assert.Equal(t, "tallied", quiz[0].Outcome)
	assert.Equal(t, int64(600), quiz[0].DurationTicks)

	bridge, err := store.TopResults(config.GameBridge, 10)
	require.NoError(t, err)
	require.Len(t, bridge, 1)
	assert.Equal(t, "lost", bridge[0].Outcome)
	assert.Equal(t, int(config.TierHigh), bridge[0].Tier)

	ResultRecorder(nil, nil)(session.Result{GameID: config.GameQuiz, Outcome: core.OutcomeWon})
}
