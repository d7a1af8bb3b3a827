package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/render"

	_ "github.com/vovakirdan/tui-minilab/internal/games/assembly"
	_ "github.com/vovakirdan/tui-minilab/internal/games/quiz"
	_ "github.com/vovakirdan/tui-minilab/internal/games/reaction"
)

func testSettings() config.SessionSettings {
	s := config.DefaultSessionSettings()
	s.TeardownDelay = time.Millisecond
	s.RestoreDelayTicks = 5
	return s
}

func colorFactory() render.Factory {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	return render.NewFactory(r, 0)
}

func newManager(t *testing.T, mutate func(*Options)) *Manager {
	t.Helper()
	opts := Options{
		Settings: testSettings(),
		Policy:   NewPolicy(0),
		Backends: colorFactory(),
		Env:      render.Environment{Term: "xterm-256color", Profile: termenv.ANSI256},
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewManager(opts)
}

func request(game string) Request {
	return Request{GameID: game, Tier: config.TierMid, Seed: 7, Width: 80, Height: 24}
}

// flakyBackend wraps a real backend but cannot restore its context.
type flakyBackend struct {
	render.Backend
}

func (f flakyBackend) Restore() error {
	return errors.New("device gone")
}

func TestCreateWhileInFlightIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	m := newManager(t, func(o *Options) {
		o.Backends = func(mode render.Mode) (render.Backend, error) {
			once.Do(func() { close(entered) })
			<-release
			return render.NewFallback(), nil
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := m.CreateSession(context.Background(), request(config.GameQuiz))
		done <- err
	}()

	<-entered
	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrCreateInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.NotNil(t, m.Current())
}

func TestCreateReplacesPreviousSession(t *testing.T) {
	m := newManager(t, nil)
	mount := &Slot{}

	req := request(config.GameQuiz)
	req.Mount = mount
	first, err := m.CreateSession(context.Background(), req)
	require.NoError(t, err)
	firstSurface := first.Surface()

	second, err := m.CreateSession(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, first.Closed())
	assert.True(t, firstSurface.Released())
	assert.Equal(t, 0, firstSurface.Listeners())
	assert.Same(t, second, m.Current())
	assert.Same(t, second.Surface(), mount.Surface())
	assert.NotEqual(t, first.ID(), second.ID())

	res := first.Tick()
	assert.True(t, res.Closed)
}

func TestDestroyIsIdempotent(t *testing.T) {
	destroyed := 0
	m := newManager(t, func(o *Options) {
		o.Hooks.OnDestroyed = func(string) { destroyed++ }
	})

	m.DestroySession(context.Background())
	_, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)

	m.DestroySession(context.Background())
	m.DestroySession(context.Background())
	assert.Equal(t, 1, destroyed)
	assert.Nil(t, m.Current())
}

func TestDestroyAwaitsTeardownDelay(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Settings.TeardownDelay = 40 * time.Millisecond
	})
	_, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)

	start := time.Now()
	m.DestroySession(context.Background())
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestCancelledContextAbortsCreate(t *testing.T) {
	m := newManager(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := m.CreateSession(ctx, request(config.GameQuiz))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContextLossDowngradesLaterSessions(t *testing.T) {
	m := newManager(t, nil)

	first, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	require.Equal(t, render.ModeAccelerated, first.Mode())

	first.NotifyContextLost()
	assert.Equal(t, 1, first.ContextLosses())
	assert.True(t, m.Policy().Downgraded())

	second, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, second.Mode())
}

func TestPolicyIsSharedAcrossManagers(t *testing.T) {
	policy := NewPolicy(0)
	a := newManager(t, func(o *Options) { o.Policy = policy })
	b := newManager(t, func(o *Options) { o.Policy = policy })

	s, err := a.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	s.NotifyContextLost()

	other, err := b.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, other.Mode())
}

func TestToleranceAllowsSomeLosses(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Settings.ContextLossTolerance = 1
	})
	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)

	s.NotifyContextLost()
	assert.False(t, m.Policy().Downgraded())
	require.NoError(t, s.NotifyContextRestored())

	s.NotifyContextLost()
	assert.True(t, m.Policy().Downgraded())
}

func TestRestoreAttemptAfterDelay(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Settings.ContextLossTolerance = 5
	})
	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	before := s.View()
	require.NotEmpty(t, before)

	s.NotifyContextLost()
	for i := 0; i < 4; i++ {
		s.Tick()
		assert.True(t, s.Surface().Lost(), "restored too early at tick %d", i)
		assert.Equal(t, before, s.View(), "drawing must be suppressed while lost")
	}
	s.Tick()

	assert.False(t, s.Surface().Lost())
	assert.Equal(t, render.ModeAccelerated, s.Mode())
	assert.Equal(t, 1, s.ContextLosses())
}

func TestFailedRestoreSwapsToFallback(t *testing.T) {
	m := newManager(t, func(o *Options) {
		base := colorFactory()
		o.Backends = func(mode render.Mode) (render.Backend, error) {
			b, err := base(mode)
			if err != nil || mode != render.ModeAccelerated {
				return b, err
			}
			return flakyBackend{b}, nil
		}
	})
	mount := &Slot{}
	req := request(config.GameQuiz)
	req.Mount = mount
	s, err := m.CreateSession(context.Background(), req)
	require.NoError(t, err)

	s.Send(core.KeyDown("y", core.ActionNone))
	s.Tick()
	s.Tick()
	want := s.State()
	require.True(t, want.Score+want.Mistakes > 0, "answer was not applied")
	lost := s.Surface()

	s.NotifyContextLost()
	for i := 0; i < 5; i++ {
		s.Tick()
	}

	assert.Equal(t, render.ModeFallback, s.Mode())
	assert.True(t, lost.Released())
	assert.Same(t, s.Surface(), mount.Surface())
	assert.Equal(t, want, s.State())
	assert.NotContains(t, s.View(), "\x1b[")

	// Loss signals on the dead surface no longer reach the session.
	lost.LoseContext()
	assert.Equal(t, 1, s.ContextLosses())
}

func TestHiddenSessionDoesNotAdvance(t *testing.T) {
	m := newManager(t, nil)
	s, err := m.CreateSession(context.Background(), request(config.GameAssembly))
	require.NoError(t, err)
	s.Tick()
	for i := 0; i < 60; i++ {
		s.Tick()
	}
	left := s.State().SecondsLeft

	s.SetVisible(false)
	for i := 0; i < 300; i++ {
		res := s.Tick()
		require.True(t, res.Hidden)
	}
	assert.Equal(t, left, s.State().SecondsLeft)

	s.SetVisible(true)
	for i := 0; i < 120; i++ {
		s.Tick()
	}
	assert.Less(t, s.State().SecondsLeft, left)
}

func TestResultReportedOncePerRun(t *testing.T) {
	var results []Result
	m := newManager(t, func(o *Options) {
		o.Hooks.OnResult = func(r Result) { results = append(results, r) }
	})
	s, err := m.CreateSession(context.Background(), request(config.GameReaction))
	require.NoError(t, err)

	secs := s.Scene().Reaction.Seconds
	for i := 0; i < secs*60+30; i++ {
		s.Tick()
	}
	require.Len(t, results, 1)
	assert.Equal(t, core.OutcomeTallied, results[0].Outcome)
	assert.Equal(t, config.GameReaction, results[0].GameID)
	assert.Equal(t, config.TierMid, results[0].Tier)

	s.Retry()
	assert.Equal(t, core.PhaseInitializing, s.State().Phase)
	assert.Equal(t, uint64(0), s.Ticks())
}

func TestSendConvertsCellsToCanvas(t *testing.T) {
	m := newManager(t, nil)
	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)

	s.Send(core.PointerDown(core.Vec{X: 40, Y: 12}))
	s.Send(core.KeyDown("y", core.ActionNone))
	frame := s.input.Drain()
	require.Len(t, frame.Events, 2)

	want := s.Scene().Viewport(80, 24).ToCanvas(40, 12)
	assert.Equal(t, want, frame.Events[0].Pos)
	assert.Equal(t, "y", frame.Events[1].Key)
}

func TestSurfaceFailureDowngrades(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Backends = func(mode render.Mode) (render.Backend, error) {
			if mode == render.ModeAccelerated {
				return nil, errors.New("no device")
			}
			return render.NewFallback(), nil
		}
	})

	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, m.Policy().Downgraded())

	s, err = m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, s.Mode())
}

type brokenMount struct{}

func (brokenMount) Attach(*render.Surface) error { return errors.New("detached element") }
func (brokenMount) Detach(*render.Surface) error { return nil }

func TestMountFailureDowngrades(t *testing.T) {
	m := newManager(t, nil)
	req := request(config.GameQuiz)
	req.Mount = brokenMount{}

	s, err := m.CreateSession(context.Background(), req)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, m.Policy().Downgraded())
	assert.Nil(t, m.Current())
}

func TestUnstableEnvironmentUsesFallback(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Env = render.Environment{Term: "xterm", Mobile: true}
	})

	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, s.Mode())
	assert.Contains(t, m.Policy().Reason(), "mobile")
}

func TestForceFallbackSetting(t *testing.T) {
	m := newManager(t, func(o *Options) {
		o.Settings.ForceFallback = true
	})

	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, s.Mode())
}

func TestConnectionEnvStaysLocal(t *testing.T) {
	shared := NewPolicy(0)
	dumb := newManager(t, func(o *Options) {
		o.Policy = shared
		o.Env = render.Environment{Term: "dumb", Profile: termenv.Ascii}
		o.ConnectionEnv = true
	})
	healthy := newManager(t, func(o *Options) {
		o.Policy = shared
		o.ConnectionEnv = true
	})

	s, err := dumb.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, s.Mode())
	assert.False(t, shared.Downgraded(), "one client's terminal must not downgrade the others")

	s, err = healthy.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeAccelerated, s.Mode())

	// Context loss still downgrades every connection.
	s.NotifyContextLost()
	s, err = healthy.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	assert.Equal(t, render.ModeFallback, s.Mode())
	assert.True(t, shared.Downgraded())
}

func TestUnknownGameDoesNotDowngrade(t *testing.T) {
	m := newManager(t, nil)

	s, err := m.CreateSession(context.Background(), request("tetris"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, config.ErrUnknownGame)
	assert.False(t, m.Policy().Downgraded())

	req := request(config.GameQuiz)
	req.Tier = 9
	_, err = m.CreateSession(context.Background(), req)
	assert.ErrorIs(t, err, config.ErrInvalidTier)
}

func TestResizeKeepsState(t *testing.T) {
	m := newManager(t, nil)
	s, err := m.CreateSession(context.Background(), request(config.GameQuiz))
	require.NoError(t, err)
	s.Send(core.KeyDown("y", core.ActionNone))
	s.Tick()
	s.Tick()
	want := s.State()

	s.Resize(100, 30)
	w, h := s.Surface().Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
	assert.Equal(t, want, s.State())

	s.Resize(20, 10)
	assert.True(t, s.State().Paused, "too-small screens pause the game")
}

func TestDefaultBuilderServesBuiltInTables(t *testing.T) {
	m := NewManager(Options{
		Settings: testSettings(),
		Policy:   NewPolicy(0),
		Backends: colorFactory(),
		Env:      render.Environment{Term: "xterm-256color", Profile: termenv.ANSI256},
	})
	require.NotNil(t, m.builder)
	t.Cleanup(func() { m.DestroySession(context.Background()) })

	s, err := m.CreateSession(context.Background(), request(config.GameAssembly))
	require.NoError(t, err)
	assert.Equal(t, config.GameAssembly, s.GameID())
}
