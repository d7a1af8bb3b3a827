// Package session owns the lifecycle of the single live mini-game session:
// creating and tearing down its render surface, choosing the renderer,
// recovering from context loss and driving the game loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/registry"
	"github.com/vovakirdan/tui-minilab/internal/render"
)

// ErrCreateInFlight is returned when CreateSession is called while another
// creation has not finished.
var ErrCreateInFlight = errors.New("session: creation already in flight")

// Request describes the session to create.
type Request struct {
	GameID string
	Tier   config.Tier
	Seed   int64 // 0 picks a time-based seed
	Width  int
	Height int
	Mount  Mount // optional
}

// Result is reported once per run when a game reaches a terminal state.
type Result struct {
	SessionID string
	GameID    string
	Tier      config.Tier
	Outcome   core.Outcome
	Score     int
	Mistakes  int
	Ticks     uint64
}

// Hooks are optional callbacks for host integration. They run on the
// goroutine that caused the event, never while a Manager or Session lock
// is held.
type Hooks struct {
	OnCreated   func(s *Session)
	OnDestroyed func(id string)
	OnResult    func(r Result)
}

// Options configures a Manager.
type Options struct {
	Settings config.SessionSettings
	Builder  *config.Builder
	Policy   *Policy        // defaults to SharedPolicy
	Backends render.Factory // defaults to render.NewFactory(nil, Settings.ResourceCap)
	Env      render.Environment
	Logger   *log.Logger
	Hooks    Hooks
	TickRate int

	// ConnectionEnv keeps an unstable Env local to this manager: its
	// sessions use the fallback renderer without downgrading the shared
	// policy. Servers set it when Env describes one remote client.
	ConnectionEnv bool
}

// Manager keeps at most one live Session.
type Manager struct {
	settings config.SessionSettings
	builder  *config.Builder
	policy   *Policy
	backends render.Factory
	env      render.Environment
	logger   *log.Logger
	hooks    Hooks
	tickRate int
	connEnv  bool

	mu       sync.Mutex
	creating bool
	current  *Session
}

// NewManager creates a manager.
func NewManager(opts Options) *Manager {
	if opts.Settings == (config.SessionSettings{}) {
		opts.Settings = config.DefaultSessionSettings()
	}
	if opts.Builder == nil {
		b := config.NewBuilder(config.DefaultTables())
		opts.Builder = &b
	}
	if opts.Policy == nil {
		opts.Policy = SharedPolicy()
	}
	if opts.Backends == nil {
		opts.Backends = render.NewFactory(nil, opts.Settings.ResourceCap)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	opts.Policy.SetTolerance(opts.Settings.ContextLossTolerance)

	return &Manager{
		settings: opts.Settings,
		builder:  opts.Builder,
		policy:   opts.Policy,
		backends: opts.Backends,
		env:      opts.Env,
		logger:   opts.Logger,
		hooks:    opts.Hooks,
		tickRate: opts.TickRate,
		connEnv:  opts.ConnectionEnv,
	}
}

// Policy returns the renderer policy shared by this manager.
func (m *Manager) Policy() *Policy {
	return m.policy
}

// Current returns the live session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CreateSession replaces the live session with a new one. The previous
// session is fully torn down first. A creation already in flight makes
// this call fail immediately with ErrCreateInFlight.
//
// When the surface cannot be created or mounted the renderer is
// downgraded for every later session and no session is returned.
func (m *Manager) CreateSession(ctx context.Context, req Request) (*Session, error) {
	m.mu.Lock()
	if m.creating {
		m.mu.Unlock()
		return nil, ErrCreateInFlight
	}
	m.creating = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.creating = false
		m.mu.Unlock()
	}()

	m.DestroySession(ctx)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}

	scene, err := m.builder.Build(req.GameID, req.Tier)
	if err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	game, err := registry.Create(req.GameID)
	if err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}

	mode := m.chooseMode()
	surface, err := m.newSurface(mode, req.Width, req.Height)
	if err != nil {
		m.policy.Downgrade("surface creation failed")
		m.logger.Error("surface creation failed", "game", req.GameID, "mode", mode, "err", err)
		return nil, fmt.Errorf("session: create: %w", err)
	}
	if req.Mount != nil {
		if err := req.Mount.Attach(surface); err != nil {
			m.policy.Downgrade("surface mount failed")
			if rerr := surface.Release(); rerr != nil {
				m.logger.Warn("release unmounted surface", "err", rerr)
			}
			m.logger.Error("surface mount failed", "game", req.GameID, "err", err)
			return nil, fmt.Errorf("session: mount surface: %w", err)
		}
	}

	s := newSession(m, req, scene, game, surface)

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.logger.Info("session created", "session", s.ID(), "game", req.GameID, "tier", int(req.Tier), "mode", mode)
	if m.hooks.OnCreated != nil {
		m.hooks.OnCreated(s)
	}
	return s, nil
}

// chooseMode picks the renderer for a new session. An unstable
// environment downgrades the policy so later sessions skip the probe,
// unless the environment belongs to a single connection.
func (m *Manager) chooseMode() render.Mode {
	if m.settings.ForceFallback {
		m.policy.Downgrade("fallback forced by settings")
	}
	if !m.env.Stable() {
		if m.connEnv {
			return render.ModeFallback
		}
		m.policy.Downgrade("unstable environment: " + m.env.Reason())
	}
	if m.policy.Downgraded() {
		return render.ModeFallback
	}
	return render.ModeAccelerated
}

func (m *Manager) newSurface(mode render.Mode, width, height int) (*render.Surface, error) {
	backend, err := m.backends(mode)
	if err != nil {
		return nil, fmt.Errorf("new %s backend: %w", mode, err)
	}
	return render.NewSurface(backend, width, height)
}

// DestroySession tears down the live session, if any, and waits for the
// stabilization delay. Teardown problems are logged, never returned.
// Calling it with no live session does nothing.
func (m *Manager) DestroySession(ctx context.Context) {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()

	if s == nil {
		return
	}
	m.teardown(s)
	m.logger.Info("session destroyed", "session", s.ID())
	if m.hooks.OnDestroyed != nil {
		m.hooks.OnDestroyed(s.ID())
	}

	if m.settings.TeardownDelay <= 0 {
		return
	}
	t := time.NewTimer(m.settings.TeardownDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (m *Manager) teardown(s *Session) {
	if s == nil {
		return
	}
	for _, err := range s.close() {
		m.logger.Warn("session teardown", "session", s.ID(), "err", err)
	}
}
