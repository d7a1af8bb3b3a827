package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/registry"
	"github.com/vovakirdan/tui-minilab/internal/render"
)

// TickResult is the outcome of one loop iteration.
type TickResult struct {
	State    core.GameState
	Intent   core.Intent
	Rejected bool
	Hidden   bool // the session is hidden and did not advance
	Closed   bool // the session was torn down
}

// Session is one live game bound to one render surface.
type Session struct {
	id      string
	req     Request
	scene   config.SceneConfig
	game    registry.Game
	manager *Manager
	logger  *log.Logger
	input   *core.InputChannel

	mu         sync.Mutex
	rt         core.RuntimeConfig
	surface    *render.Surface
	screen     *core.Screen
	timers     *core.Scheduler
	restore    *core.Timer
	restoreDue bool
	unlisten   []func()
	visible    bool
	suppressed bool
	losses     int
	ticks      uint64
	reported   bool
	frame      string
	closed     bool
}

func newSession(m *Manager, req Request, scene config.SceneConfig, game registry.Game, surface *render.Surface) *Session {
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, h := surface.Size()
	id := uuid.NewString()

	s := &Session{
		id:      id,
		req:     req,
		scene:   scene,
		game:    game,
		manager: m,
		logger:  m.logger.With("session", id),
		input:   core.NewInputChannel(core.DefaultInputBuffer),
		rt: core.RuntimeConfig{
			ScreenW:  w,
			ScreenH:  h,
			TickRate: m.tickRate,
			Seed:     seed,
		},
		surface: surface,
		screen:  core.NewScreen(w, h),
		timers:  core.NewScheduler(),
		visible: true,
	}
	s.listen(surface)
	game.Reset(scene, s.rt)

	s.mu.Lock()
	s.draw()
	s.mu.Unlock()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// GameID returns the hosted game's identifier.
func (s *Session) GameID() string {
	return s.req.GameID
}

// Title returns the hosted game's display name.
func (s *Session) Title() string {
	return s.game.Title()
}

// Scene returns the configuration the game was built from.
func (s *Session) Scene() config.SceneConfig {
	return s.scene
}

// Tick runs one loop iteration: due recovery work, then one game step
// with every queued input event, then a redraw. A hidden session only
// runs recovery work.
func (s *Session) Tick() TickResult {
	if s.advanceTimers() {
		s.attemptRestore()
	}

	s.mu.Lock()
	if s.closed {
		st := s.game.State()
		s.mu.Unlock()
		return TickResult{State: st, Closed: true}
	}
	if !s.visible {
		st := s.game.State()
		s.mu.Unlock()
		s.input.Discard()
		return TickResult{State: st, Hidden: true}
	}

	res := s.game.Step(s.input.Drain())
	s.ticks++
	var result *Result
	if res.State.Terminal() && !s.reported {
		s.reported = true
		result = &Result{
			SessionID: s.id,
			GameID:    s.req.GameID,
			Tier:      s.scene.Tier,
			Outcome:   res.State.Outcome,
			Score:     res.State.Score,
			Mistakes:  res.State.Mistakes,
			Ticks:     s.ticks,
		}
	}
	s.draw()
	s.mu.Unlock()

	if result != nil {
		s.logger.Info("game finished", "game", result.GameID, "outcome", result.Outcome, "score", result.Score)
		if s.manager.hooks.OnResult != nil {
			s.manager.hooks.OnResult(*result)
		}
	}
	return TickResult{State: res.State, Intent: res.Intent, Rejected: res.Rejected}
}

func (s *Session) advanceTimers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.timers.Advance()
	due := s.restoreDue
	s.restoreDue = false
	return due
}

// draw renders the game into the surface. Drawing is suppressed while
// the context is lost; the last frame stays visible. Callers hold s.mu.
func (s *Session) draw() {
	if s.suppressed || s.closed {
		return
	}
	s.screen.Clear()
	s.game.Render(s.screen)
	out, err := s.surface.Present(s.screen)
	switch {
	case err == nil:
		s.frame = out
	case errors.Is(err, render.ErrContextLost):
		// Lost between the signal and this frame.
	default:
		s.logger.Warn("present frame", "err", err)
	}
}

// Send queues an input event for the next tick. Pointer positions arrive
// in screen cells and are converted to canvas coordinates.
func (s *Session) Send(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventPointerDown, core.EventDrag, core.EventDragEnd:
		s.mu.Lock()
		vp := s.scene.Viewport(s.rt.ScreenW, s.rt.ScreenH)
		s.mu.Unlock()
		ev.Pos = vp.ToCanvas(int(ev.Pos.X), int(ev.Pos.Y))
	}
	s.input.Send(ev)
}

// Retry restarts the game with a fresh seed on the same scene and surface.
func (s *Session) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rt.Seed++
	s.game.Reset(s.scene, s.rt)
	s.ticks = 0
	s.reported = false
	s.input.Discard()
	s.draw()
}

// Resize adapts the surface and the game layout to a new size without
// resetting the game.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rt.ScreenW, s.rt.ScreenH = width, height
	s.surface.Resize(width, height)
	s.screen.Resize(width, height)
	if r, ok := s.game.(registry.Resizer); ok {
		r.Resize(width, height)
	}
	s.draw()
}

// SetVisible pauses (false) or resumes (true) the loop. A hidden session
// neither simulates nor runs its countdown.
func (s *Session) SetVisible(visible bool) {
	s.mu.Lock()
	changed := s.visible != visible
	s.visible = visible
	s.mu.Unlock()

	if changed {
		s.logger.Debug("visibility changed", "visible", visible)
	}
}

// Visible reports whether the loop is running.
func (s *Session) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// View returns the last presented frame.
func (s *Session) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// State returns the game state.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// Mode returns the renderer currently in use.
func (s *Session) Mode() render.Mode {
	return s.Surface().Mode()
}

// Surface returns the current render surface.
func (s *Session) Surface() *render.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// ContextLosses returns how often this session lost its context.
func (s *Session) ContextLosses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.losses
}

// Ticks returns the ticks simulated in the current run.
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// NotifyContextLost forwards a host loss signal to the surface.
func (s *Session) NotifyContextLost() {
	s.Surface().LoseContext()
}

// NotifyContextRestored forwards a host restore signal to the surface.
func (s *Session) NotifyContextRestored() error {
	return s.Surface().Restore()
}

func (s *Session) listen(surface *render.Surface) {
	s.unlisten = append(s.unlisten,
		surface.OnContextLost(s.handleLost),
		surface.OnContextRestored(s.handleRestored),
	)
}

// handleLost suppresses drawing, reports the loss and schedules one
// restore attempt.
func (s *Session) handleLost() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.losses++
	s.suppressed = true
	n := s.losses
	s.restore.Cancel()
	s.restore = s.timers.After(s.manager.settings.RestoreDelayTicks, func() {
		s.restoreDue = true
	})
	s.mu.Unlock()

	s.logger.Warn("render context lost", "losses", n)
	s.manager.policy.ReportLoss(n)
}

func (s *Session) handleRestored() {
	s.mu.Lock()
	s.suppressed = false
	s.restore.Cancel()
	s.restore = nil
	s.mu.Unlock()

	s.logger.Info("render context restored")
}

// attemptRestore makes the single bounded restore attempt. On failure the
// session moves to a fallback surface and keeps its game state.
func (s *Session) attemptRestore() {
	surface := s.Surface()
	if !surface.Lost() {
		return
	}
	err := surface.Restore()
	if err == nil {
		return
	}

	s.logger.Warn("context restore failed, switching to fallback", "err", err)
	s.manager.policy.Downgrade("context restore failed")
	if err := s.swapToFallback(); err != nil {
		s.logger.Error("switch to fallback surface", "err", err)
	}
}

func (s *Session) swapToFallback() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	old := s.surface
	w, h := old.Size()
	surface, err := s.manager.newSurface(render.ModeFallback, w, h)
	if err != nil {
		return err
	}

	for _, fn := range s.unlisten {
		fn()
	}
	s.unlisten = nil

	var errs []error
	if m := s.req.Mount; m != nil {
		if err := m.Detach(old); err != nil {
			errs = append(errs, fmt.Errorf("detach lost surface: %w", err))
		}
		if err := m.Attach(surface); err != nil {
			errs = append(errs, fmt.Errorf("attach fallback surface: %w", err))
		}
	}
	if err := old.Release(); err != nil {
		errs = append(errs, err)
	}

	s.surface = surface
	s.listen(surface)
	s.suppressed = false
	s.draw()
	return errors.Join(errs...)
}

// close tears the session down and returns every error met on the way.
func (s *Session) close() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.timers.Stop()
	s.restore = nil
	if t, ok := s.game.(registry.TimerOwner); ok {
		t.StopTimers()
	}
	for _, fn := range s.unlisten {
		fn()
	}
	s.unlisten = nil
	s.input.Close()
	s.input.Discard()

	var errs []error
	if m := s.req.Mount; m != nil {
		if err := m.Detach(s.surface); err != nil {
			errs = append(errs, fmt.Errorf("detach surface: %w", err))
		}
	}
	if err := s.surface.Release(); err != nil {
		errs = append(errs, err)
	}
	return errs
}
