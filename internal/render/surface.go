package render

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Surface is the render context one session draws into. It can lose its
// context at any time; listeners registered with OnContextLost and
// OnContextRestored are told when that happens.
type Surface struct {
	mu       sync.Mutex
	backend  Backend
	width    int
	height   int
	lost     bool
	released bool
	frames   uint64

	nextListener int
	onLost       map[int]func()
	onRestored   map[int]func()
}

// NewSurface initializes the backend for a width×height area.
func NewSurface(b Backend, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: new surface: invalid size %dx%d", width, height)
	}
	if err := b.Init(width, height); err != nil {
		return nil, fmt.Errorf("render: init %s backend: %w", b.Mode(), err)
	}
	return &Surface{
		backend:    b,
		width:      width,
		height:     height,
		onLost:     make(map[int]func()),
		onRestored: make(map[int]func()),
	}, nil
}

// Mode returns the backend's rendering path.
func (s *Surface) Mode() Mode {
	return s.backend.Mode()
}

// Backend returns the backend behind the surface.
func (s *Surface) Backend() Backend {
	return s.backend
}

// Size returns the surface size in cells.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize changes the surface size.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.backend.Resize(width, height)
}

// Frames returns how many frames were presented.
func (s *Surface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// OnContextLost registers fn for context loss. The returned func removes it.
func (s *Surface) OnContextLost(fn func()) func() {
	return s.listen(s.onLost, fn)
}

// OnContextRestored registers fn for context restore. The returned func
// removes it.
func (s *Surface) OnContextRestored(fn func()) func() {
	return s.listen(s.onRestored, fn)
}

func (s *Surface) listen(set map[int]func(), fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	set[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(set, id)
	}
}

// LoseContext marks the context lost and notifies listeners. Repeated
// signals while already lost are ignored.
func (s *Surface) LoseContext() {
	s.mu.Lock()
	if s.released || s.lost {
		s.mu.Unlock()
		return
	}
	s.lost = true
	fns := listeners(s.onLost)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Restore tries to reacquire the context and notifies listeners on success.
func (s *Surface) Restore() error {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return ErrReleased
	}
	if !s.lost {
		s.mu.Unlock()
		return nil
	}
	if err := s.backend.Restore(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("render: restore %s context: %w", s.backend.Mode(), err)
	}
	s.lost = false
	fns := listeners(s.onRestored)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

// Lost reports whether the context is currently lost.
func (s *Surface) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

// Present draws a screen. It fails with ErrContextLost while the context is
// lost and never draws a partial frame.
func (s *Surface) Present(screen *core.Screen) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.released:
		return "", ErrReleased
	case s.lost:
		return "", ErrContextLost
	}
	out, err := s.backend.Draw(screen)
	if err != nil {
		return "", fmt.Errorf("render: present: %w", err)
	}
	s.frames++
	return out, nil
}

// Release detaches every listener and frees the backend. Safe to call
// more than once.
func (s *Surface) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	clear(s.onLost)
	clear(s.onRestored)
	if err := s.backend.Release(); err != nil {
		return fmt.Errorf("render: release %s backend: %w", s.backend.Mode(), err)
	}
	return nil
}

// Released reports whether Release has been called.
func (s *Surface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// Listeners returns the number of registered listeners.
func (s *Surface) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.onLost) + len(s.onRestored)
}

// listeners returns the callbacks in registration order.
func listeners(set map[int]func()) []func() {
	fns := make([]func(), 0, len(set))
	for _, id := range slices.Sorted(maps.Keys(set)) {
		fns = append(fns, set[id])
	}
	return fns
}
