package session

import (
	"errors"
	"sync"

	"github.com/vovakirdan/tui-minilab/internal/render"
)

// ErrMountBusy is returned when a mount already holds a surface.
var ErrMountBusy = errors.New("session: mount already holds a surface")

// Mount is the host element a session's surface is attached to.
type Mount interface {
	Attach(s *render.Surface) error
	Detach(s *render.Surface) error
}

// Slot is a Mount holding at most one surface.
type Slot struct {
	mu      sync.Mutex
	surface *render.Surface
}

// Attach takes the surface. A second surface is refused until the first
// is detached.
func (m *Slot) Attach(s *render.Surface) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface != nil && m.surface != s {
		return ErrMountBusy
	}
	m.surface = s
	return nil
}

// Detach releases the surface if it is the one attached.
func (m *Slot) Detach(s *render.Surface) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.surface == s {
		m.surface = nil
	}
	return nil
}

// Surface returns the attached surface, or nil.
func (m *Slot) Surface() *render.Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surface
}
