package render

import "github.com/vovakirdan/tui-minilab/internal/core"

// Fallback draws plain runes without styling. It has no context to lose.
type Fallback struct {
	released bool
}

// NewFallback creates a fallback backend.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Mode returns ModeFallback.
func (f *Fallback) Mode() Mode {
	return ModeFallback
}

// Init prepares the backend.
func (f *Fallback) Init(width, height int) error {
	f.released = false
	return nil
}

// Resize is a no-op; the screen carries its own size.
func (f *Fallback) Resize(width, height int) {}

// Draw returns the screen as plain text.
func (f *Fallback) Draw(s *core.Screen) (string, error) {
	if f.released {
		return "", ErrReleased
	}
	return s.String(), nil
}

// Restore always succeeds.
func (f *Fallback) Restore() error {
	return nil
}

// Release marks the backend unusable.
func (f *Fallback) Release() error {
	f.released = true
	return nil
}
