// Package render turns core.Screen buffers into terminal output through one
// of two backends and models the render context a session draws into.
//
// The accelerated backend emits styled runs through lipgloss and keeps the
// styled runs it produced in a capped TextureCache. The fallback backend
// writes plain runes and cannot lose its context.
package render

import (
	"errors"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Mode identifies a rendering path.
type Mode int

const (
	ModeAccelerated Mode = iota
	ModeFallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAccelerated:
		return "accelerated"
	case ModeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var (
	// ErrContextLost is returned by Present while the surface has no context.
	ErrContextLost = errors.New("render: context lost")
	// ErrReleased is returned by any operation on a released surface.
	ErrReleased = errors.New("render: surface released")
)

// Backend draws screens for one surface.
type Backend interface {
	Mode() Mode
	Init(width, height int) error
	Resize(width, height int)
	Draw(s *core.Screen) (string, error)
	// Restore reacquires a lost context. Resources created before the loss
	// are gone afterwards.
	Restore() error
	Release() error
}

// Factory builds a backend for the requested mode.
type Factory func(Mode) (Backend, error)
