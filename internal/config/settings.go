package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// SessionSettings tunes the session manager.
// Values come from the `session:` block and may be overridden from the
// environment.
type SessionSettings struct {
	// Context losses a process tolerates before every later session
	// falls back. Zero means the first loss downgrades.
	ContextLossTolerance int           `yaml:"context_loss_tolerance" env:"MINILAB_CONTEXT_LOSS_TOLERANCE"`
	ResourceCap          int           `yaml:"resource_cap" env:"MINILAB_RESOURCE_CAP"`
	TeardownDelay        time.Duration `yaml:"teardown_delay" env:"MINILAB_TEARDOWN_DELAY"`
	RestoreDelayTicks    int           `yaml:"restore_delay_ticks" env:"MINILAB_RESTORE_DELAY_TICKS"`
	ForceFallback        bool          `yaml:"force_fallback" env:"MINILAB_FORCE_FALLBACK"`
	LowMemoryMB          int           `yaml:"low_memory_mb" env:"MINILAB_LOW_MEMORY_MB"`
}

// DefaultSessionSettings returns the built-in session settings.
func DefaultSessionSettings() SessionSettings {
	return SessionSettings{
		ContextLossTolerance: 0,
		ResourceCap:          50,
		TeardownDelay:        50 * time.Millisecond,
		RestoreDelayTicks:    30,
		ForceFallback:        false,
		LowMemoryMB:          512,
	}
}

// normalize replaces unusable values with defaults.
func (s *SessionSettings) normalize() {
	d := DefaultSessionSettings()
	if s.ContextLossTolerance < 0 {
		s.ContextLossTolerance = 0
	}
	if s.ResourceCap <= 0 {
		s.ResourceCap = d.ResourceCap
	}
	if s.TeardownDelay < 0 {
		s.TeardownDelay = 0
	}
	if s.RestoreDelayTicks <= 0 {
		s.RestoreDelayTicks = d.RestoreDelayTicks
	}
	if s.LowMemoryMB < 0 {
		s.LowMemoryMB = 0
	}
}

// ParseEnv loads configuration from environment variables into target.
// Fields whose variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overrides s from MINILAB_* environment variables.
func (s *SessionSettings) ApplyEnv() error {
	if err := ParseEnv(s); err != nil {
		return fmt.Errorf("config: session settings: %w", err)
	}
	s.normalize()
	return nil
}
