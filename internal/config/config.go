// Package config provides difficulty tiers, the scene configuration builder
// and YAML-based runtime settings for the mini-game runtime.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Game identifiers known to the builder.
const (
	GameAssembly = "assembly"
	GameBridge   = "bridge"
	GameMatching = "matching"
	GameMarble   = "marble"
	GameBinary   = "binary"
	GameReaction = "reaction"
	GameDragFit  = "dragfit"
	GameQuiz     = "quiz"
)

// GameIDs returns every game identifier in menu order.
func GameIDs() []string {
	return []string{
		GameAssembly, GameBridge, GameMatching, GameMarble,
		GameBinary, GameReaction, GameDragFit, GameQuiz,
	}
}

var (
	// ErrUnknownGame is returned for a game type the builder has no table for.
	ErrUnknownGame = errors.New("unknown game type")
	// ErrInvalidTier is returned for tiers outside 1..3.
	ErrInvalidTier = errors.New("invalid difficulty tier")
)

// Tier is one of three fixed parameter sets, 1 easiest .. 3 hardest.
type Tier int

const (
	TierLow  Tier = 1
	TierMid  Tier = 2
	TierHigh Tier = 3
)

// Valid reports whether t is 1, 2 or 3.
func (t Tier) Valid() bool {
	return t >= TierLow && t <= TierHigh
}

// String returns the preset name of t.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return string(PresetEasy)
	case TierMid:
		return string(PresetNormal)
	case TierHigh:
		return string(PresetHard)
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// index returns the zero-based table row for t.
func (t Tier) index() int {
	return int(t) - 1
}

// Thresholds split a learner attribute into three tiers.
type Thresholds struct {
	Low int `yaml:"low"`
	Mid int `yaml:"mid"`
}

// DefaultThresholds buckets by learner age.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 8, Mid: 12}
}

// TierFromAttribute maps a learner attribute to a tier:
// value <= Low is tier 1, value <= Mid is tier 2, anything above is tier 3.
func TierFromAttribute(value int, th Thresholds) Tier {
	switch {
	case value <= th.Low:
		return TierLow
	case value <= th.Mid:
		return TierMid
	default:
		return TierHigh
	}
}

// Preset is a named tier used by the CLI.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// TierForPreset resolves a preset name (or a bare "1".."3") to a tier.
func TierForPreset(name string) (Tier, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(name))) {
	case PresetEasy, "1":
		return TierLow, nil
	case PresetNormal, "2", "":
		return TierMid, nil
	case PresetHard, "3":
		return TierHigh, nil
	default:
		return 0, fmt.Errorf("config: preset %q: %w", name, ErrInvalidTier)
	}
}
