package config

import (
	"fmt"

	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Builder maps (game type, tier) to a SceneConfig.
// It holds no state beyond its tables, so equal inputs give equal outputs.
type Builder struct {
	Tables Tables
}

// NewBuilder creates a builder over the given tables.
func NewBuilder(t Tables) Builder {
	return Builder{Tables: t}
}

// Build returns the scene configuration for a game at a tier.
func (b Builder) Build(game string, tier Tier) (SceneConfig, error) {
	if !tier.Valid() {
		return SceneConfig{}, fmt.Errorf("config: build %s tier %d: %w", game, tier, ErrInvalidTier)
	}

	t := b.Tables
	cfg := SceneConfig{
		Game:      game,
		Tier:      tier,
		Physics:   PhysicsNone,
		CanvasW:   t.Canvas.Width,
		CanvasH:   t.Canvas.Height,
		TargetFPS: t.Canvas.TargetFPS,
		FloorFPS:  t.Canvas.FloorFPS,
	}
	i := tier.index()

	switch game {
	case GameAssembly:
		row, err := tierRow(game, t.Assembly.Tiers, i)
		if err != nil {
			return SceneConfig{}, err
		}
		cfg.Assembly = row

	case GameBridge:
		row, err := tierRow(game, t.Bridge.Tiers, i)
		if err != nil {
			return SceneConfig{}, err
		}
		p := t.Bridge.Layout
		p.Gap = row.Gap
		p.VehicleMass = row.VehicleMass
		p.Force = row.Force
		cfg.Bridge = p
		cfg.Physics = PhysicsForce
		cfg.Gravity = core.Vec{Y: t.Bridge.Gravity}

	case GameMatching:
		row, err := tierRow(game, t.Matching.Tiers, i)
		if err != nil {
			return SceneConfig{}, err
		}
		cfg.Matching = row

	case GameMarble:
		row, err := tierRow(game, t.Marble.Tiers, i)
		if err != nil {
			return SceneConfig{}, err
		}
		p := t.Marble.Layout
		p.GoalDistance = row.GoalDistance
		p.Obstacles = row.Obstacles
		p.LaunchVelocity = row.LaunchVelocity
		cfg.Marble = p
		cfg.Physics = PhysicsArcade
		cfg.Gravity = core.Vec{Y: t.Marble.Gravity}

	case GameBinary:
		row, err := tierRow(game, t.Binary.Tiers, i)
		if err != nil {
			return SceneConfig{}, err
		}
		cfg.Binary = row

	case GameReaction:
		cfg.Reaction = ReactionParams{
			Seconds: t.Reaction.Seconds,
			Symbols: append([]string(nil), t.Reaction.Symbols...),
		}

	case GameDragFit:
		cfg.DragFit = t.DragFit

	case GameQuiz:
		cfg.Quiz = t.Quiz

	default:
		return SceneConfig{}, fmt.Errorf("config: build %q: %w", game, ErrUnknownGame)
	}

	return cfg, nil
}

func tierRow[T any](game string, rows []T, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(rows) {
		return zero, fmt.Errorf("config: %s has no row for tier %d: %w", game, i+1, ErrInvalidTier)
	}
	return rows[i], nil
}
