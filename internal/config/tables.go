package config

import "fmt"

// Tables holds every tier table the builder reads from.
type Tables struct {
	Thresholds Thresholds     `yaml:"thresholds"`
	Canvas     CanvasTable    `yaml:"canvas"`
	Assembly   AssemblyTable  `yaml:"assembly"`
	Bridge     BridgeTable    `yaml:"bridge"`
	Matching   MatchingTable  `yaml:"matching"`
	Marble     MarbleTable    `yaml:"marble"`
	Binary     BinaryTable    `yaml:"binary"`
	Reaction   ReactionParams `yaml:"reaction"`
	DragFit    DragFitParams  `yaml:"dragfit"`
	Quiz       QuizParams     `yaml:"quiz"`
}

// CanvasTable is the logical canvas shared by every scene.
type CanvasTable struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FloorFPS  int     `yaml:"floor_fps"`
}

// AssemblyTable holds one row per tier.
type AssemblyTable struct {
	Tiers []AssemblyParams `yaml:"tiers"`
}

// BridgeTable holds the shared layout plus one row per tier.
// Rows only set gap, vehicle_mass and force.
type BridgeTable struct {
	Gravity float64        `yaml:"gravity"`
	Layout  BridgeParams   `yaml:"layout"`
	Tiers   []BridgeParams `yaml:"tiers"`
}

// MatchingTable holds one row per tier.
type MatchingTable struct {
	Tiers []MatchingParams `yaml:"tiers"`
}

// MarbleTable holds the shared layout plus one row per tier.
// Rows only set goal_distance, obstacles and launch_velocity.
type MarbleTable struct {
	Gravity float64        `yaml:"gravity"`
	Layout  MarbleParams   `yaml:"layout"`
	Tiers   []MarbleParams `yaml:"tiers"`
}

// BinaryTable holds one row per tier.
type BinaryTable struct {
	Tiers []BinaryParams `yaml:"tiers"`
}

// DefaultTables returns the built-in tier tables.
func DefaultTables() Tables {
	return Tables{
		Thresholds: DefaultThresholds(),
		Canvas: CanvasTable{
			Width:     800,
			Height:    600,
			TargetFPS: 60,
			FloorFPS:  30,
		},
		Assembly: AssemblyTable{Tiers: []AssemblyParams{
			{Parts: 4, TimerSeconds: 45},
			{Parts: 6, TimerSeconds: 60},
			{Parts: 8, TimerSeconds: 75},
		}},
		Bridge: BridgeTable{
			Gravity: 0.5,
			Layout: BridgeParams{
				DeckY:          400,
				PlatformWidth:  200,
				BeamWidth:      50,
				BeamHeight:     12,
				VehicleW:       40,
				VehicleH:       20,
				MaxSpeed:       4,
				WinMargin:      10,
				CollapseMargin: 60,
				FallThreshold:  6,
				MaxSimSeconds:  20,
			},
			Tiers: []BridgeParams{
				{Gap: 200, VehicleMass: 1.0, Force: 0.30},
				{Gap: 300, VehicleMass: 1.4, Force: 0.42},
				{Gap: 400, VehicleMass: 1.8, Force: 0.54},
			},
		},
		Matching: MatchingTable{Tiers: []MatchingParams{
			{Pairs: 4, PointsPerPair: 10},
			{Pairs: 6, PointsPerPair: 10},
			{Pairs: 8, PointsPerPair: 10},
		}},
		Marble: MarbleTable{
			Gravity: 0.3,
			Layout: MarbleParams{
				StartX:        60,
				StartY:        120,
				CellSize:      100,
				MarbleSize:    16,
				GoalRadius:    30,
				DropLine:      580,
				MaxRamps:      6,
				MaxSimSeconds: 15,
			},
			Tiers: []MarbleParams{
				{GoalDistance: 320, Obstacles: 0, LaunchVelocity: 3},
				{GoalDistance: 480, Obstacles: 1, LaunchVelocity: 4},
				{GoalDistance: 600, Obstacles: 2, LaunchVelocity: 5},
			},
		},
		Binary: BinaryTable{Tiers: []BinaryParams{
			{Bits: 6, Targets: 5},
			{Bits: 8, Targets: 5},
			{Bits: 10, Targets: 5},
		}},
		Reaction: ReactionParams{
			Seconds: 30,
			Symbols: []string{"a", "s", "d", "f", "j", "k", "l", "g"},
		},
		DragFit: DragFitParams{Slots: 4, SnapRadius: 40},
		Quiz:    QuizParams{Questions: 0},
	}
}

// Validate checks the tables are complete and usable.
func (t Tables) Validate() error {
	if t.Canvas.Width <= 0 || t.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas size %vx%v must be positive", t.Canvas.Width, t.Canvas.Height)
	}
	if t.Thresholds.Low > t.Thresholds.Mid {
		return fmt.Errorf("config: threshold low %d above mid %d", t.Thresholds.Low, t.Thresholds.Mid)
	}

	rows := map[string]int{
		GameAssembly: len(t.Assembly.Tiers),
		GameBridge:   len(t.Bridge.Tiers),
		GameMatching: len(t.Matching.Tiers),
		GameMarble:   len(t.Marble.Tiers),
		GameBinary:   len(t.Binary.Tiers),
	}
	for _, id := range GameIDs() {
		n, tiered := rows[id]
		if tiered && n != int(TierHigh) {
			return fmt.Errorf("config: %s: expected %d tier rows, got %d", id, TierHigh, n)
		}
	}

	for i, row := range t.Assembly.Tiers {
		if row.Parts <= 0 || row.TimerSeconds <= 0 {
			return fmt.Errorf("config: assembly tier %d: parts and timer must be positive", i+1)
		}
	}
	for i, row := range t.Binary.Tiers {
		if row.Bits <= 0 || row.Bits > 30 || row.Targets <= 0 {
			return fmt.Errorf("config: binary tier %d: bits must be 1..30 and targets positive", i+1)
		}
	}
	for i, row := range t.Matching.Tiers {
		if row.Pairs <= 0 {
			return fmt.Errorf("config: matching tier %d: pairs must be positive", i+1)
		}
	}
	if len(t.Reaction.Symbols) == 0 || t.Reaction.Seconds <= 0 {
		return fmt.Errorf("config: reaction needs symbols and a positive duration")
	}
	if t.DragFit.Slots <= 0 {
		return fmt.Errorf("config: dragfit slots must be positive")
	}
	return nil
}
