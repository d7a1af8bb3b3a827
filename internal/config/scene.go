package config

import "github.com/vovakirdan/tui-minilab/internal/core"

// PhysicsBackend selects the simulation a scene runs on.
type PhysicsBackend string

const (
	PhysicsNone   PhysicsBackend = "none"
	PhysicsArcade PhysicsBackend = "arcade" // gravity + axis-aligned collision
	PhysicsForce  PhysicsBackend = "force"  // mass and applied force
)

// SceneConfig is the concrete simulation configuration for one
// (game type, tier) pair. Only the parameter block matching Game is filled.
type SceneConfig struct {
	Game      string
	Tier      Tier
	Physics   PhysicsBackend
	Gravity   core.Vec
	CanvasW   float64
	CanvasH   float64
	TargetFPS int
	FloorFPS  int

	Assembly AssemblyParams
	Bridge   BridgeParams
	Matching MatchingParams
	Marble   MarbleParams
	Binary   BinaryParams
	Reaction ReactionParams
	DragFit  DragFitParams
	Quiz     QuizParams
}

// Viewport returns the canvas-to-cells mapping for a screen of the given
// size. The canvas sits below the HUD rows.
func (c SceneConfig) Viewport(screenW, screenH int) core.Viewport {
	return core.Viewport{
		CanvasW: c.CanvasW,
		CanvasH: c.CanvasH,
		CellsW:  screenW,
		CellsH:  max(screenH-core.HUDRows, 1),
		Top:     core.HUDRows,
	}
}

// AssemblyParams configures Ordered Assembly.
type AssemblyParams struct {
	Parts        int `yaml:"parts"`
	TimerSeconds int `yaml:"timer_seconds"`
}

// BridgeParams configures Physics Structure-Span.
// Tier fields come from the tier row; the rest is shared layout.
type BridgeParams struct {
	Gap         float64 `yaml:"gap"`
	VehicleMass float64 `yaml:"vehicle_mass"`
	Force       float64 `yaml:"force"`

	DeckY          float64 `yaml:"deck_y"`
	PlatformWidth  float64 `yaml:"platform_width"`
	BeamWidth      float64 `yaml:"beam_width"`
	BeamHeight     float64 `yaml:"beam_height"`
	VehicleW       float64 `yaml:"vehicle_w"`
	VehicleH       float64 `yaml:"vehicle_h"`
	MaxSpeed       float64 `yaml:"max_speed"`
	WinMargin      float64 `yaml:"win_margin"`
	CollapseMargin float64 `yaml:"collapse_margin"`
	FallThreshold  float64 `yaml:"fall_threshold"`
	MaxSimSeconds  int     `yaml:"max_sim_seconds"`
}

// CollapseLine returns the y coordinate below which the vehicle has fallen.
func (p BridgeParams) CollapseLine() float64 {
	return p.DeckY + p.CollapseMargin
}

// MatchingParams configures Matching Pairs.
type MatchingParams struct {
	Pairs         int `yaml:"pairs"`
	PointsPerPair int `yaml:"points_per_pair"`
}

// TargetScore is the score that wins the round.
func (p MatchingParams) TargetScore() int {
	return p.Pairs * p.PointsPerPair
}

// MarbleParams configures Physics Path-Builder.
type MarbleParams struct {
	GoalDistance   float64 `yaml:"goal_distance"`
	Obstacles      int     `yaml:"obstacles"`
	LaunchVelocity float64 `yaml:"launch_velocity"`

	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	CellSize      float64 `yaml:"cell_size"`
	MarbleSize    float64 `yaml:"marble_size"`
	GoalRadius    float64 `yaml:"goal_radius"`
	DropLine      float64 `yaml:"drop_line"`
	MaxRamps      int     `yaml:"max_ramps"`
	MaxSimSeconds int     `yaml:"max_sim_seconds"`
}

// BinaryParams configures Binary-Value Builder.
type BinaryParams struct {
	Bits    int `yaml:"bits"`
	Targets int `yaml:"targets"`
}

// MaxTarget returns the largest value representable with Bits bits.
func (p BinaryParams) MaxTarget() int {
	return 1<<p.Bits - 1
}

// ReactionParams configures Timed Reaction Matching.
type ReactionParams struct {
	Seconds int      `yaml:"seconds"`
	Symbols []string `yaml:"symbols"`
}

// DragFitParams configures Drag-Assembly.
type DragFitParams struct {
	Slots      int     `yaml:"slots"`
	SnapRadius float64 `yaml:"snap_radius"`
}

// QuizParams configures Binary-Choice Quiz.
type QuizParams struct {
	Questions int `yaml:"questions"` // 0 uses the whole scenario list
}
