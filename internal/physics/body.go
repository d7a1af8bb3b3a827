package physics

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Body is a moving box with velocity and mass.
type Body struct {
	Pos      core.Vec
	Vel      core.Vec
	W, H     float64
	Mass     float64
	OnGround bool

	obj *resolv.Object
}

// Contact reports what a body ran into during one step and how fast it
// was moving along that axis just before the hit.
type Contact struct {
	X, Y     *resolv.Object
	ImpactVX float64
	ImpactVY float64
}

// Hit reports whether any axis collided.
func (c Contact) Hit() bool {
	return c.X != nil || c.Y != nil
}

// NewBody adds a body to the world. A non-positive mass is treated as 1.
func (w *World) NewBody(b core.Box, mass float64, tags ...string) *Body {
	if mass <= 0 {
		mass = 1
	}
	if len(tags) == 0 {
		tags = []string{TagBody}
	}
	obj := resolv.NewObject(b.X, b.Y, b.W, b.H, tags...)
	w.space.Add(obj)
	return &Body{
		Pos:  core.Vec{X: b.X, Y: b.Y},
		W:    b.W,
		H:    b.H,
		Mass: mass,
		obj:  obj,
	}
}

// Object returns the body's collision object.
func (b *Body) Object() *resolv.Object {
	return b.obj
}

// Box returns the body's current bounds.
func (b *Body) Box() core.Box {
	return core.Box{X: b.Pos.X, Y: b.Pos.Y, W: b.W, H: b.H}
}

// Center returns the body's center point.
func (b *Body) Center() core.Vec {
	return b.Box().Center()
}

// Place teleports the body and clears its motion.
func (b *Body) Place(p core.Vec) {
	b.Pos = p
	b.Vel = core.Vec{}
	b.OnGround = false
	b.sync()
}

// Step integrates one time step. Acceleration is force/mass plus gravity.
// X moves first, then Y; an axis that hits something stops at the contact
// point and loses its velocity.
func (b *Body) Step(force, gravity core.Vec, dt float64, solid ...string) Contact {
	var c Contact
	ax := force.X/b.Mass + gravity.X
	ay := force.Y/b.Mass + gravity.Y

	// X-axis
	dx := Displacement(b.Vel.X, dt, ax)
	vx := FinalVelocity(b.Vel.X, dt, ax)
	if hit, contact := b.blocker(dx, 0, solid); hit != nil {
		c.X = hit
		c.ImpactVX = vx
		dx = contact
		vx = 0
	}
	b.Pos.X += dx
	b.Vel.X = vx

	// Y-axis
	dy := Displacement(b.Vel.Y, dt, ay)
	vy := FinalVelocity(b.Vel.Y, dt, ay)
	b.OnGround = false
	if hit, contact := b.blocker(0, dy, solid); hit != nil {
		c.Y = hit
		c.ImpactVY = vy
		dy = contact
		vy = 0
		b.OnGround = hit.Position.Y >= b.Pos.Y+b.H-1e-9
	}
	b.Pos.Y += dy
	b.Vel.Y = vy

	b.sync()
	return c
}

// blocker returns the nearest solid object the body would overlap after
// moving by (dx, dy), and the movement that leaves it touching instead.
func (b *Body) blocker(dx, dy float64, tags []string) (*resolv.Object, float64) {
	if dx == 0 && dy == 0 {
		return nil, 0
	}
	// resolv trims a unit off the far edge when mapping to cells, so widen
	// the probe by one unit and let the narrowphase decide.
	collision := b.obj.Check(dx+sign(dx), dy+sign(dy), tags...)
	if collision == nil {
		return nil, 0
	}

	moved := b.Box()
	moved.X += dx
	moved.Y += dy

	var best *resolv.Object
	bestMove := 0.0
	for _, o := range collision.Objects {
		if o == b.obj || !overlaps(moved, BoxOf(o)) {
			continue
		}
		var move float64
		switch {
		case dx > 0:
			move = o.Position.X - (b.Pos.X + b.W)
		case dx < 0:
			move = (o.Position.X + o.Size.X) - b.Pos.X
		case dy > 0:
			move = o.Position.Y - (b.Pos.Y + b.H)
		default:
			move = (o.Position.Y + o.Size.Y) - b.Pos.Y
		}
		// Already overlapping along this axis: do not move into it further.
		if (dx+dy > 0 && move < 0) || (dx+dy < 0 && move > 0) {
			move = 0
		}
		if best == nil || math.Abs(move) < math.Abs(bestMove) {
			best = o
			bestMove = move
		}
	}
	return best, bestMove
}

func (b *Body) sync() {
	b.obj.Position.X = b.Pos.X
	b.obj.Position.Y = b.Pos.Y
	b.obj.Update()
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
