package physics

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// Collision tags.
const (
	TagSolid    = "solid"
	TagObstacle = "obstacle"
	TagBody     = "body"
)

// DefaultCellSize is the broadphase cell size in canvas units.
const DefaultCellSize = 8

// World is a collision space holding static geometry and moving bodies.
type World struct {
	space *resolv.Space
}

// NewWorld creates a space covering w×h canvas units.
// Objects outside the space never collide, so callers pad the canvas.
func NewWorld(w, h float64) *World {
	return &World{
		space: resolv.NewSpace(int(math.Ceil(w)), int(math.Ceil(h)), DefaultCellSize, DefaultCellSize),
	}
}

// AddStatic adds immovable geometry.
func (w *World) AddStatic(b core.Box, tags ...string) *resolv.Object {
	obj := resolv.NewObject(b.X, b.Y, b.W, b.H, tags...)
	w.space.Add(obj)
	return obj
}

// Remove takes objects out of the space. Unknown objects are ignored.
func (w *World) Remove(objs ...*resolv.Object) {
	for _, o := range objs {
		if o != nil {
			w.space.Remove(o)
		}
	}
}

// Objects returns every object in the space.
func (w *World) Objects() []*resolv.Object {
	return w.space.Objects()
}

// BoxOf returns the bounds of a resolv object.
func BoxOf(o *resolv.Object) core.Box {
	return core.Box{X: o.Position.X, Y: o.Position.Y, W: o.Size.X, H: o.Size.Y}
}

// overlaps is the narrowphase test; touching edges do not overlap.
func overlaps(a, b core.Box) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
