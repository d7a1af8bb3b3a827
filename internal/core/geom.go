// Package core provides fundamental types and utilities for the mini-game runtime.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Vec is a point or direction in logical canvas units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Box is an axis-aligned rectangle in logical canvas units.
// Games lay out their hit areas with boxes and only convert to cells when drawing.
type Box struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the box (right/bottom exclusive).
func (b Box) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Viewport maps between the logical canvas and a cell grid.
// The canvas is stretched to fill the grid; aspect ratio is not preserved
// because terminal cells are not square anyway.
type Viewport struct {
	CanvasW, CanvasH float64
	CellsW, CellsH   int // cells covered by the canvas
	Top              int // screen rows above the canvas
}

// HUDRows is the number of screen rows games reserve above the canvas.
const HUDRows = 2

// ToCell converts a canvas point to the screen cell that contains it.
func (v Viewport) ToCell(p Vec) (int, int) {
	if v.CanvasW <= 0 || v.CanvasH <= 0 {
		return 0, v.Top
	}
	x := int(math.Floor(p.X * float64(v.CellsW) / v.CanvasW))
	y := int(math.Floor(p.Y * float64(v.CellsH) / v.CanvasH))
	return x, y + v.Top
}

// ToCanvas converts a screen cell to the canvas point at the cell's center.
// Rows above the canvas map to negative y.
func (v Viewport) ToCanvas(x, y int) Vec {
	if v.CellsW <= 0 || v.CellsH <= 0 {
		return Vec{}
	}
	cw := v.CanvasW / float64(v.CellsW)
	ch := v.CanvasH / float64(v.CellsH)
	return Vec{X: (float64(x) + 0.5) * cw, Y: (float64(y-v.Top) + 0.5) * ch}
}

// BoxToRect converts a canvas box to the cell rectangle covering it.
// Non-empty boxes always cover at least one cell.
func (v Viewport) BoxToRect(b Box) Rect {
	x0, y0 := v.ToCell(Vec{X: b.X, Y: b.Y})
	x1, y1 := v.ToCell(Vec{X: b.X + b.W, Y: b.Y + b.H})
	w := Max(x1-x0, 1)
	h := Max(y1-y0, 1)
	return NewRect(x0, y0, w, h)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
