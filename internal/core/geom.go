// Package core provides the geometry, input and screen primitives shared by
// the runner simulation and the terminal platform. It has no dependency on
// Bubble Tea so the simulation stays pure and testable.
package core

import "math"

// Vec2 is a world-space point or velocity.
type Vec2 struct {
	X, Y float64
}

// AABB is an axis-aligned box in world space. X,Y is the top-left corner and
// y grows downward.
type AABB struct {
	X, Y float64
	W, H float64
}

// NewAABB creates a box with the given position and size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal center.
func (b AABB) CenterX() float64 {
	return b.X + b.W/2
}

// Overlaps reports whether two boxes share interior area.
// Touching edges do not count.
func (b AABB) Overlaps(o AABB) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// OverlapsX reports whether the horizontal spans share interior length.
func (b AABB) OverlapsX(o AABB) bool {
	return b.X < o.Right() && o.X < b.Right()
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	x0 := math.Min(b.X, o.X)
	y0 := math.Min(b.Y, o.Y)
	x1 := math.Max(b.Right(), o.Right())
	y1 := math.Max(b.Bottom(), o.Bottom())
	return AABB{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns the box moved by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{X: b.X + d.X, Y: b.Y + d.Y, W: b.W, H: b.H}
}

// LandingEpsilon absorbs float drift when comparing a bottom edge with a
// surface top.
const LandingEpsilon = 1e-6

// SweepLanding reports whether a box moving from prev to next crossed the top
// edge of surface from above during the move. Only downward or level motion
// can land; the horizontal span is taken from next.
func SweepLanding(prev, next, surface AABB) bool {
	if next.Y < prev.Y {
		return false
	}
	if !next.OverlapsX(surface) {
		return false
	}
	return prev.Bottom() <= surface.Y+LandingEpsilon && next.Bottom() >= surface.Y-LandingEpsilon
}

// Rect is an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new cell rectangle.
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
