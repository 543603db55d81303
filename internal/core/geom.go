// Package core provides fundamental types and utilities shared by the
// simulation engines and the terminal host.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec3 is a point or extent in world units.
// X is lateral (lanes), Y is up, Z is the travel axis (positive = ahead).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Box is an axis-aligned bounding volume described by its center and half-extents.
type Box struct {
	Center Vec3
	Half   Vec3
}

// NewBox creates a box centered at c with half-extents h.
func NewBox(c, h Vec3) Box {
	return Box{Center: c, Half: h}
}

// Min returns the minimum corner.
func (b Box) Min() Vec3 {
	return b.Center.Sub(b.Half)
}

// Max returns the maximum corner.
func (b Box) Max() Vec3 {
	return b.Center.Add(b.Half)
}

// Intersects returns true if this box overlaps with another.
// Touching faces do not count as an overlap.
func (b Box) Intersects(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	if bMin.X >= oMax.X || oMin.X >= bMax.X {
		return false
	}
	if bMin.Y >= oMax.Y || oMin.Y >= bMax.Y {
		return false
	}
	if bMin.Z >= oMax.Z || oMin.Z >= bMax.Z {
		return false
	}
	return true
}

// Stretch returns a box that also covers the travel of its center from z0 to z1
// along the Z axis. Used to sweep fast-moving objects across one frame.
func (b Box) Stretch(z0, z1 float64) Box {
	lo, hi := math.Min(z0, z1), math.Max(z0, z1)
	return Box{
		Center: Vec3{X: b.Center.X, Y: b.Center.Y, Z: (lo + hi) / 2},
		Half:   Vec3{X: b.Half.X, Y: b.Half.Y, Z: b.Half.Z + (hi-lo)/2},
	}
}

// Rect is a 2D cell rectangle used by the terminal screen buffer.
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

// SegmentGap returns the distance from p to the closed interval spanned by a and b.
// Zero when p lies between them.
func SegmentGap(a, b, p float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	switch {
	case p < lo:
		return lo - p
	case p > hi:
		return p - hi
	default:
		return 0
	}
}

// Lerp moves from a toward b by factor t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*ClampF(t, 0, 1)
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
// NaN collapses to min so corrupted values never leak into the snapshot.
func ClampF(val, min, max float64) float64 {
	if math.IsNaN(val) || val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
