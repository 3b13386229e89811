// Package geom holds the axis aligned rectangle used by the physics code.
// Coordinates are world units with y growing downwards.
package geom

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Rect is an axis aligned rectangle stored by its edges.
type Rect struct {
	Left, Right, Top, Bottom float64
}

// NewRect builds a rect from a top-left corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Right: x + w, Top: y, Bottom: y + h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rect.
func (r Rect) Center() dmath.Vec2 {
	return dmath.Vec2{X: (r.Left + r.Right) * 0.5, Y: (r.Top + r.Bottom) * 0.5}
}

// Translate returns the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Right: r.Right + dx, Top: r.Top + dy, Bottom: r.Bottom + dy}
}

// TranslateVec is Translate for a vector offset.
func (r Rect) TranslateVec(v dmath.Vec2) Rect {
	return r.Translate(v.X, v.Y)
}

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// OverlapsX reports whether the open horizontal spans overlap.
func (r Rect) OverlapsX(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right
}

// OverlapsY reports whether the open vertical spans overlap.
func (r Rect) OverlapsY(o Rect) bool {
	return r.Top < o.Bottom && o.Top < r.Bottom
}

// Intersects reports whether two rects share interior area. Touching edges do
// not count.
func (r Rect) Intersects(o Rect) bool {
	return r.OverlapsX(o) && r.OverlapsY(o)
}

// IntersectionArea returns the area shared by the two rects.
func (r Rect) IntersectionArea(o Rect) float64 {
	w := math.Min(r.Right, o.Right) - math.Max(r.Left, o.Left)
	h := math.Min(r.Bottom, o.Bottom) - math.Max(r.Top, o.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest rect containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Right:  math.Max(r.Right, o.Right),
		Top:    math.Min(r.Top, o.Top),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p dmath.Vec2) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}
